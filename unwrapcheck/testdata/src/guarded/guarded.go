package guarded

import (
	"errors"
	"log"
	"os"

	"github.com/WinPooh32/optres/option"
	"github.com/WinPooh32/optres/result"
)

type holder struct {
	o option.Option[int]
	n int
}

func (h *holder) reset() {
	h.o = option.None[int]()
}

func lookup(k string) option.Option[int] {
	if k == "" {
		return option.None[int]()
	}

	return option.Some(len(k))
}

func parse(s string) result.Result[int, error] {
	if s == "" {
		return result.Err[int](errors.New("empty"))
	}

	return result.Ok[int, error](len(s))
}

func unguarded(o option.Option[int], r result.Result[int, error]) int {
	a := o.Unwrap()   // want `Unwrap called on o without checking o.IsSome`
	b := r.Unwrap()   // want `Unwrap called on r without checking r.IsOk`
	_ = r.UnwrapErr() // want `UnwrapErr called on r without checking r.IsErr`

	return a + b
}

func untracked() int {
	return lookup("k").Unwrap() // want `Unwrap called on an untracked expression lookup\("k"\); bind it to a variable and check IsSome\(\) first`
}

func positive(o option.Option[int], r result.Result[int, error]) int {
	n := 0

	if o.IsSome() {
		n += o.Unwrap()
	}

	if r.IsOk() {
		n += r.Unwrap()
	}

	if r.IsErr() {
		log.Print(r.UnwrapErr())
	}

	if !o.IsNone() && n > 0 {
		n += o.Unwrap()
	}

	return n
}

func wrongTest(o option.Option[int]) int {
	if o.IsNone() {
		return o.Unwrap() // want `Unwrap called on o without checking`
	}

	return 0
}

func wrongErrTest(r result.Result[int, error]) {
	if r.IsOk() {
		log.Print(r.UnwrapErr()) // want `UnwrapErr called on r without checking r.IsErr`
	}
}

func eitherTest(o option.Option[int], r result.Result[int, error]) int {
	if o.IsSome() || r.IsOk() {
		return o.Unwrap() // want `Unwrap called on o without checking`
	}

	return 0
}

func elseBranch(o option.Option[int]) int {
	if o.IsNone() {
		return 0
	} else {
		return o.Unwrap()
	}
}

func earlyReturn(o option.Option[int], r result.Result[int, error]) int {
	if o.IsNone() {
		return 0
	}

	if r.IsErr() {
		panic(r.UnwrapErr())
	}

	return o.Unwrap() + r.Unwrap()
}

func earlyExit(r result.Result[int, error]) int {
	if !r.IsOk() {
		log.Fatal(r.UnwrapErr())
	}

	return r.Unwrap()
}

func exitProcess(o option.Option[int]) int {
	if o.IsNone() {
		os.Exit(1)
	}

	return o.Unwrap()
}

func noExit(o option.Option[int]) int {
	if o.IsNone() {
		log.Print("missing")
	}

	return o.Unwrap() // want `Unwrap called on o without checking`
}

func reassigned(o option.Option[int]) int {
	if o.IsNone() {
		return 0
	}

	o = lookup("")

	return o.Unwrap() // want `Unwrap called on o without checking`
}

func loop(values []option.Option[int]) int {
	sum := 0

	for _, v := range values {
		if v.IsNone() {
			continue
		}

		sum += v.Unwrap()
	}

	return sum
}

func shortCircuit(o option.Option[int]) bool {
	return o.IsSome() && o.Unwrap() > 0
}

func shortCircuitOr(o option.Option[int]) bool {
	return o.IsNone() || o.Unwrap() > 0
}

func shortCircuitWrong(o option.Option[int]) bool {
	return o.IsNone() && o.Unwrap() > 0 // want `Unwrap called on o without checking`
}

func field(h holder) int {
	if h.o.IsSome() {
		return h.o.Unwrap()
	}

	return h.o.Unwrap() // want `Unwrap called on h.o without checking h.o.IsSome`
}

func switchCase(o option.Option[int], mode int) int {
	switch mode {
	case 1:
		if o.IsNone() {
			return -1
		}

		return o.Unwrap()
	default:
		return o.Unwrap() // want `Unwrap called on o without checking`
	}
}

func closure(o option.Option[int]) func() int {
	if o.IsSome() {
		return func() int { return o.Unwrap() }
	}

	return nil
}

func expectIsNotReported(o option.Option[int], r result.Result[int, error]) int {
	return o.Expect("need o") + r.Expect("need r")
}

func reassignedInBody(o option.Option[int]) int {
	if o.IsSome() {
		o = lookup("")

		return o.Unwrap() // want `Unwrap called on o without checking`
	}

	return 0
}

func shadowedInBody(o option.Option[int]) int {
	if o.IsSome() {
		o := lookup("")

		return o.Unwrap() // want `Unwrap called on o without checking`
	}

	return 0
}

func reassignedInNestedBlock(o option.Option[int], refresh bool) int {
	if o.IsNone() {
		return 0
	}

	if refresh {
		o = lookup("")
	}

	return o.Unwrap() // want `Unwrap called on o without checking`
}

func checkedAgain(o option.Option[int]) int {
	if o.IsNone() {
		return 0
	}

	o = lookup("k")

	if o.IsNone() {
		return 0
	}

	return o.Unwrap()
}

func addressTaken(o option.Option[int], sink func(*option.Option[int])) int {
	if o.IsSome() {
		sink(&o)

		return o.Unwrap() // want `Unwrap called on o without checking`
	}

	return 0
}

func pointerMethod(h holder) int {
	if h.o.IsSome() {
		h.reset()

		return h.o.Unwrap() // want `Unwrap called on h.o without checking`
	}

	return 0
}

func otherField(h holder) int {
	if h.o.IsSome() {
		h.n++
		h.n = 2

		return h.o.Unwrap()
	}

	return 0
}

func writtenAfterCall(o option.Option[int]) option.Option[int] {
	if o.IsSome() {
		o = option.Some(o.Unwrap() + 1)
	}

	return o
}

func writtenLaterInLoop(o option.Option[int], n int) int {
	sum := 0

	if o.IsSome() {
		for i := 0; i < n; i++ {
			sum += o.Unwrap() // want `Unwrap called on o without checking`
			o = lookup("")
		}
	}

	return sum
}

func loopCondition(o option.Option[int]) int {
	sum := 0

	for o.IsSome() {
		sum += o.Unwrap()
		o = lookup("")
	}

	return sum
}

func taglessSwitch(o option.Option[int], r result.Result[int, error]) int {
	switch {
	case o.IsSome():
		return o.Unwrap()
	case r.IsErr():
		log.Print(r.UnwrapErr())
	}

	return 0
}

func taglessSwitchDefault(o option.Option[int]) int {
	switch {
	case o.IsNone():
		return 0
	default:
		return o.Unwrap()
	}
}

func taglessSwitchLater(o option.Option[int], n int) int {
	switch {
	case o.IsNone():
		return 0
	case n > 0:
		return o.Unwrap()
	}

	return 0
}

func taglessSwitchWrong(o option.Option[int], n int) int {
	switch {
	case n > 0:
		return o.Unwrap() // want `Unwrap called on o without checking`
	case o.IsNone():
		return 0
	}

	return 0
}

func taglessSwitchFallthrough(o option.Option[int], n int) int {
	switch {
	case n > 0:
		n++
		fallthrough
	case o.IsSome():
		return o.Unwrap() // want `Unwrap called on o without checking`
	}

	return n
}
