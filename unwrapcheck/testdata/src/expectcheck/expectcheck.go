package expectcheck

import (
	"github.com/WinPooh32/optres/option"
	"github.com/WinPooh32/optres/result"
)

func expect(o option.Option[string], r result.Result[string, string]) string {
	s := o.Expect("need o") // want `Expect called on o without checking o.IsSome`

	if r.IsOk() {
		s += r.Expect("need r")
	}

	return s + r.Expect("need r") // want `Expect called on r without checking r.IsOk`
}
