package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/WinPooh32/optres/unwrapcheck"
	"github.com/gookit/color"
	"golang.org/x/term"
)

const (
	exitClean    = 0
	exitFindings = 1
	exitFailure  = 2
)

type argSet []string

func (a *argSet) String() string {
	return strings.Join(*a, ", ")
}

func (a *argSet) Set(s string) error {
	*a = strings.Split(s, ",")
	return nil
}

type flags struct {
	jobs     int
	dir      string
	patterns argSet
	expect   bool
	noColor  bool
}

func main() {
	var flags flags

	flag.IntVar(&flags.jobs, "jobs", 0, "parallel jobs number")
	flag.StringVar(&flags.dir, "dir", "", "go module dir")
	flag.Var(&flags.patterns, "pattern", "list of package patterns")
	flag.BoolVar(&flags.expect, "expect", false, "also report unguarded Expect calls")
	flag.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	flag.Parse()

	if len(flags.patterns) == 0 {
		flags.patterns = []string{"./..."}
	}

	if flags.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.Disable()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	code := check(ctx, os.Stdout, flags)

	stop()
	os.Exit(code)
}

func check(ctx context.Context, w io.Writer, flags flags) int {
	checker, err := unwrapcheck.NewChecker(unwrapcheck.Config{Expect: flags.expect}).
		Load(ctx, flags.dir, flags.patterns...)
	if err != nil {
		fmt.Fprintln(os.Stderr, color.Red.Sprintf("load packages: %v", err))
		return exitFailure
	}

	found := 0

	for res := range checker.Check(ctx, flags.jobs) {
		if res.IsErr() {
			fmt.Fprintln(os.Stderr, color.Red.Sprintf("check: %v", res.UnwrapErr()))
			return exitFailure
		}

		d := res.Unwrap()
		found++

		fmt.Fprintf(w, "%s: %s\n", color.Cyan.Sprint(d.Pos), color.Yellow.Sprint(d.Message))
	}

	if found > 0 {
		return exitFindings
	}

	return exitClean
}
