package unwrapcheck

import (
	"cmp"
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"maps"
	"runtime"
	"slices"
	"strings"

	"github.com/WinPooh32/optres/internal/xslices"
	"github.com/WinPooh32/optres/result"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/packages"
)

const pkgLoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedTypesSizes

type pkgID string

// Diagnostic is a single finding.
type Diagnostic struct {
	Pos     token.Position
	Message string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Checker loads Go packages and runs the analyzer on them outside of the
// go vet driver.
type Checker struct {
	analyzer *analysis.Analyzer
	pkgs     map[pkgID]*packages.Package
}

// NewChecker returns a Checker configured with cfg.
func NewChecker(cfg Config) *Checker {
	return &Checker{
		analyzer: New(cfg),
		pkgs:     make(map[pkgID]*packages.Package),
	}
}

// Load loads Go packages matching patterns, test files included.
//
// Dir is the directory in which to run the build system's query tool. If
// dir is empty, the current directory is used. Packages that fail to load
// are reported together in the returned error, the rest stay loaded.
func (c *Checker) Load(ctx context.Context, dir string, patterns ...string) (*Checker, error) {
	cfg := &packages.Config{
		Mode:    pkgLoadMode,
		Context: ctx,
		Dir:     dir,
		Tests:   true,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load packages: %w", err)
	}

	var errs loadErrors

	for _, pkg := range pkgs {
		if isTestMain(pkg) {
			continue
		}

		if len(pkg.Errors) > 0 || len(pkg.TypeErrors) > 0 {
			errs = append(errs, pkg)
			continue
		}

		c.pkgs[pkgID(pkg.ID)] = pkg
	}

	if errs != nil {
		return c, errs
	}

	return c, nil
}

// Check runs the analyzer on the loaded packages and streams the findings.
// Diagnostics of one package arrive sorted by position. A failure is sent
// as the last element before the channel is closed.
// The jobs parameter sets the number of worker goroutines, 0 means the
// number of CPUs.
func (c *Checker) Check(ctx context.Context, jobs int) <-chan result.Result[Diagnostic, error] {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	resC := make(chan result.Result[Diagnostic, error], jobs)

	go func() {
		defer close(resC)

		ids := slices.Sorted(maps.Keys(c.pkgs))
		if len(ids) == 0 {
			return
		}

		eg, ctx := errgroup.WithContext(ctx)

		for part := range xslices.Split(ids, jobs) {
			eg.Go(func() error {
				wrkr := checkWorker{
					analyzer: c.analyzer,
					pkgs:     c.pkgs,
					pkgIDs:   part,
					resC:     resC,
				}

				return wrkr.run(ctx)
			})
		}

		if err := eg.Wait(); err != nil {
			resC <- result.Err[Diagnostic](err)
		}
	}()

	return resC
}

type checkWorker struct {
	analyzer *analysis.Analyzer
	pkgs     map[pkgID]*packages.Package
	pkgIDs   []pkgID
	resC     chan<- result.Result[Diagnostic, error]
}

func (cw *checkWorker) run(ctx context.Context) error {
	for _, id := range cw.pkgIDs {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context is done: %w", err)
		}

		pkg, ok := cw.pkgs[id]
		if !ok {
			return fmt.Errorf("the package is not found by ID %s", id)
		}

		diags, err := cw.analyze(pkg)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", pkg.PkgPath, err)
		}

		for _, d := range diags {
			if err := cw.send(ctx, d); err != nil {
				return err
			}
		}
	}

	return nil
}

func (cw *checkWorker) analyze(pkg *packages.Package) ([]Diagnostic, error) {
	var diags []Diagnostic

	files := pkg.Syntax
	if isTestVariant(pkg) {
		files = selectTestFiles(pkg)
	}

	pass := &analysis.Pass{
		Analyzer:   cw.analyzer,
		Fset:       pkg.Fset,
		Files:      files,
		Pkg:        pkg.Types,
		TypesInfo:  pkg.TypesInfo,
		TypesSizes: pkg.TypesSizes,
		ResultOf:   map[*analysis.Analyzer]any{},
		Report: func(d analysis.Diagnostic) {
			diags = append(diags, Diagnostic{
				Pos:     pkg.Fset.Position(d.Pos),
				Message: d.Message,
			})
		},
	}

	if _, err := cw.analyzer.Run(pass); err != nil {
		return nil, fmt.Errorf("run %s: %w", cw.analyzer.Name, err)
	}

	slices.SortFunc(diags, func(a, b Diagnostic) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Filename, b.Pos.Filename),
			cmp.Compare(a.Pos.Offset, b.Pos.Offset),
		)
	})

	return diags, nil
}

func (cw *checkWorker) send(ctx context.Context, d Diagnostic) error {
	select {
	case cw.resC <- result.Ok[Diagnostic, error](d):
	case <-ctx.Done():
		return fmt.Errorf("context is done: %w", ctx.Err())
	}

	return nil
}

// isTestVariant reports whether pkg was augmented with _test.go files. Its
// regular files are checked through the plain variant already.
func isTestVariant(pkg *packages.Package) bool {
	return strings.Contains(pkg.ID, " [")
}

// isTestMain reports whether pkg is the synthesized test binary main.
func isTestMain(pkg *packages.Package) bool {
	return pkg.Name == "main" && strings.HasSuffix(pkg.PkgPath, ".test")
}

func selectTestFiles(pkg *packages.Package) []*ast.File {
	var testfiles []*ast.File

	for _, file := range pkg.Syntax {
		f := pkg.Fset.File(file.Pos())
		if f == nil {
			continue
		}

		if !strings.HasSuffix(strings.ToLower(f.Name()), "_test.go") {
			continue
		}

		testfiles = append(testfiles, file)
	}

	return testfiles
}
