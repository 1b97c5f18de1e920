// Package unwrapcheck reports Unwrap calls on option.Option and
// result.Result values that the surrounding code never checked.
//
// Go cannot narrow a value's variant at compile time, so the analyzer
// approximates it: a call on receiver x is accepted when a variant test on
// the same variable x dominates it lexically and nothing in between assigns
// to x or takes its address.
//
//	if x.IsSome() { x.Unwrap() }              // body of a positive test
//	if x.IsNone() { ... } else { x.Unwrap() } // else of a negative test
//	if x.IsNone() { return }; x.Unwrap()      // early exit
//	x.IsSome() && x.Unwrap() > 0              // short circuit
//	switch { case x.IsSome(): x.Unwrap() }    // tagless switch case
//	for x.IsSome() { x.Unwrap(); x = next() } // loop condition
package unwrapcheck

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	optionPkg = "github.com/WinPooh32/optres/option"
	resultPkg = "github.com/WinPooh32/optres/result"
)

// Config tunes the analyzer.
type Config struct {
	// Expect enables reports for unguarded Expect calls.
	Expect bool
}

// Analyzer runs with the default Config. Its -expect flag toggles
// Config.Expect.
var Analyzer = New(Config{})

// New returns an analyzer for cfg.
func New(cfg Config) *analysis.Analyzer {
	a := &analysis.Analyzer{
		Name: "unwrapcheck",
		Doc:  "report Unwrap calls on Option and Result values not guarded by a variant check",
		Run: func(pass *analysis.Pass) (any, error) {
			run(cfg, pass)
			return nil, nil //nolint:nilnil
		},
	}

	a.Flags.BoolVar(&cfg.Expect, "expect", cfg.Expect, "also report unguarded Expect calls")

	return a
}

// receiver identifies a value by the variable it is rooted at and the
// field path below it: h.o is {h, "o"}, o is {o, ""}.
type receiver struct {
	obj  types.Object
	path string
}

func (r receiver) tracked() bool {
	return r.obj != nil
}

// covers reports whether writing to w may change r.
func (r receiver) covers(w receiver) bool {
	if r.obj == nil || r.obj != w.obj {
		return false
	}

	return w.path == "" || w.path == r.path || strings.HasPrefix(r.path, w.path+".")
}

// receiverOf resolves an identifier or a chain of field selections.
func receiverOf(info *types.Info, e ast.Expr) receiver {
	var fields []string

	for {
		switch x := ast.Unparen(e).(type) {
		case *ast.Ident:
			obj := info.ObjectOf(x)
			if obj == nil {
				return receiver{}
			}

			slices.Reverse(fields)

			return receiver{obj: obj, path: strings.Join(fields, ".")}
		case *ast.SelectorExpr:
			fields = append(fields, x.Sel.Name)
			e = x.X
		case *ast.StarExpr:
			e = x.X
		default:
			return receiver{}
		}
	}
}

// guard names the variant tests that make a call on recv safe.
type guard struct {
	info *types.Info
	recv receiver
	// yes is true only for the safe variant.
	yes string
	// no is true only for the unsafe variant.
	no string
}

var callFilter = []ast.Node{
	new(ast.CallExpr),
}

func run(cfg Config, pass *analysis.Pass) {
	in := inspector.New(pass.Files)

	in.WithStack(callFilter, func(n ast.Node, push bool, stack []ast.Node) (proceed bool) {
		if !push {
			return true
		}

		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}

		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		g, ok := guardFor(cfg, pass.TypesInfo, sel)
		if !ok {
			return true
		}

		if g.recv.tracked() && g.guarded(stack) {
			return true
		}

		pass.Report(analysis.Diagnostic{
			Pos:      sel.Sel.Pos(),
			End:      call.End(),
			Category: "unwrapcheck",
			Message:  message(sel, g),
		})

		return true
	})
}

func message(sel *ast.SelectorExpr, g guard) string {
	recv := types.ExprString(sel.X)

	if !g.recv.tracked() {
		return fmt.Sprintf("%s called on an untracked expression %s; bind it to a variable and check %s() first",
			sel.Sel.Name, recv, g.yes)
	}

	return fmt.Sprintf("%s called on %s without checking %s.%s() first", sel.Sel.Name, recv, recv, g.yes)
}

// guardFor recognizes sel as one of the checked methods and returns the
// tests guarding it. An untracked receiver can't be guarded at all.
func guardFor(cfg Config, info *types.Info, sel *ast.SelectorExpr) (guard, bool) {
	selection, ok := info.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return guard{}, false
	}

	pkg, name := namedOrigin(selection.Recv())

	method := sel.Sel.Name
	if method == "Expect" && !cfg.Expect {
		return guard{}, false
	}

	g := guard{info: info}

	switch {
	case pkg == optionPkg && name == "Option" && (method == "Unwrap" || method == "Expect"):
		g.yes, g.no = "IsSome", "IsNone"
	case pkg == resultPkg && name == "Result" && (method == "Unwrap" || method == "Expect"):
		g.yes, g.no = "IsOk", "IsErr"
	case pkg == resultPkg && name == "Result" && method == "UnwrapErr":
		g.yes, g.no = "IsErr", "IsOk"
	default:
		return guard{}, false
	}

	g.recv = receiverOf(info, sel.X)

	return g, true
}

func namedOrigin(t types.Type) (pkg, name string) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}

	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return "", ""
	}

	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return "", obj.Name()
	}

	return obj.Pkg().Path(), obj.Name()
}

// guarded walks the ancestors of the call, innermost first. Each guard
// proves the safe variant from some position on; it holds at the call when
// the receiver is not written between that position and limit. Loops
// crossed on the way out stretch limit to their end, since a write later in
// the body reaches the call on the next iteration.
func (g guard) guarded(stack []ast.Node) bool {
	limit := stack[len(stack)-1].Pos()

	for i := len(stack) - 2; i >= 0; i-- {
		child := stack[i+1]
		node := stack[i]

		if from, ok := g.guardedFrom(stack, i, child); ok && !g.written(node, from, limit) {
			return true
		}

		switch node := node.(type) {
		case *ast.ForStmt, *ast.RangeStmt:
			limit = max(limit, node.End())
		case *ast.FuncDecl:
			return false
		}
	}

	return false
}

// guardedFrom returns the position from which stack[i] proves the safe
// variant for child.
func (g guard) guardedFrom(stack []ast.Node, i int, child ast.Node) (token.Pos, bool) {
	switch node := stack[i].(type) {
	case *ast.IfStmt:
		if child == node.Body && g.whenTrue(node.Cond) {
			return node.Body.Pos(), true
		}

		if child == node.Else && g.whenFalse(node.Cond) {
			return node.Else.Pos(), true
		}

	case *ast.ForStmt:
		if child == node.Body && node.Cond != nil && g.whenTrue(node.Cond) {
			return node.Body.Pos(), true
		}

	case *ast.BinaryExpr:
		if child != node.Y {
			break
		}

		if (node.Op == token.LAND && g.whenTrue(node.X)) || (node.Op == token.LOR && g.whenFalse(node.X)) {
			return node.Y.Pos(), true
		}

	case *ast.BlockStmt:
		return g.earlyExit(node.List, child)

	case *ast.CaseClause:
		if from, ok := g.earlyExit(node.Body, child); ok {
			return from, true
		}

		return g.caseGuard(stack, i)

	case *ast.CommClause:
		return g.earlyExit(node.Body, child)
	}

	return token.NoPos, false
}

// whenTrue reports whether e evaluating to true proves the safe variant.
func (g guard) whenTrue(e ast.Expr) bool {
	switch e := ast.Unparen(e).(type) {
	case *ast.CallExpr:
		return g.isTest(e, g.yes)
	case *ast.UnaryExpr:
		return e.Op == token.NOT && g.whenFalse(e.X)
	case *ast.BinaryExpr:
		return e.Op == token.LAND && (g.whenTrue(e.X) || g.whenTrue(e.Y))
	default:
		return false
	}
}

// whenFalse reports whether e evaluating to false proves the safe variant.
func (g guard) whenFalse(e ast.Expr) bool {
	switch e := ast.Unparen(e).(type) {
	case *ast.CallExpr:
		return g.isTest(e, g.no)
	case *ast.UnaryExpr:
		return e.Op == token.NOT && g.whenTrue(e.X)
	case *ast.BinaryExpr:
		return e.Op == token.LOR && (g.whenFalse(e.X) || g.whenFalse(e.Y))
	default:
		return false
	}
}

func (g guard) isTest(call *ast.CallExpr, method string) bool {
	if len(call.Args) != 0 {
		return false
	}

	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != method {
		return false
	}

	return receiverOf(g.info, sel.X) == g.recv
}

// earlyExit finds the last if statement before child that leaves the block
// unless the safe variant holds, and returns where it ends.
func (g guard) earlyExit(list []ast.Stmt, child ast.Node) (token.Pos, bool) {
	from := token.NoPos

	for _, stmt := range list {
		if stmt == child {
			return from, from.IsValid()
		}

		if stmt, ok := stmt.(*ast.IfStmt); ok && g.whenFalse(stmt.Cond) && terminates(g.info, stmt.Body) {
			from = stmt.End()
		}
	}

	return token.NoPos, false
}

// caseGuard handles a clause of a tagless switch: its own cases prove the
// safe variant when true, the clauses tried before it when false.
func (g guard) caseGuard(stack []ast.Node, i int) (token.Pos, bool) {
	if i < 2 {
		return token.NoPos, false
	}

	clause, _ := stack[i].(*ast.CaseClause)
	body, _ := stack[i-1].(*ast.BlockStmt)

	sw, ok := stack[i-2].(*ast.SwitchStmt)
	if !ok || sw.Tag != nil || body == nil {
		return token.NoPos, false
	}

	idx := slices.Index(body.List, ast.Stmt(clause))
	if idx < 0 || (idx > 0 && fallsThrough(body.List[idx-1])) {
		return token.NoPos, false
	}

	for _, e := range clause.List {
		if g.whenTrue(e) {
			return clause.Colon, true
		}
	}

	for j, stmt := range body.List {
		if j == idx {
			continue
		}

		// Clauses after a case are never tried before it; default is tried
		// after all of them.
		if j > idx && clause.List != nil {
			break
		}

		other, ok := stmt.(*ast.CaseClause)
		if !ok {
			continue
		}

		for _, e := range other.List {
			if g.whenFalse(e) {
				return clause.Colon, true
			}
		}
	}

	return token.NoPos, false
}

func fallsThrough(stmt ast.Stmt) bool {
	clause, ok := stmt.(*ast.CaseClause)
	if !ok || len(clause.Body) == 0 {
		return false
	}

	branch, ok := clause.Body[len(clause.Body)-1].(*ast.BranchStmt)

	return ok && branch.Tok == token.FALLTHROUGH
}

// written reports whether code inside root between from and limit may
// change the receiver: an assignment, a range clause, taking its address
// or calling a pointer method on it.
func (g guard) written(root ast.Node, from, limit token.Pos) bool {
	found := false

	ast.Inspect(root, func(n ast.Node) bool {
		if found || n == nil || n.End() <= from || n.Pos() >= limit {
			return false
		}

		switch n := n.(type) {
		case *ast.AssignStmt:
			// The write happens after the right side is evaluated.
			if n.Pos() >= from && n.End() <= limit && g.anyCovered(n.Lhs...) {
				found = true
			}

		case *ast.RangeStmt:
			if n.Tok == token.ASSIGN && n.Pos() >= from && g.anyCovered(n.Key, n.Value) {
				found = true
			}

		case *ast.UnaryExpr:
			if n.Op == token.AND && n.Pos() >= from && g.anyCovered(n.X) {
				found = true
			}

		case *ast.SelectorExpr:
			if n.Pos() >= from && g.pointerMethod(n) && g.anyCovered(n.X) {
				found = true
			}
		}

		return !found
	})

	return found
}

func (g guard) anyCovered(exprs ...ast.Expr) bool {
	for _, e := range exprs {
		if e != nil && g.recv.covers(receiverOf(g.info, e)) {
			return true
		}
	}

	return false
}

// pointerMethod reports whether sel takes the address of an addressable
// value implicitly to call a pointer method.
func (g guard) pointerMethod(sel *ast.SelectorExpr) bool {
	selection, ok := g.info.Selections[sel]
	if !ok || selection.Kind() != types.MethodVal {
		return false
	}

	sig, ok := selection.Obj().Type().(*types.Signature)
	if !ok || sig.Recv() == nil {
		return false
	}

	if _, ok := sig.Recv().Type().(*types.Pointer); !ok {
		return false
	}

	t := g.info.TypeOf(sel.X)
	if t == nil {
		return false
	}

	_, isPtr := t.Underlying().(*types.Pointer)

	return !isPtr
}

var noReturnFuncs = map[string]bool{
	"os.Exit":                   true,
	"log.Fatal":                 true,
	"log.Fatalf":                true,
	"log.Fatalln":               true,
	"log.Panic":                 true,
	"log.Panicf":                true,
	"log.Panicln":               true,
	"(*testing.common).Fatal":   true,
	"(*testing.common).Fatalf":  true,
	"(*testing.common).FailNow": true,
	"(*testing.common).Skip":    true,
	"(*testing.common).Skipf":   true,
	"(*testing.common).SkipNow": true,
	"runtime.Goexit":            true,
	"(*log.Logger).Fatal":       true,
	"(*log.Logger).Fatalf":      true,
	"(*log.Logger).Fatalln":     true,
	"(*log.Logger).Panic":       true,
	"(*log.Logger).Panicf":      true,
	"(*log.Logger).Panicln":     true,
}

// terminates reports whether the last statement of body never falls through.
func terminates(info *types.Info, body *ast.BlockStmt) bool {
	if len(body.List) == 0 {
		return false
	}

	switch stmt := body.List[len(body.List)-1].(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BranchStmt:
		return stmt.Tok == token.BREAK || stmt.Tok == token.CONTINUE || stmt.Tok == token.GOTO
	case *ast.ExprStmt:
		call, ok := ast.Unparen(stmt.X).(*ast.CallExpr)
		if !ok {
			return false
		}

		return noReturn(info, call)
	default:
		return false
	}
}

func noReturn(info *types.Info, call *ast.CallExpr) bool {
	var ident *ast.Ident

	switch fun := ast.Unparen(call.Fun).(type) {
	case *ast.Ident:
		ident = fun
	case *ast.SelectorExpr:
		ident = fun.Sel
	default:
		return false
	}

	switch obj := info.Uses[ident].(type) {
	case *types.Builtin:
		return obj.Name() == "panic"
	case *types.Func:
		return noReturnFuncs[obj.FullName()]
	default:
		return false
	}
}
