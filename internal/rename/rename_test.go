package rename

import (
	"fmt"
	"testing"

	"fen/internal/ast/renamed"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/modgraph"
	"fen/internal/names"
	"fen/internal/parser"
	"fen/internal/source"
)

// compile прогоняет исходники через парсер, граф и renamer в topo-порядке.
func compile(t *testing.T, srcs ...string) (map[names.ModuleName]*renamed.Module, map[names.ModuleName]*Error) {
	t.Helper()
	fs := source.NewFileSet()
	bag := diag.NewBag(64)
	var mods []*surface.Module
	for i, src := range srcs {
		file := fs.Get(fs.AddVirtual(fmt.Sprintf("m%d.fen", i), []byte(src)))
		m, ok := parser.ParseModule(file, diag.BagReporter{Bag: bag})
		if !ok {
			t.Fatalf("parse failed: %v", bag.Items())
		}
		mods = append(mods, m)
	}
	nodes := make([]modgraph.Node, 0, len(mods))
	for _, m := range mods {
		nodes = append(nodes, modgraph.Node{Mod: m, Reporter: diag.BagReporter{Bag: bag}})
	}
	g := modgraph.Build(modgraph.BuildIndex(mods), nodes)
	topo := modgraph.Toposort(g)

	r := New(g, names.NewSupply())
	out := make(map[names.ModuleName]*renamed.Module)
	errs := make(map[names.ModuleName]*Error)
	for _, id := range topo.Order {
		m := g.Slots[id].Mod
		rm, err := r.Module(m)
		if err != nil {
			errs[m.Name] = err
		} else {
			out[m.Name] = rm
		}
	}
	return out, errs
}

func mustCompileOne(t *testing.T, src string) *renamed.Module {
	t.Helper()
	mods, errs := compile(t, src)
	for name, err := range errs {
		t.Fatalf("rename of %s failed: %s", name, err.Msg)
	}
	for _, m := range mods {
		return m
	}
	t.Fatal("no module produced")
	return nil
}

func findValue(t *testing.T, m *renamed.Module, name names.VarName) *renamed.ValueDecl {
	t.Helper()
	for _, d := range m.Decls {
		if vd, ok := d.(*renamed.ValueDecl); ok && vd.Name == name {
			return vd
		}
	}
	t.Fatalf("value declaration %q not found", name)
	return nil
}

func TestShadowingMintsDistinctUniques(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
f = { let x = 1; let x = 2; x }
`)
	outer, ok := findValue(t, m, "f").Body.(*renamed.LetIn)
	if !ok {
		t.Fatalf("body %T", findValue(t, m, "f").Body)
	}
	inner, ok := outer.Body.(*renamed.LetIn)
	if !ok {
		t.Fatalf("inner %T", outer.Body)
	}
	if outer.Binder.Same(inner.Binder) {
		t.Error("shadowing binders share a Unique")
	}
	// Последний x видит внутреннее связывание
	v, ok := inner.Body.(*renamed.Var)
	if !ok {
		t.Fatalf("tail %T", inner.Body)
	}
	if v.Ref.Kind != names.RefLocal || !v.Ref.Local.Same(inner.Binder) {
		t.Errorf("tail resolves to %v, want the innermost binder", v.Ref)
	}
}

func TestLambdaArityNormalization(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
konst = \x y -> x
`)
	outer := findValue(t, m, "konst").Body.(*renamed.Lambda)
	if len(outer.Params) != 1 {
		t.Fatalf("outer params = %d", len(outer.Params))
	}
	inner, ok := outer.Body.(*renamed.Lambda)
	if !ok {
		t.Fatalf("multi-parameter lambda did not nest: %T", outer.Body)
	}
	if len(inner.Params) != 1 {
		t.Fatalf("inner params = %d", len(inner.Params))
	}
	xBind := outer.Params[0].(*renamed.PatVar).Binder
	body := inner.Body.(*renamed.Var)
	if body.Ref.Kind != names.RefLocal || !body.Ref.Local.Same(xBind) {
		t.Errorf("body resolves to %v, want first parameter", body.Ref)
	}
}

func TestPatternLambdaDesugarsToMatch(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
first = \(h :: t) -> h
`)
	lam := findValue(t, m, "first").Body.(*renamed.Lambda)
	if len(lam.Params) != 1 {
		t.Fatalf("params = %d", len(lam.Params))
	}
	param := lam.Params[0].(*renamed.PatVar)
	if param.Binder.Base != "cons" {
		t.Errorf("synthetic base = %q, want cons", param.Binder.Base)
	}
	match, ok := lam.Body.(*renamed.Match)
	if !ok {
		t.Fatalf("body %T, want match", lam.Body)
	}
	scrut := match.Scrutinee.(*renamed.Var)
	if scrut.Ref.Kind != names.RefLocal || !scrut.Ref.Local.Same(param.Binder) {
		t.Error("match must scrutinize the synthetic parameter")
	}
	if len(match.Arms) != 1 {
		t.Fatalf("arms = %d", len(match.Arms))
	}
	cons := match.Arms[0].Pat.(*renamed.PatCons)
	h := cons.Head.(*renamed.PatVar)
	body := match.Arms[0].Body.(*renamed.Var)
	if !body.Ref.Local.Same(h.Binder) {
		t.Error("arm body must see the pattern binding")
	}
}

func TestBlockTailLaw(t *testing.T) {
	_, errs := compile(t, `
module M exposing (..)
f = { let x = 1 }
`)
	err := errs["M"]
	if err == nil {
		t.Fatal("block ending with let must fail")
	}
	if err.Code != diag.RenameBlockEndsWithLet {
		t.Errorf("code = %v", err.Code)
	}

	m := mustCompileOne(t, `
module M exposing (..)
g = { 1; 2 }
`)
	block, ok := findValue(t, m, "g").Body.(*renamed.Block)
	if !ok {
		t.Fatalf("body %T", findValue(t, m, "g").Body)
	}
	if len(block.Elems) != 2 {
		t.Fatalf("elems = %d", len(block.Elems))
	}
}

func TestSingleElementBlockUnwraps(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
f = { 42 }
`)
	if _, ok := findValue(t, m, "f").Body.(*renamed.Lit); !ok {
		t.Errorf("single-expression block must unwrap, got %T", findValue(t, m, "f").Body)
	}
}

func TestMixedBlockDesugaring(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
side = 0
f = { side; let x = 2; x }
`)
	block, ok := findValue(t, m, "f").Body.(*renamed.Block)
	if !ok {
		t.Fatalf("body %T", findValue(t, m, "f").Body)
	}
	if len(block.Elems) != 2 {
		t.Fatalf("elems = %d", len(block.Elems))
	}
	letIn, ok := block.Elems[1].Value.(*renamed.LetIn)
	if !ok {
		t.Fatalf("tail %T, want let-in", block.Elems[1].Value)
	}
	tail := letIn.Body.(*renamed.Var)
	if !tail.Ref.Local.Same(letIn.Binder) {
		t.Error("let-in body must see its binding")
	}
}

func TestScopeRestorationAfterSubScope(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
x = 5
pair = ((\x -> x) 1, x)
`)
	tuple := findValue(t, m, "pair").Body.(*renamed.TupleLit)
	app := tuple.Elems[0].(*renamed.Apply)
	lam := app.Fn.(*renamed.Lambda)
	inner := lam.Body.(*renamed.Var)
	if inner.Ref.Kind != names.RefLocal {
		t.Error("lambda body must see the local parameter")
	}
	outer := tuple.Elems[1].(*renamed.Var)
	if outer.Ref.Kind != names.RefGlobal || outer.Ref.Global.Name != "x" || outer.Ref.Global.Module != "M" {
		t.Errorf("sibling must see the module-level x, got %v", outer.Ref)
	}
}

func TestInfixedFunctionResolvesLikeVar(t *testing.T) {
	m := mustCompileOne(t, "module M exposing (..)\nadd a b = a\nr = 1 `add` 2")
	op := findValue(t, m, "r").Body.(*renamed.BinOp)
	if !op.Infixed {
		t.Error("backticked application must keep the Infixed flag")
	}
	if op.Op.Kind != names.RefGlobal || op.Op.Global.Name != "add" {
		t.Errorf("operator resolved to %v", op.Op)
	}
}

func TestQualificationConsistency(t *testing.T) {
	_, errs := compile(t, `
module M exposing (Other.f)
f = 1
`)
	err := errs["M"]
	if err == nil || err.Code != diag.RenameQualifiedInWrongModule {
		t.Fatalf("err = %+v", err)
	}

	// Квалификатор, совпадающий с владельцем, допустим
	mods, errs := compile(t, `
module M exposing (M.f)
f = 1
`)
	if len(errs) != 0 {
		t.Fatalf("self-qualified exposing must pass: %+v", errs)
	}
	item := mods["M"].Exposing.Items[0]
	if item.Name.Module != "M" || item.Name.Name != "f" {
		t.Errorf("item = %+v", item.Name)
	}
}

func TestImportedButNotExposed(t *testing.T) {
	// N объявляет f, но не экспонирует; импорт f не связывает имя
	_, errs := compile(t,
		`
module N exposing (g)
f = 1
g = 2
`, `
module M exposing (..)
import N exposing (f)
use = f
`)
	err := errs["M"]
	if err == nil || err.Code != diag.RenameUnknownName {
		t.Fatalf("err = %+v", err)
	}
	if _, broken := errs["N"]; broken {
		t.Error("N must rename cleanly")
	}
}

func TestQualifiedLookup(t *testing.T) {
	mods, errs := compile(t,
		`
module Data.List exposing (map)
map f xs = xs
`, `
module M exposing (..)
import Data.List
go = Data.List.map
`)
	if len(errs) != 0 {
		t.Fatalf("errs = %+v", errs)
	}
	v := findValue(t, mods["M"], "go").Body.(*renamed.Var)
	if v.Ref.Kind != names.RefGlobal || v.Ref.Global.Module != "Data.List" || v.Ref.Global.Name != "map" {
		t.Errorf("ref = %v", v.Ref)
	}
}

func TestMissingImportDiagnosedOnce(t *testing.T) {
	// Импорт несуществующего модуля репортит граф; renamer не должен
	// дублировать диагностику тем же спаном и валить модуль целиком.
	fs := source.NewFileSet()
	bag := diag.NewBag(16)
	file := fs.Get(fs.AddVirtual("m.fen", []byte("module M exposing (..)\nimport Nowhere\nf = 1\n")))
	m, ok := parser.ParseModule(file, diag.BagReporter{Bag: bag})
	if !ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	g := modgraph.Build(modgraph.BuildIndex([]*surface.Module{m}), []modgraph.Node{
		{Mod: m, Reporter: diag.BagReporter{Bag: bag}},
	})

	rm, rerr := New(g, names.NewSupply()).Module(m)
	if rerr != nil {
		t.Fatalf("rename must not re-report the missing import: %s", rerr.Msg)
	}
	if rm == nil {
		t.Fatal("module must still produce a renamed tree")
	}

	missing := 0
	for _, d := range bag.Items() {
		switch d.Code {
		case diag.GraphMissingModule:
			missing++
		case diag.RenameUnknownModule:
			t.Errorf("duplicate diagnostic for the same import: %+v", d)
		}
	}
	if missing != 1 {
		t.Errorf("GraphMissingModule reported %d times, want 1", missing)
	}
}

func TestQualifiedLookupFailures(t *testing.T) {
	tests := []struct {
		name string
		use  string
		code diag.Code
	}{
		{"unknown module", "go = Missing.Mod.f", diag.RenameUnknownModule},
		{"missing decl", "go = N.nope", diag.RenameNonExistentModuleDecl},
		{"not exposed", "go = N.hidden", diag.RenameUnknownName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := compile(t,
				`
module N exposing (g)
hidden = 1
g = 2
`,
				"module M exposing (..)\nimport N\n"+tt.use)
			err := errs["M"]
			if err == nil || err.Code != tt.code {
				t.Fatalf("err = %+v, want code %v", err, tt.code)
			}
		})
	}
}

func TestNativeDefUnsupported(t *testing.T) {
	_, errs := compile(t, `
module M exposing (..)
native print : ()
`)
	err := errs["M"]
	if err == nil || err.Code != diag.RenameNativeDefUnsupported {
		t.Fatalf("err = %+v", err)
	}
}

func TestAnnotationTypeVars(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
id : a -> a
id x = x
`)
	ann := findValue(t, m, "id").Annotation.(*renamed.TypeFunc)
	from := ann.From.(*renamed.TypeVar)
	to := ann.To.(*renamed.TypeVar)
	if !from.Var.Same(to.Var) {
		t.Error("both occurrences of 'a' must share one Unique")
	}
}

func TestTypeDeclRejectsUnknownTypeVar(t *testing.T) {
	_, errs := compile(t, `
module M exposing (..)
type Box a = Box b
`)
	err := errs["M"]
	if err == nil || err.Code != diag.RenameUnknownTypeVariable {
		t.Fatalf("err = %+v", err)
	}
}

func TestTypeDeclParamsScope(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
type Pair a b = MkPair a b
`)
	var td *renamed.TypeDecl
	for _, d := range m.Decls {
		if x, ok := d.(*renamed.TypeDecl); ok {
			td = x
		}
	}
	if td == nil || len(td.Params) != 2 {
		t.Fatalf("type decl %+v", td)
	}
	arg0 := td.Ctors[0].Args[0].(*renamed.TypeVar)
	if !arg0.Var.Same(td.Params[0]) {
		t.Error("constructor argument must reference the declared parameter")
	}
}

func TestCtorResolvesInExprAndPattern(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
type Maybe a = Just a | Nothing
wrap = Just
unwrap x = match x with
  | Just y -> y
  | Nothing -> 0
`)
	ctor := findValue(t, m, "wrap").Body.(*renamed.CtorExpr)
	if ctor.Ref.Kind != names.RefGlobal || ctor.Ref.Global.Name != "Just" {
		t.Errorf("ctor expr ref = %v", ctor.Ref)
	}
	lam := findValue(t, m, "unwrap").Body.(*renamed.Lambda)
	match := lam.Body.(*renamed.Match)
	pc := match.Arms[0].Pat.(*renamed.PatCtor)
	if pc.Ctor.Global.Name != "Just" || pc.Ctor.Global.Module != "M" {
		t.Errorf("pattern ctor ref = %v", pc.Ctor)
	}
}

func TestExposingTypeOnlyHidesCtors(t *testing.T) {
	_, errs := compile(t,
		`
module N exposing (Maybe)
type Maybe a = Just a | Nothing
`, `
module M exposing (..)
import N exposing (Maybe(..))
wrap = Just
`)
	// N экспонирует только тип: Just не видим даже через Maybe(..)
	err := errs["M"]
	if err == nil || err.Code != diag.RenameUnknownName {
		t.Fatalf("err = %+v", err)
	}

	mods, errs := compile(t,
		`
module N exposing (Maybe(..))
type Maybe a = Just a | Nothing
`, `
module M exposing (..)
import N exposing (Maybe(..))
wrap = Just
`)
	if len(errs) != 0 {
		t.Fatalf("errs = %+v", errs)
	}
	ctor := findValue(t, mods["M"], "wrap").Body.(*renamed.CtorExpr)
	if ctor.Ref.Global.Module != "N" {
		t.Errorf("ctor ref = %v", ctor.Ref)
	}
}

func TestForwardAndMutualReferences(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
isEven n = isOdd n
isOdd n = isEven n
`)
	lam := findValue(t, m, "isEven").Body.(*renamed.Lambda)
	app := lam.Body.(*renamed.Apply)
	fn := app.Fn.(*renamed.Var)
	if fn.Ref.Kind != names.RefGlobal || fn.Ref.Global.Name != "isOdd" {
		t.Errorf("forward reference resolved to %v", fn.Ref)
	}
}

func TestDeclarationSortDepsFirst(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
g = f
f = 1
`)
	order := make([]names.VarName, 0, 2)
	for _, d := range m.Decls {
		order = append(order, d.(*renamed.ValueDecl).Name)
	}
	if order[0] != "f" || order[1] != "g" {
		t.Errorf("order = %v, want f before g", order)
	}
}

func TestFailureDoesNotAbortSiblingModules(t *testing.T) {
	mods, errs := compile(t,
		`
module Bad exposing (..)
f = missing
`, `
module Good exposing (..)
g = 1
`)
	if _, ok := errs["Bad"]; !ok {
		t.Error("Bad must fail")
	}
	if _, ok := mods["Good"]; !ok {
		t.Error("Good must still rename")
	}
}

func TestUniquenessAcrossModule(t *testing.T) {
	m := mustCompileOne(t, `
module M exposing (..)
f = \x -> \x -> x
g = \x -> x
`)
	seen := make(map[uint64]string)
	var visit func(e renamed.Expr)
	record := func(u renamed.UVar) {
		if prev, dup := seen[u.ID]; dup {
			t.Errorf("Unique %d reused (%s and %s)", u.ID, prev, u.Base)
		}
		seen[u.ID] = string(u.Base)
	}
	visit = func(e renamed.Expr) {
		switch e := e.(type) {
		case *renamed.Lambda:
			for _, p := range e.Params {
				if pv, ok := p.(*renamed.PatVar); ok {
					record(pv.Binder)
				}
			}
			visit(e.Body)
		case *renamed.LetIn:
			record(e.Binder)
			visit(e.Value)
			visit(e.Body)
		}
	}
	for _, d := range m.Decls {
		if vd, ok := d.(*renamed.ValueDecl); ok {
			visit(vd.Body)
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 distinct binders, saw %d", len(seen))
	}
}

func TestResolutionSoundness(t *testing.T) {
	mods, errs := compile(t,
		`
module Core exposing (id, compose)
id x = x
compose f g = \x -> f (g x)
`, `
module M exposing (..)
import Core exposing (..)
use = compose id id
`)
	if len(errs) != 0 {
		t.Fatalf("errs = %+v", errs)
	}
	core := mods["Core"]
	for _, d := range mods["M"].Decls {
		vd, ok := d.(*renamed.ValueDecl)
		if !ok {
			continue
		}
		walkExpr(vd.Body, func(ref names.VarRef) {
			if ref.Kind != names.RefGlobal || ref.Global.Module != "Core" {
				return
			}
			found := false
			for _, cd := range core.Decls {
				if cvd, ok := cd.(*renamed.ValueDecl); ok && cvd.Name == ref.Global.Name {
					found = true
				}
			}
			if !found {
				t.Errorf("emitted unresolvable ref %v", ref)
			}
		}, func(names.TypeRef) {})
	}
}
