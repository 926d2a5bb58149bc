package parser

import (
	"testing"

	"fen/internal/ast"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/source"
)

func parse(t *testing.T, src string) (*surface.Module, *diag.Bag, bool) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.fen", []byte(src)))
	bag := diag.NewBag(16)
	m, ok := ParseModule(file, diag.BagReporter{Bag: bag})
	return m, bag, ok
}

func mustParse(t *testing.T, src string) *surface.Module {
	t.Helper()
	m, bag, ok := parse(t, src)
	if !ok {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	return m
}

func TestParseModuleHeader(t *testing.T) {
	m := mustParse(t, `
module Data.Maybe exposing (Maybe(..), map, (|>))
import Core exposing (..)
import Data.List
`)
	if m.Name != "Data.Maybe" {
		t.Errorf("module name = %q", m.Name)
	}
	if m.Exposing.All {
		t.Error("explicit exposing list misparsed as (..)")
	}
	if len(m.Exposing.Items) != 3 {
		t.Fatalf("exposing items = %d", len(m.Exposing.Items))
	}
	wantKinds := []ast.ExposeKind{ast.ExposeTypeWithCtors, ast.ExposeValue, ast.ExposeOp}
	for i, k := range wantKinds {
		if m.Exposing.Items[i].Kind != k {
			t.Errorf("item %d kind = %v, want %v", i, m.Exposing.Items[i].Kind, k)
		}
	}
	if len(m.Imports) != 2 {
		t.Fatalf("imports = %d", len(m.Imports))
	}
	if m.Imports[0].Exposing == nil || !m.Imports[0].Exposing.All {
		t.Error("Core import must expose everything")
	}
	if m.Imports[1].Exposing != nil {
		t.Error("bare import must carry no exposing list")
	}
}

func TestParseValueDeclWithParams(t *testing.T) {
	m := mustParse(t, `
module M exposing (..)
const x _ = x
`)
	d, ok := m.Decls[0].(*surface.ValueDecl)
	if !ok {
		t.Fatalf("decl type %T", m.Decls[0])
	}
	if d.Name != "const" || d.Module != "M" {
		t.Errorf("decl identity = %s.%s", d.Module, d.Name)
	}
	lam, ok := d.Body.(*surface.Lambda)
	if !ok {
		t.Fatalf("params must fold into a lambda, got %T", d.Body)
	}
	if len(lam.Params) != 2 {
		t.Fatalf("lambda params = %d", len(lam.Params))
	}
	if _, ok := lam.Params[0].(*surface.PatVar); !ok {
		t.Errorf("first param %T", lam.Params[0])
	}
	if _, ok := lam.Params[1].(*surface.PatWildcard); !ok {
		t.Errorf("second param %T", lam.Params[1])
	}
}

func TestParseAnnotationMerging(t *testing.T) {
	m := mustParse(t, `
module M exposing (..)
id : a -> a
id x = x
`)
	d := m.Decls[0].(*surface.ValueDecl)
	if d.Annotation == nil {
		t.Fatal("annotation was not attached to the value declaration")
	}
	if _, ok := d.Annotation.(*surface.TypeFunc); !ok {
		t.Errorf("annotation %T", d.Annotation)
	}
}

func TestParseConsecutiveDecls(t *testing.T) {
	// Аппликация не должна втягивать имя следующего объявления: тело g
	// заканчивается атомом, за ним идут новые объявления с первой колонки.
	m := mustParse(t, `
module M exposing (..)
n : Int
n = 0
g = f
f = 1
wrap = Just
unwrap x = x
`)
	if len(m.Decls) != 5 {
		t.Fatalf("decls = %d, want 5", len(m.Decls))
	}
	g := m.Decls[1].(*surface.ValueDecl)
	if g.Name != "g" {
		t.Fatalf("second decl = %q", g.Name)
	}
	if _, ok := g.Body.(*surface.Var); !ok {
		t.Errorf("body of g must stay a bare var, got %T", g.Body)
	}
	wrap := m.Decls[3].(*surface.ValueDecl)
	if _, ok := wrap.Body.(*surface.CtorExpr); !ok {
		t.Errorf("body of wrap must stay a bare constructor, got %T", wrap.Body)
	}
	unwrap := m.Decls[4].(*surface.ValueDecl)
	if unwrap.Name != "unwrap" {
		t.Errorf("last decl = %q", unwrap.Name)
	}
}

func TestParseAnnotationBeforeParamDecl(t *testing.T) {
	// Тип в аннотации не должен втягивать имя следующего объявления как
	// аргумент конструктора.
	m := mustParse(t, `
module M exposing (..)
id : a -> a
id x = x
next : Int
next = 1
`)
	if len(m.Decls) != 2 {
		t.Fatalf("decls = %d, want 2", len(m.Decls))
	}
	id := m.Decls[0].(*surface.ValueDecl)
	fn, ok := id.Annotation.(*surface.TypeFunc)
	if !ok {
		t.Fatalf("annotation %T", id.Annotation)
	}
	if _, ok := fn.To.(*surface.TypeVar); !ok {
		t.Errorf("result of the annotation must be a type variable, got %T", fn.To)
	}
	next := m.Decls[1].(*surface.ValueDecl)
	if next.Name != "next" || next.Annotation == nil {
		t.Errorf("second decl lost its annotation: %+v", next)
	}
}

func TestParseApplicationSpansLineWhenIndented(t *testing.T) {
	// Продолжение аппликации с отступом остаётся аргументом
	m := mustParse(t, "module M exposing (..)\nr = f 1\n  2\n")
	app, ok := m.Decls[0].(*surface.ValueDecl).Body.(*surface.Apply)
	if !ok {
		t.Fatalf("body %T", m.Decls[0].(*surface.ValueDecl).Body)
	}
	if len(app.Args) != 2 {
		t.Errorf("args = %d, want the indented line folded in", len(app.Args))
	}
}

func TestParseDanglingAnnotation(t *testing.T) {
	_, bag, ok := parse(t, `
module M exposing (..)
id : a -> a
other x = x
`)
	if ok {
		t.Fatal("expected failure")
	}
	if d, found := bag.FirstError(); !found || d.Code != diag.SynDanglingAnnotation {
		t.Errorf("first error %+v", d)
	}
}

func TestParseTypeDecl(t *testing.T) {
	m := mustParse(t, `
module M exposing (..)
type Maybe a = Just a | Nothing
type alias Pair a b = (a, b)
`)
	adt := m.Decls[0].(*surface.TypeDecl)
	if adt.IsAlias() {
		t.Error("ADT parsed as alias")
	}
	if adt.Name != "Maybe" || len(adt.Params) != 1 || len(adt.Ctors) != 2 {
		t.Errorf("unexpected ADT %+v", adt)
	}
	if adt.Ctors[0].Name != "Just" || len(adt.Ctors[0].Args) != 1 {
		t.Errorf("unexpected first ctor %+v", adt.Ctors[0])
	}

	alias := m.Decls[1].(*surface.TypeDecl)
	if !alias.IsAlias() || len(alias.Params) != 2 {
		t.Errorf("unexpected alias %+v", alias)
	}
	if _, ok := alias.Alias.(*surface.TypeTuple); !ok {
		t.Errorf("alias body %T", alias.Alias)
	}
}

func TestParseNativeDecl(t *testing.T) {
	m := mustParse(t, `
module M exposing (..)
native print : String -> ()
`)
	d := m.Decls[0].(*surface.NativeDecl)
	if d.Name != "print" {
		t.Errorf("native name = %q", d.Name)
	}
	fn, ok := d.Annotation.(*surface.TypeFunc)
	if !ok {
		t.Fatalf("annotation %T", d.Annotation)
	}
	if _, ok := fn.To.(*surface.TypeUnit); !ok {
		t.Errorf("result type %T", fn.To)
	}
}

func TestParseMatch(t *testing.T) {
	m := mustParse(t, `
module M exposing (..)
len xs = match xs with
  | [] -> 0
  | _ :: t -> 1 + len t
`)
	lam := m.Decls[0].(*surface.ValueDecl).Body.(*surface.Lambda)
	match, ok := lam.Body.(*surface.Match)
	if !ok {
		t.Fatalf("body %T", lam.Body)
	}
	if len(match.Arms) != 2 {
		t.Fatalf("arms = %d", len(match.Arms))
	}
	if _, ok := match.Arms[0].Pat.(*surface.PatList); !ok {
		t.Errorf("first arm pattern %T", match.Arms[0].Pat)
	}
	cons, ok := match.Arms[1].Pat.(*surface.PatCons)
	if !ok {
		t.Fatalf("second arm pattern %T", match.Arms[1].Pat)
	}
	if _, ok := cons.Head.(*surface.PatWildcard); !ok {
		t.Errorf("cons head %T", cons.Head)
	}
}

func TestParseBlock(t *testing.T) {
	m := mustParse(t, `
module M exposing (..)
f = { let x = 1; let y = 2; x + y }
`)
	block, ok := m.Decls[0].(*surface.ValueDecl).Body.(*surface.Block)
	if !ok {
		t.Fatalf("body %T", m.Decls[0].(*surface.ValueDecl).Body)
	}
	if len(block.Elems) != 3 {
		t.Fatalf("block elems = %d", len(block.Elems))
	}
	if !block.Elems[0].IsLet || block.Elems[0].Binder != "x" {
		t.Errorf("first elem %+v", block.Elems[0])
	}
	if block.Elems[2].IsLet {
		t.Error("tail expression flagged as let")
	}
}

func TestParseBinOpChain(t *testing.T) {
	m := mustParse(t, "module M exposing (..)\nr = 1 + 2 `div` n")
	top, ok := m.Decls[0].(*surface.ValueDecl).Body.(*surface.BinOp)
	if !ok {
		t.Fatal("body is not a binop")
	}
	// Левоассоциативная цепочка: (1 + 2) `div` n
	if !top.Infixed || top.Op.Text != "div" {
		t.Errorf("top op %+v", top.Op)
	}
	inner, ok := top.Left.(*surface.BinOp)
	if !ok {
		t.Fatalf("left %T", top.Left)
	}
	if inner.Infixed || inner.Op.Text != "+" {
		t.Errorf("inner op %+v", inner.Op)
	}
}

func TestParseQualifiedVar(t *testing.T) {
	m := mustParse(t, "module M exposing (..)\nf = Data.List.map g [1, 2]")
	app := m.Decls[0].(*surface.ValueDecl).Body.(*surface.Apply)
	v, ok := app.Fn.(*surface.Var)
	if !ok {
		t.Fatalf("fn %T", app.Fn)
	}
	if v.Ref.Module != "Data.List" || v.Ref.Text != "map" {
		t.Errorf("qualified ref %+v", v.Ref)
	}
	if len(app.Args) != 2 {
		t.Errorf("args = %d", len(app.Args))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"no header", "x = 1", diag.SynExpectModuleHeader},
		{"empty exposing", "module M exposing ()", diag.SynEmptyExposing},
		{"empty match", "module M exposing (..)\nf = match x with", diag.SynEmptyMatch},
		{"empty block", "module M exposing (..)\nf = { }", diag.SynEmptyBlock},
		{"unclosed list", "module M exposing (..)\nf = [1, 2", diag.SynUnclosedDelimiter},
		{"stray token", "module M exposing (..)\n=", diag.SynExpectDeclaration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, bag, ok := parse(t, tt.src)
			if ok {
				t.Fatal("expected failure")
			}
			if d, found := bag.FirstError(); !found || d.Code != tt.code {
				t.Errorf("first error %+v, want code %v", d, tt.code)
			}
		})
	}
}
