package ast

import (
	"fen/internal/names"
	"fen/internal/source"
)

// Decl is the top-level declaration sum. Every declaration knows its owning
// module so a (module, name) pair identifies it globally.
type Decl[V, T, B, W any] interface {
	Span() source.Span
	declNode()
}

// ValueDecl is "name = expr", optionally preceded by "name : type".
type ValueDecl[V, T, B, W any] struct {
	Sp         source.Span
	Module     names.ModuleName
	Name       names.VarName
	NameSpan   source.Span
	Annotation Type[T, W] // nil when unannotated
	Body       Expr[V, T, B, W]
}

// CtorDef is one constructor of an ADT.
type CtorDef[T, W any] struct {
	Name     names.TypeName
	NameSpan source.Span
	Args     []Type[T, W]
}

// TypeDecl declares an ADT ("type T a = C1 a | C2") or an alias
// ("type alias T a = ..."). Exactly one of Ctors/Alias is populated.
type TypeDecl[V, T, B, W any] struct {
	Sp       source.Span
	Module   names.ModuleName
	Name     names.TypeName
	NameSpan source.Span
	Params   []W
	Ctors    []CtorDef[T, W]
	Alias    Type[T, W] // non-nil for aliases
}

// IsAlias reports whether the declaration is a type alias.
func (d *TypeDecl[V, T, B, W]) IsAlias() bool { return d.Alias != nil }

// NativeDecl is "native name : type". The renamer always rejects it.
type NativeDecl[V, T, B, W any] struct {
	Sp         source.Span
	Module     names.ModuleName
	Name       names.VarName
	NameSpan   source.Span
	Annotation Type[T, W]
}

func (d *ValueDecl[V, T, B, W]) Span() source.Span  { return d.Sp }
func (d *TypeDecl[V, T, B, W]) Span() source.Span   { return d.Sp }
func (d *NativeDecl[V, T, B, W]) Span() source.Span { return d.Sp }

func (*ValueDecl[V, T, B, W]) declNode()  {}
func (*TypeDecl[V, T, B, W]) declNode()   {}
func (*NativeDecl[V, T, B, W]) declNode() {}
