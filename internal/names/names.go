// Package names defines the identifier vocabulary shared by all compiler
// stages: surface (maybe-qualified) names produced by the parser, and the
// resolved forms — Qualified, Unique and Ref — produced by the renamer.
package names

import (
	"fen/internal/source"
)

type (
	// ModuleName is a dotted module path, e.g. "Data.Maybe".
	ModuleName string
	// VarName names a value-level binding: a function, a local, an operator.
	VarName string
	// TypeName names a type constructor or a data constructor.
	TypeName string
	// TypeVarName names a type variable inside a type expression.
	TypeVarName string
)

// Name is a surface occurrence as written in source, possibly qualified with
// a module prefix. Produced by the parser; the renamer replaces every Name
// with a Ref or Qualified value.
type Name struct {
	Module ModuleName // "" when unqualified
	Text   string
	Span   source.Span
}

// IsQualified reports whether the occurrence carried an explicit module prefix.
func (n Name) IsQualified() bool {
	return n.Module != ""
}

func (n Name) String() string {
	if n.Module == "" {
		return n.Text
	}
	return string(n.Module) + "." + n.Text
}

// Qualified is a surface name confirmed to belong to a specific module.
type Qualified[N ~string] struct {
	Module ModuleName
	Name   N
}

func (q Qualified[N]) String() string {
	return string(q.Module) + "." + string(q.Name)
}
