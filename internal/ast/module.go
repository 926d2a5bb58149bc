package ast

import (
	"fen/internal/names"
	"fen/internal/source"
)

// ExposeKind classifies one exposing-list entry.
type ExposeKind uint8

const (
	// ExposeValue exposes a value declaration by name.
	ExposeValue ExposeKind = iota
	// ExposeOp exposes an operator: "(+)" in the exposing list.
	ExposeOp
	// ExposeType exposes a type without its constructors.
	ExposeType
	// ExposeTypeWithCtors exposes a type and all of its constructors: "T(..)".
	ExposeTypeWithCtors
)

// ExposedItem is one entry of an explicit exposing list.
type ExposedItem[E any] struct {
	Sp   source.Span
	Kind ExposeKind
	Name E
}

// Exposing is a module's visibility declaration: everything, or an allow-list.
type Exposing[E any] struct {
	Sp    source.Span
	All   bool
	Items []ExposedItem[E] // empty when All
}

// Import brings another module into scope. A nil Exposing imports the module
// for qualified access only.
type Import[E any] struct {
	Sp         source.Span
	Module     names.ModuleName
	ModuleSpan source.Span
	Exposing   *Exposing[E]
}

// Module is one source file's tree.
type Module[V, T, B, W, E any] struct {
	File     source.FileID
	Name     names.ModuleName
	NameSpan source.Span
	Exposing Exposing[E]
	Imports  []Import[E]
	Decls    []Decl[V, T, B, W]
}
