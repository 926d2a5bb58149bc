package ast

import "fen/internal/source"

// Type is the type-expression sum.
type Type[T, W any] interface {
	Span() source.Span
	typeNode()
}

// TypeVar is a type-variable occurrence: 'a' in "Maybe a".
type TypeVar[T, W any] struct {
	Sp  source.Span
	Var W
}

// TypeCtor is a (possibly nullary) type-constructor application: "Maybe a".
type TypeCtor[T, W any] struct {
	Sp   source.Span
	Ctor T
	Args []Type[T, W]
}

// TypeFunc is the function arrow, right-associative.
type TypeFunc[T, W any] struct {
	Sp   source.Span
	From Type[T, W]
	To   Type[T, W]
}

// TypeTuple has at least two elements.
type TypeTuple[T, W any] struct {
	Sp    source.Span
	Elems []Type[T, W]
}

// TypeUnit is the unit type "()".
type TypeUnit[T, W any] struct {
	Sp source.Span
}

func (n *TypeVar[T, W]) Span() source.Span   { return n.Sp }
func (n *TypeCtor[T, W]) Span() source.Span  { return n.Sp }
func (n *TypeFunc[T, W]) Span() source.Span  { return n.Sp }
func (n *TypeTuple[T, W]) Span() source.Span { return n.Sp }
func (n *TypeUnit[T, W]) Span() source.Span  { return n.Sp }

func (*TypeVar[T, W]) typeNode()   {}
func (*TypeCtor[T, W]) typeNode()  {}
func (*TypeFunc[T, W]) typeNode()  {}
func (*TypeTuple[T, W]) typeNode() {}
func (*TypeUnit[T, W]) typeNode()  {}
