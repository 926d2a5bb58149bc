package ast

import "fen/internal/source"

// Pattern is the match-pattern sum.
type Pattern[T, B any] interface {
	Span() source.Span
	patternNode()
}

// PatVar binds a fresh variable.
type PatVar[T, B any] struct {
	Sp     source.Span
	Binder B
}

// PatWildcard matches anything and binds nothing.
type PatWildcard[T, B any] struct {
	Sp source.Span
}

// PatLit matches a literal value.
type PatLit[T, B any] struct {
	Sp    source.Span
	Value Literal
}

// PatCtor matches a constructor application.
type PatCtor[T, B any] struct {
	Sp   source.Span
	Ctor T
	Args []Pattern[T, B]
}

// PatList matches an exact-length list.
type PatList[T, B any] struct {
	Sp    source.Span
	Elems []Pattern[T, B]
}

// PatCons matches head :: tail.
type PatCons[T, B any] struct {
	Sp   source.Span
	Head Pattern[T, B]
	Tail Pattern[T, B]
}

// PatTuple has at least two elements.
type PatTuple[T, B any] struct {
	Sp    source.Span
	Elems []Pattern[T, B]
}

func (n *PatVar[T, B]) Span() source.Span      { return n.Sp }
func (n *PatWildcard[T, B]) Span() source.Span { return n.Sp }
func (n *PatLit[T, B]) Span() source.Span      { return n.Sp }
func (n *PatCtor[T, B]) Span() source.Span     { return n.Sp }
func (n *PatList[T, B]) Span() source.Span     { return n.Sp }
func (n *PatCons[T, B]) Span() source.Span     { return n.Sp }
func (n *PatTuple[T, B]) Span() source.Span    { return n.Sp }

func (*PatVar[T, B]) patternNode()      {}
func (*PatWildcard[T, B]) patternNode() {}
func (*PatLit[T, B]) patternNode()      {}
func (*PatCtor[T, B]) patternNode()     {}
func (*PatList[T, B]) patternNode()     {}
func (*PatCons[T, B]) patternNode()     {}
func (*PatTuple[T, B]) patternNode()    {}
