package ast

import "fen/internal/source"

// Expr is the expression sum.
type Expr[V, T, B, W any] interface {
	Span() source.Span
	exprNode()
}

// Lit is a literal expression.
type Lit[V, T, B, W any] struct {
	Sp    source.Span
	Value Literal
}

// Var is a value occurrence.
type Var[V, T, B, W any] struct {
	Sp  source.Span
	Ref V
}

// CtorExpr is a data-constructor occurrence in expression position.
// Constructors resolve through the type namespace, hence T, not V.
type CtorExpr[V, T, B, W any] struct {
	Sp  source.Span
	Ref T
}

// Apply is an n-ary application: Fn Args[0] Args[1] ...
type Apply[V, T, B, W any] struct {
	Sp   source.Span
	Fn   Expr[V, T, B, W]
	Args []Expr[V, T, B, W]
}

// BinOp applies a named operator to two operands. Infixed marks a backticked
// function used in operator position; it changes nothing but printing.
type BinOp[V, T, B, W any] struct {
	Sp      source.Span
	Op      V
	OpSpan  source.Span
	Infixed bool
	Left    Expr[V, T, B, W]
	Right   Expr[V, T, B, W]
}

// Lambda abstracts over its parameter patterns. The surface stage allows any
// number of arbitrary patterns; after renaming every Lambda binds exactly one
// PatVar carrying a Unique.
type Lambda[V, T, B, W any] struct {
	Sp     source.Span
	Params []Pattern[T, B]
	Body   Expr[V, T, B, W]
}

// LetIn binds one value in Body: "let x = v in body" after block desugaring.
type LetIn[V, T, B, W any] struct {
	Sp         source.Span
	Binder     B
	BinderSpan source.Span
	Value      Expr[V, T, B, W]
	Body       Expr[V, T, B, W]
}

// BlockElem is one element of a Block; IsLet distinguishes "let x = v" from a
// bare expression.
type BlockElem[V, T, B, W any] struct {
	IsLet      bool
	Binder     B
	BinderSpan source.Span
	Value      Expr[V, T, B, W]
}

// Block is a braced expression sequence. Renaming rewrites any let elements
// into LetIn chains; a surviving renamed Block holds only bare expressions.
type Block[V, T, B, W any] struct {
	Sp    source.Span
	Elems []BlockElem[V, T, B, W]
}

// If is the conditional expression; both branches are mandatory.
type If[V, T, B, W any] struct {
	Sp   source.Span
	Cond Expr[V, T, B, W]
	Then Expr[V, T, B, W]
	Else Expr[V, T, B, W]
}

// MatchArm pairs one pattern with its result expression.
type MatchArm[V, T, B, W any] struct {
	Pat  Pattern[T, B]
	Body Expr[V, T, B, W]
}

// Match scrutinizes one expression against ordered arms.
type Match[V, T, B, W any] struct {
	Sp        source.Span
	Scrutinee Expr[V, T, B, W]
	Arms      []MatchArm[V, T, B, W]
}

// ListLit is a list literal.
type ListLit[V, T, B, W any] struct {
	Sp    source.Span
	Elems []Expr[V, T, B, W]
}

// TupleLit has at least two elements.
type TupleLit[V, T, B, W any] struct {
	Sp    source.Span
	Elems []Expr[V, T, B, W]
}

func (n *Lit[V, T, B, W]) Span() source.Span      { return n.Sp }
func (n *Var[V, T, B, W]) Span() source.Span      { return n.Sp }
func (n *CtorExpr[V, T, B, W]) Span() source.Span { return n.Sp }
func (n *Apply[V, T, B, W]) Span() source.Span    { return n.Sp }
func (n *BinOp[V, T, B, W]) Span() source.Span    { return n.Sp }
func (n *Lambda[V, T, B, W]) Span() source.Span   { return n.Sp }
func (n *LetIn[V, T, B, W]) Span() source.Span    { return n.Sp }
func (n *Block[V, T, B, W]) Span() source.Span    { return n.Sp }
func (n *If[V, T, B, W]) Span() source.Span       { return n.Sp }
func (n *Match[V, T, B, W]) Span() source.Span    { return n.Sp }
func (n *ListLit[V, T, B, W]) Span() source.Span  { return n.Sp }
func (n *TupleLit[V, T, B, W]) Span() source.Span { return n.Sp }

func (*Lit[V, T, B, W]) exprNode()      {}
func (*Var[V, T, B, W]) exprNode()      {}
func (*CtorExpr[V, T, B, W]) exprNode() {}
func (*Apply[V, T, B, W]) exprNode()    {}
func (*BinOp[V, T, B, W]) exprNode()    {}
func (*Lambda[V, T, B, W]) exprNode()   {}
func (*LetIn[V, T, B, W]) exprNode()    {}
func (*Block[V, T, B, W]) exprNode()    {}
func (*If[V, T, B, W]) exprNode()       {}
func (*Match[V, T, B, W]) exprNode()    {}
func (*ListLit[V, T, B, W]) exprNode()  {}
func (*TupleLit[V, T, B, W]) exprNode() {}
