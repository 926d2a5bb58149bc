package rename

import (
	"fen/internal/ast"
	"fen/internal/ast/renamed"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
)

func (c *context) renameExpr(e surface.Expr) (renamed.Expr, *Error) {
	switch e := e.(type) {
	case *surface.Lit:
		return &renamed.Lit{Sp: e.Sp, Value: e.Value}, nil

	case *surface.Var:
		ref, err := c.lookupVar(e.Ref)
		if err != nil {
			return nil, err
		}
		return &renamed.Var{Sp: e.Sp, Ref: ref}, nil

	case *surface.CtorExpr:
		ref, err := c.lookupType(e.Ref)
		if err != nil {
			return nil, err
		}
		return &renamed.CtorExpr{Sp: e.Sp, Ref: ref}, nil

	case *surface.Apply:
		fn, err := c.renameExpr(e.Fn)
		if err != nil {
			return nil, err
		}
		out := &renamed.Apply{Sp: e.Sp, Fn: fn}
		for _, arg := range e.Args {
			ra, err := c.renameExpr(arg)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, ra)
		}
		return out, nil

	case *surface.BinOp:
		// Оператор резолвится как обычная переменная; Infixed — чисто
		// косметический флаг для печати.
		op, err := c.lookupVar(e.Op)
		if err != nil {
			return nil, err
		}
		left, err := c.renameExpr(e.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.renameExpr(e.Right)
		if err != nil {
			return nil, err
		}
		return &renamed.BinOp{
			Sp:      e.Sp,
			Op:      op,
			OpSpan:  e.OpSpan,
			Infixed: e.Infixed,
			Left:    left,
			Right:   right,
		}, nil

	case *surface.Lambda:
		return c.renameLambda(e, e.Params)

	case *surface.LetIn:
		value, err := c.renameExpr(e.Value)
		if err != nil {
			return nil, err
		}
		defer c.restore(c.save())
		u := names.Fresh(c.r.supply, e.Binder)
		c.vars[e.Binder] = names.LocalRef(u)
		body, err := c.renameExpr(e.Body)
		if err != nil {
			return nil, err
		}
		return &renamed.LetIn{
			Sp:         e.Sp,
			Binder:     u,
			BinderSpan: e.BinderSpan,
			Value:      value,
			Body:       body,
		}, nil

	case *surface.Block:
		return c.renameBlock(e)

	case *surface.If:
		cond, err := c.renameExpr(e.Cond)
		if err != nil {
			return nil, err
		}
		then, err := c.renameExpr(e.Then)
		if err != nil {
			return nil, err
		}
		els, err := c.renameExpr(e.Else)
		if err != nil {
			return nil, err
		}
		return &renamed.If{Sp: e.Sp, Cond: cond, Then: then, Else: els}, nil

	case *surface.Match:
		scrut, err := c.renameExpr(e.Scrutinee)
		if err != nil {
			return nil, err
		}
		out := &renamed.Match{Sp: e.Sp, Scrutinee: scrut}
		for _, arm := range e.Arms {
			ra, err := c.renameArm(arm)
			if err != nil {
				return nil, err
			}
			out.Arms = append(out.Arms, ra)
		}
		return out, nil

	case *surface.ListLit:
		out := &renamed.ListLit{Sp: e.Sp}
		for _, el := range e.Elems {
			re, err := c.renameExpr(el)
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, re)
		}
		return out, nil

	case *surface.TupleLit:
		out := &renamed.TupleLit{Sp: e.Sp}
		for _, el := range e.Elems {
			re, err := c.renameExpr(el)
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, re)
		}
		return out, nil

	default:
		panic("unreachable expression kind")
	}
}

func (c *context) renameArm(arm surface.MatchArm) (renamed.MatchArm, *Error) {
	// Связывания паттерна видимы только телу своей ветки.
	defer c.restore(c.save())
	pat, err := c.renamePattern(arm.Pat)
	if err != nil {
		return renamed.MatchArm{}, err
	}
	body, err := c.renameExpr(arm.Body)
	if err != nil {
		return renamed.MatchArm{}, err
	}
	return renamed.MatchArm{Pat: pat, Body: body}, nil
}

// renameLambda раскручивает многопараметровую лямбду во вложенные унарные.
// Параметр-переменная связывается напрямую; любой другой паттерн заменяется
// синтетической переменной и немедленным match:
//
//	\(x :: xs) -> e   =>   \cons#N -> match cons#N with | x :: xs -> e
func (c *context) renameLambda(lam *surface.Lambda, params []surface.Pattern) (renamed.Expr, *Error) {
	defer c.restore(c.save())

	head := params[0]
	var bodyOf func() (renamed.Expr, *Error)
	if len(params) == 1 {
		bodyOf = func() (renamed.Expr, *Error) { return c.renameExpr(lam.Body) }
	} else {
		bodyOf = func() (renamed.Expr, *Error) { return c.renameLambda(lam, params[1:]) }
	}

	if pv, ok := head.(*surface.PatVar); ok {
		u := names.Fresh(c.r.supply, pv.Binder)
		c.vars[pv.Binder] = names.LocalRef(u)
		body, err := bodyOf()
		if err != nil {
			return nil, err
		}
		return &renamed.Lambda{
			Sp:     lam.Sp,
			Params: []renamed.Pattern{&renamed.PatVar{Sp: pv.Sp, Binder: u}},
			Body:   body,
		}, nil
	}

	u := names.Fresh(c.r.supply, syntheticName(head))
	pat, err := c.renamePattern(head)
	if err != nil {
		return nil, err
	}
	body, err := bodyOf()
	if err != nil {
		return nil, err
	}
	match := &renamed.Match{
		Sp:        lam.Sp,
		Scrutinee: &renamed.Var{Sp: head.Span(), Ref: names.LocalRef(u)},
		Arms:      []renamed.MatchArm{{Pat: pat, Body: body}},
	}
	return &renamed.Lambda{
		Sp:     lam.Sp,
		Params: []renamed.Pattern{&renamed.PatVar{Sp: head.Span(), Binder: u}},
		Body:   match,
	}, nil
}

// syntheticName описывает форму паттерна; имя чисто косметическое,
// уникальность даёт ID.
func syntheticName(p surface.Pattern) names.VarName {
	switch p := p.(type) {
	case *surface.PatWildcard:
		return "wildcard"
	case *surface.PatLit:
		switch p.Value.Kind {
		case ast.LitInt:
			return "int"
		case ast.LitFloat:
			return "float"
		case ast.LitChar:
			return "char"
		case ast.LitString:
			return "string"
		default:
			return "unit"
		}
	case *surface.PatCtor:
		return "constructor"
	case *surface.PatList:
		return "list"
	case *surface.PatCons:
		return "cons"
	case *surface.PatTuple:
		return "tuple"
	default:
		return "pattern"
	}
}

// renameBlock: блок без let-ов остаётся блоком независимых выражений,
// let-элементы разворачиваются во вложенные let-in, единственное выражение
// раскрывается без обёртки. Блок, оканчивающийся let-ом, — ошибка.
func (c *context) renameBlock(b *surface.Block) (renamed.Expr, *Error) {
	defer c.restore(c.save())
	return c.renameBlockElems(b, b.Elems)
}

func (c *context) renameBlockElems(b *surface.Block, elems []surface.BlockElem) (renamed.Expr, *Error) {
	head := elems[0]
	if len(elems) == 1 {
		if head.IsLet {
			return nil, errorf(diag.RenameBlockEndsWithLet, head.BinderSpan,
				"block in declaration %q ends with a let; a let cannot be the value of a block",
				c.currentDecl)
		}
		return c.renameExpr(head.Value)
	}

	if head.IsLet {
		value, err := c.renameExpr(head.Value)
		if err != nil {
			return nil, err
		}
		u := names.Fresh(c.r.supply, head.Binder)
		c.vars[head.Binder] = names.LocalRef(u)
		body, err := c.renameBlockElems(b, elems[1:])
		if err != nil {
			return nil, err
		}
		return &renamed.LetIn{
			Sp:         b.Sp,
			Binder:     u,
			BinderSpan: head.BinderSpan,
			Value:      value,
			Body:       body,
		}, nil
	}

	first, err := c.renameExpr(head.Value)
	if err != nil {
		return nil, err
	}
	rest, err := c.renameBlockElems(b, elems[1:])
	if err != nil {
		return nil, err
	}
	out := &renamed.Block{Sp: b.Sp}
	out.Elems = append(out.Elems, renamed.BlockElem{Value: first})
	if tail, ok := rest.(*renamed.Block); ok {
		out.Elems = append(out.Elems, tail.Elems...)
	} else {
		out.Elems = append(out.Elems, renamed.BlockElem{Value: rest})
	}
	return out, nil
}

// renamePattern мутирует контекст: связывания видимы остатку паттерна и
// далее до ближайшего restore у вызывающего.
func (c *context) renamePattern(p surface.Pattern) (renamed.Pattern, *Error) {
	switch p := p.(type) {
	case *surface.PatVar:
		u := names.Fresh(c.r.supply, p.Binder)
		c.vars[p.Binder] = names.LocalRef(u)
		return &renamed.PatVar{Sp: p.Sp, Binder: u}, nil

	case *surface.PatWildcard:
		return &renamed.PatWildcard{Sp: p.Sp}, nil

	case *surface.PatLit:
		return &renamed.PatLit{Sp: p.Sp, Value: p.Value}, nil

	case *surface.PatCtor:
		ref, err := c.lookupType(p.Ctor)
		if err != nil {
			return nil, err
		}
		out := &renamed.PatCtor{Sp: p.Sp, Ctor: ref}
		for _, arg := range p.Args {
			ra, err := c.renamePattern(arg)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, ra)
		}
		return out, nil

	case *surface.PatList:
		out := &renamed.PatList{Sp: p.Sp}
		for _, el := range p.Elems {
			re, err := c.renamePattern(el)
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, re)
		}
		return out, nil

	case *surface.PatCons:
		head, err := c.renamePattern(p.Head)
		if err != nil {
			return nil, err
		}
		tail, err := c.renamePattern(p.Tail)
		if err != nil {
			return nil, err
		}
		return &renamed.PatCons{Sp: p.Sp, Head: head, Tail: tail}, nil

	case *surface.PatTuple:
		out := &renamed.PatTuple{Sp: p.Sp}
		for _, el := range p.Elems {
			re, err := c.renamePattern(el)
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, re)
		}
		return out, nil

	default:
		panic("unreachable pattern kind")
	}
}
