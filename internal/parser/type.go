package parser

import (
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
	"fen/internal/token"
)

// parseType: appType ("->" type)? — стрелка правоассоциативна.
func (p *Parser) parseType() (surface.Type, bool) {
	left, ok := p.parseAppType()
	if !ok {
		return nil, false
	}
	if p.eat(token.Arrow) {
		right, ok := p.parseType()
		if !ok {
			return nil, false
		}
		return &surface.TypeFunc{
			Sp:   left.Span().Cover(right.Span()),
			From: left,
			To:   right,
		}, true
	}
	return left, true
}

// parseAppType: atomType+ — применение конструктора к аргументам.
func (p *Parser) parseAppType() (surface.Type, bool) {
	head, ok := p.parseAtomType()
	if !ok {
		return nil, false
	}
	if !p.atAtomTypeStart() {
		return head, true
	}
	ctor, isCtor := head.(*surface.TypeCtor)
	if !isCtor {
		p.errorf(diag.SynExpectType, p.tok.Span,
			"only a type constructor can take type arguments")
		return nil, false
	}
	for p.atAtomTypeStart() {
		arg, ok := p.parseAtomType()
		if !ok {
			return nil, false
		}
		ctor.Args = append(ctor.Args, arg)
		ctor.Sp = ctor.Sp.Cover(arg.Span())
	}
	return ctor, true
}

// atAtomTypeStart подчиняется той же границе объявлений, что и выражения:
// аннотация "id : a -> a" не должна втягивать "id x = x" как аргументы типа.
func (p *Parser) atAtomTypeStart() bool {
	switch p.tok.Kind {
	case token.LowerIdent, token.UpperIdent, token.QualUpper, token.LParen:
		return !p.declBoundary()
	default:
		return false
	}
}

// parseAtomType: переменная | конструктор | "()" | "(" type ")" | кортеж
func (p *Parser) parseAtomType() (surface.Type, bool) {
	switch p.tok.Kind {
	case token.LowerIdent:
		t := p.tok
		p.advance()
		return &surface.TypeVar{Sp: t.Span, Var: names.TypeVarName(t.Text)}, true

	case token.UpperIdent, token.QualUpper:
		t := p.tok
		p.advance()
		return &surface.TypeCtor{Sp: t.Span, Ctor: splitName(t)}, true

	case token.LParen:
		open := p.tok
		p.advance()
		if p.at(token.RParen) {
			closing := p.tok
			p.advance()
			return &surface.TypeUnit{Sp: open.Span.Cover(closing.Span)}, true
		}
		first, ok := p.parseType()
		if !ok {
			return nil, false
		}
		elems := []surface.Type{first}
		for p.eat(token.Comma) {
			next, ok := p.parseType()
			if !ok {
				return nil, false
			}
			elems = append(elems, next)
		}
		closing, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter)
		if !ok {
			return nil, false
		}
		if len(elems) == 1 {
			return first, true
		}
		return &surface.TypeTuple{Sp: open.Span.Cover(closing.Span), Elems: elems}, true

	default:
		p.errorf(diag.SynExpectType, p.tok.Span,
			"expected a type, found %s", p.tok.Kind)
		return nil, false
	}
}
