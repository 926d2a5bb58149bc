package parser

import (
	"fen/internal/ast"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
	"fen/internal/token"
)

// parsePattern: конструктор с аргументами или cons-цепочка.
// "h :: t" правоассоциативен; конструктор с аргументами допустим только
// на верхнем уровне или в скобках.
func (p *Parser) parsePattern() (surface.Pattern, bool) {
	var left surface.Pattern
	if p.at(token.UpperIdent) || p.at(token.QualUpper) {
		ctor, ok := p.parseCtorPattern()
		if !ok {
			return nil, false
		}
		left = ctor
	} else {
		atom, ok := p.parseAtomPattern()
		if !ok {
			return nil, false
		}
		left = atom
	}

	if p.at(token.Operator) && p.tok.Text == "::" {
		p.advance()
		tail, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		return &surface.PatCons{
			Sp:   left.Span().Cover(tail.Span()),
			Head: left,
			Tail: tail,
		}, true
	}
	return left, true
}

// parseCtorPattern: UpperIdent atomPattern*
func (p *Parser) parseCtorPattern() (surface.Pattern, bool) {
	t := p.tok
	p.advance()
	pat := &surface.PatCtor{Sp: t.Span, Ctor: splitName(t)}
	for p.atAtomPatternStart() {
		arg, ok := p.parseAtomPattern()
		if !ok {
			return nil, false
		}
		pat.Args = append(pat.Args, arg)
		pat.Sp = pat.Sp.Cover(arg.Span())
	}
	return pat, true
}

func (p *Parser) atAtomPatternStart() bool {
	switch p.tok.Kind {
	case token.LowerIdent, token.Underscore, token.UpperIdent, token.QualUpper,
		token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.LParen, token.LBracket:
		return true
	default:
		return false
	}
}

// parseAtomPattern: переменная | "_" | литерал | конструктор без аргументов |
// "(" pattern ")" | кортеж | список
func (p *Parser) parseAtomPattern() (surface.Pattern, bool) {
	switch p.tok.Kind {
	case token.LowerIdent:
		t := p.tok
		p.advance()
		return &surface.PatVar{Sp: t.Span, Binder: names.VarName(t.Text)}, true

	case token.Underscore:
		t := p.tok
		p.advance()
		return &surface.PatWildcard{Sp: t.Span}, true

	case token.UpperIdent, token.QualUpper:
		t := p.tok
		p.advance()
		return &surface.PatCtor{Sp: t.Span, Ctor: splitName(t)}, true

	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit:
		lit, ok := p.parseLiteral()
		if !ok {
			return nil, false
		}
		return &surface.PatLit{Sp: lit.Sp, Value: lit.Value}, true

	case token.LParen:
		open := p.tok
		p.advance()
		if p.at(token.RParen) {
			closing := p.tok
			p.advance()
			return &surface.PatLit{
				Sp:    open.Span.Cover(closing.Span),
				Value: ast.UnitLiteral(),
			}, true
		}
		first, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		elems := []surface.Pattern{first}
		for p.eat(token.Comma) {
			next, ok := p.parsePattern()
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
		return &surface.PatTuple{Sp: open.Span.Cover(closing.Span), Elems: elems}, true

	case token.LBracket:
		open := p.tok
		p.advance()
		var elems []surface.Pattern
		if !p.at(token.RBracket) {
			for {
				el, ok := p.parsePattern()
				if !ok {
					return nil, false
				}
				elems = append(elems, el)
				if !p.eat(token.Comma) {
					break
				}
			}
		}
		closing, ok := p.expect(token.RBracket, diag.SynUnclosedDelimiter)
		if !ok {
			return nil, false
		}
		return &surface.PatList{Sp: open.Span.Cover(closing.Span), Elems: elems}, true

	default:
		p.errorf(diag.SynExpectPattern, p.tok.Span,
			"expected a pattern, found %s", p.tok.Kind)
		return nil, false
	}
}
