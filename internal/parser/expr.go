package parser

import (
	"strconv"
	"strings"

	"fen/internal/ast"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
	"fen/internal/token"
)

// parseExpr: лямбда, if, match или цепочка бинарных операторов.
func (p *Parser) parseExpr() (surface.Expr, bool) {
	switch p.tok.Kind {
	case token.Backslash:
		return p.parseLambda()
	case token.KwIf:
		return p.parseIf()
	case token.KwMatch:
		return p.parseMatch()
	default:
		return p.parseBinOpChain()
	}
}

// parseBinOpChain: app (op app)* — плоская левоассоциативная цепочка.
// Переассоциация по приоритетам — забота следующей стадии.
func (p *Parser) parseBinOpChain() (surface.Expr, bool) {
	left, ok := p.parseApply()
	if !ok {
		return nil, false
	}
	for p.at(token.Operator) || p.at(token.InfixIdent) {
		op := p.tok
		p.advance()
		right, ok := p.parseApply()
		if !ok {
			return nil, false
		}
		left = &surface.BinOp{
			Sp:      left.Span().Cover(right.Span()),
			Op:      splitNameText(op.Text, op.Span),
			OpSpan:  op.Span,
			Infixed: op.Kind == token.InfixIdent,
			Left:    left,
			Right:   right,
		}
	}
	return left, true
}

// parseApply: atom+ — аппликация соположением.
func (p *Parser) parseApply() (surface.Expr, bool) {
	fn, ok := p.parseAtomExpr()
	if !ok {
		return nil, false
	}
	var args []surface.Expr
	for p.atAtomExprStart() {
		arg, ok := p.parseAtomExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}
	if len(args) == 0 {
		return fn, true
	}
	return &surface.Apply{
		Sp:   fn.Span().Cover(args[len(args)-1].Span()),
		Fn:   fn,
		Args: args,
	}, true
}

// atAtomExprStart: может ли текущий токен стать аргументом соположения.
// Токен на границе объявления аргументом не считается, иначе аппликация
// съедала бы имя следующего объявления.
func (p *Parser) atAtomExprStart() bool {
	switch p.tok.Kind {
	case token.LowerIdent, token.QualLower, token.UpperIdent, token.QualUpper,
		token.IntLit, token.FloatLit, token.CharLit, token.StringLit,
		token.LParen, token.LBracket, token.LBrace:
		return !p.declBoundary()
	default:
		return false
	}
}

func (p *Parser) parseAtomExpr() (surface.Expr, bool) {
	switch p.tok.Kind {
	case token.IntLit, token.FloatLit, token.CharLit, token.StringLit:
		return p.parseLiteral()

	case token.LowerIdent, token.QualLower:
		t := p.tok
		p.advance()
		return &surface.Var{Sp: t.Span, Ref: splitName(t)}, true

	case token.UpperIdent, token.QualUpper:
		t := p.tok
		p.advance()
		return &surface.CtorExpr{Sp: t.Span, Ref: splitName(t)}, true

	case token.LParen:
		return p.parseParenExpr()

	case token.LBracket:
		return p.parseListExpr()

	case token.LBrace:
		return p.parseBlockExpr()

	default:
		p.errorf(diag.SynExpectExpression, p.tok.Span,
			"expected an expression, found %s", p.tok.Kind)
		return nil, false
	}
}

// parseParenExpr: "()" | "(" op ")" | "(" expr ")" | кортеж
func (p *Parser) parseParenExpr() (surface.Expr, bool) {
	open := p.tok
	p.advance()

	if p.at(token.RParen) {
		closing := p.tok
		p.advance()
		return &surface.Lit{
			Sp:    open.Span.Cover(closing.Span),
			Value: ast.UnitLiteral(),
		}, true
	}

	// Оператор как значение: "(+)"
	if p.at(token.Operator) && p.peek().Kind == token.RParen {
		op := p.tok
		p.advance()
		closing := p.tok
		p.advance()
		return &surface.Var{
			Sp:  open.Span.Cover(closing.Span),
			Ref: names.Name{Text: op.Text, Span: op.Span},
		}, true
	}

	first, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	elems := []surface.Expr{first}
	for p.eat(token.Comma) {
		next, ok := p.parseExpr()
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
	return &surface.TupleLit{Sp: open.Span.Cover(closing.Span), Elems: elems}, true
}

func (p *Parser) parseListExpr() (surface.Expr, bool) {
	open := p.tok
	p.advance()
	var elems []surface.Expr
	if !p.at(token.RBracket) {
		for {
			el, ok := p.parseExpr()
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
	return &surface.ListLit{Sp: open.Span.Cover(closing.Span), Elems: elems}, true
}

// parseBlockExpr: "{" blockElem (";" blockElem)* "}"
// blockElem := "let" lowerIdent pattern* "=" expr | expr
func (p *Parser) parseBlockExpr() (surface.Expr, bool) {
	open := p.tok
	p.advance()

	if p.at(token.RBrace) {
		p.errorf(diag.SynEmptyBlock, open.Span.Cover(p.tok.Span),
			"a block needs at least one expression")
		return nil, false
	}

	var elems []surface.BlockElem
	for {
		elem, ok := p.parseBlockElem()
		if !ok {
			return nil, false
		}
		elems = append(elems, elem)
		if !p.eat(token.Semicolon) {
			break
		}
	}
	closing, ok := p.expect(token.RBrace, diag.SynUnclosedDelimiter)
	if !ok {
		return nil, false
	}
	return &surface.Block{Sp: open.Span.Cover(closing.Span), Elems: elems}, true
}

func (p *Parser) parseBlockElem() (surface.BlockElem, bool) {
	if !p.at(token.KwLet) {
		e, ok := p.parseExpr()
		if !ok {
			return surface.BlockElem{}, false
		}
		return surface.BlockElem{Value: e}, true
	}
	letTok := p.tok
	p.advance()

	nameTok, ok := p.expect(token.LowerIdent, diag.SynExpectIdentifier)
	if !ok {
		return surface.BlockElem{}, false
	}
	var params []surface.Pattern
	for !p.at(token.Equals) && p.atAtomPatternStart() {
		pat, ok := p.parseAtomPattern()
		if !ok {
			return surface.BlockElem{}, false
		}
		params = append(params, pat)
	}
	if _, ok := p.expect(token.Equals, diag.SynUnexpectedToken); !ok {
		return surface.BlockElem{}, false
	}
	value, ok := p.parseExpr()
	if !ok {
		return surface.BlockElem{}, false
	}
	if len(params) > 0 {
		value = &surface.Lambda{
			Sp:     letTok.Span.Cover(value.Span()),
			Params: params,
			Body:   value,
		}
	}
	return surface.BlockElem{
		IsLet:      true,
		Binder:     names.VarName(nameTok.Text),
		BinderSpan: nameTok.Span,
		Value:      value,
	}, true
}

// parseLambda: "\" pattern+ "->" expr
func (p *Parser) parseLambda() (surface.Expr, bool) {
	start := p.tok.Span
	p.advance() // '\'

	var params []surface.Pattern
	for !p.at(token.Arrow) {
		pat, ok := p.parseAtomPattern()
		if !ok {
			return nil, false
		}
		params = append(params, pat)
	}
	if len(params) == 0 {
		p.errorf(diag.SynExpectPattern, p.tok.Span,
			"a lambda needs at least one parameter")
		return nil, false
	}
	p.advance() // '->'

	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &surface.Lambda{
		Sp:     start.Cover(body.Span()),
		Params: params,
		Body:   body,
	}, true
}

// parseIf: "if" expr "then" expr "else" expr
func (p *Parser) parseIf() (surface.Expr, bool) {
	start := p.tok.Span
	p.advance() // 'if'

	cond, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwThen, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	then, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwElse, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	els, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &surface.If{
		Sp:   start.Cover(els.Span()),
		Cond: cond,
		Then: then,
		Else: els,
	}, true
}

// parseMatch: "match" expr "with" ("|" pattern "->" expr)+
func (p *Parser) parseMatch() (surface.Expr, bool) {
	start := p.tok.Span
	p.advance() // 'match'

	scrut, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	withTok, ok := p.expect(token.KwWith, diag.SynUnexpectedToken)
	if !ok {
		return nil, false
	}

	m := &surface.Match{Scrutinee: scrut}
	end := withTok.Span
	for p.eat(token.Pipe) {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Arrow, diag.SynUnexpectedToken); !ok {
			return nil, false
		}
		body, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		m.Arms = append(m.Arms, surface.MatchArm{Pat: pat, Body: body})
		end = body.Span()
	}
	if len(m.Arms) == 0 {
		p.errorf(diag.SynEmptyMatch, start.Cover(withTok.Span),
			"a match needs at least one arm")
		return nil, false
	}
	m.Sp = start.Cover(end)
	return m, true
}

func (p *Parser) parseLiteral() (*surface.Lit, bool) {
	t := p.tok
	p.advance()
	switch t.Kind {
	case token.IntLit:
		clean := strings.ReplaceAll(t.Text, "_", "")
		v, err := strconv.ParseInt(clean, 0, 64)
		if err != nil {
			p.errorf(diag.LexBadNumber, t.Span, "integer literal out of range")
			return nil, false
		}
		return &surface.Lit{Sp: t.Span, Value: ast.IntLiteral(v)}, true

	case token.FloatLit:
		clean := strings.ReplaceAll(t.Text, "_", "")
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			p.errorf(diag.LexBadNumber, t.Span, "float literal out of range")
			return nil, false
		}
		return &surface.Lit{Sp: t.Span, Value: ast.FloatLiteral(v)}, true

	case token.CharLit:
		r, ok := decodeCharLit(t.Text)
		if !ok {
			p.errorf(diag.LexBadEscape, t.Span, "invalid character literal")
			return nil, false
		}
		return &surface.Lit{Sp: t.Span, Value: ast.CharLiteral(r)}, true

	case token.StringLit:
		s, ok := decodeStringLit(t.Text)
		if !ok {
			p.errorf(diag.LexBadEscape, t.Span, "invalid string literal")
			return nil, false
		}
		return &surface.Lit{Sp: t.Span, Value: ast.StringLiteral(s)}, true

	default:
		p.errorf(diag.SynExpectExpression, t.Span,
			"expected a literal, found %s", t.Kind)
		return nil, false
	}
}
