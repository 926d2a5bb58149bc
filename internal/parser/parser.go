// Package parser builds the surface tree from a token stream. Parsing is
// fail-fast per file: the first syntax error is reported and the file's
// module is discarded, matching the renamer's per-module policy.
package parser

import (
	"fmt"

	"fen/internal/ast"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/lexer"
	"fen/internal/names"
	"fen/internal/source"
	"fen/internal/token"
)

type Parser struct {
	file     *source.File
	lx       *lexer.Lexer
	reporter diag.Reporter
	tok      token.Token
	failed   bool
}

// ParseModule разбирает один файл целиком. ok=false после первой
// синтаксической ошибки; диагностика уже в reporter.
func ParseModule(file *source.File, reporter diag.Reporter) (*surface.Module, bool) {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	p := &Parser{
		file:     file,
		lx:       lexer.New(file, reporter),
		reporter: reporter,
	}
	p.advance()
	m := p.parseModule()
	if p.failed {
		return nil, false
	}
	return m, true
}

func (p *Parser) advance() {
	p.tok = p.lx.Next()
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

// declBoundary: текущий токен открывает следующее объявление верхнего
// уровня. Грамматика без отступов, поэтому границу дают два признака:
// токен стоит в первой колонке строки, либо это lowerIdent прямо перед
// "=" или ":". Продолжение выражения или типа обязано быть с отступом.
func (p *Parser) declBoundary() bool {
	if p.atLineStart() {
		return true
	}
	if p.tok.Kind == token.LowerIdent {
		next := p.peek().Kind
		return next == token.Equals || next == token.Colon
	}
	return false
}

// atLineStart: токен начинается в первой колонке своей строки.
func (p *Parser) atLineStart() bool {
	off := p.tok.Span.Start
	return off == 0 || p.file.Content[off-1] == '\n'
}

func (p *Parser) at(k token.Kind) bool {
	return p.tok.Kind == k
}

// eat потребляет текущий токен, если он ожидаемого типа.
func (p *Parser) eat(k token.Kind) bool {
	if p.tok.Kind == k {
		p.advance()
		return true
	}
	return false
}

// expect как eat, но с диагностикой при несовпадении.
func (p *Parser) expect(k token.Kind, code diag.Code) (token.Token, bool) {
	if p.tok.Kind == k {
		t := p.tok
		p.advance()
		return t, true
	}
	p.errorf(code, p.tok.Span, "expected %s, found %s", k, p.tok.Kind)
	return p.tok, false
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	if p.failed {
		return
	}
	p.failed = true
	diag.ReportError(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// parseModule: "module" ModPath "exposing" exposing imports decl*
func (p *Parser) parseModule() *surface.Module {
	if !p.at(token.KwModule) {
		p.errorf(diag.SynExpectModuleHeader, p.tok.Span,
			"a file must start with a module header")
		return nil
	}
	p.advance()

	name, nameSpan, ok := p.parseModulePath()
	if !ok {
		return nil
	}

	if _, ok := p.expect(token.KwExposing, diag.SynUnexpectedToken); !ok {
		return nil
	}
	exposing, ok := p.parseExposing()
	if !ok {
		return nil
	}

	m := &surface.Module{
		File:     p.file.ID,
		Name:     name,
		NameSpan: nameSpan,
		Exposing: exposing,
	}

	for p.at(token.KwImport) {
		imp, ok := p.parseImport()
		if !ok {
			return nil
		}
		m.Imports = append(m.Imports, imp)
	}

	p.parseDecls(m)
	if p.failed {
		return nil
	}
	return m
}

// parseModulePath принимает UpperIdent или QualUpper как путь модуля.
func (p *Parser) parseModulePath() (names.ModuleName, source.Span, bool) {
	switch p.tok.Kind {
	case token.UpperIdent, token.QualUpper:
		t := p.tok
		p.advance()
		return names.ModuleName(t.Text), t.Span, true
	default:
		p.errorf(diag.SynExpectUpperIdent, p.tok.Span,
			"expected a module path, found %s", p.tok.Kind)
		return "", p.tok.Span, false
	}
}

// parseImport: "import" ModPath ["exposing" exposing]
func (p *Parser) parseImport() (surface.Import, bool) {
	start := p.tok.Span
	p.advance() // 'import'

	name, nameSpan, ok := p.parseModulePath()
	if !ok {
		return surface.Import{}, false
	}
	imp := surface.Import{
		Sp:         start.Cover(nameSpan),
		Module:     name,
		ModuleSpan: nameSpan,
	}
	if p.eat(token.KwExposing) {
		exp, ok := p.parseExposing()
		if !ok {
			return surface.Import{}, false
		}
		imp.Exposing = &exp
		imp.Sp = start.Cover(exp.Sp)
	}
	return imp, true
}

// parseExposing: "(" ".." ")" | "(" item ("," item)* ")"
func (p *Parser) parseExposing() (surface.Exposing, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken)
	if !ok {
		return surface.Exposing{}, false
	}

	if p.at(token.DotDot) {
		p.advance()
		closing, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter)
		if !ok {
			return surface.Exposing{}, false
		}
		return surface.Exposing{Sp: open.Span.Cover(closing.Span), All: true}, true
	}

	if p.at(token.RParen) {
		p.errorf(diag.SynEmptyExposing, open.Span.Cover(p.tok.Span),
			"an exposing list cannot be empty; use (..) to expose everything")
		return surface.Exposing{}, false
	}

	var items []surface.ExposedItem
	for {
		item, ok := p.parseExposedItem()
		if !ok {
			return surface.Exposing{}, false
		}
		items = append(items, item)
		if !p.eat(token.Comma) {
			break
		}
	}
	closing, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter)
	if !ok {
		return surface.Exposing{}, false
	}
	return surface.Exposing{Sp: open.Span.Cover(closing.Span), Items: items}, true
}

// parseExposedItem: lowerIdent | "(" operator ")" | UpperIdent ["(" ".." ")"]
func (p *Parser) parseExposedItem() (surface.ExposedItem, bool) {
	switch p.tok.Kind {
	case token.LowerIdent, token.QualLower:
		t := p.tok
		p.advance()
		return surface.ExposedItem{
			Sp:   t.Span,
			Kind: ast.ExposeValue,
			Name: splitName(t),
		}, true

	case token.LParen:
		open := p.tok
		p.advance()
		op, ok := p.expect(token.Operator, diag.SynExpectIdentifier)
		if !ok {
			return surface.ExposedItem{}, false
		}
		closing, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter)
		if !ok {
			return surface.ExposedItem{}, false
		}
		return surface.ExposedItem{
			Sp:   open.Span.Cover(closing.Span),
			Kind: ast.ExposeOp,
			Name: names.Name{Text: op.Text, Span: op.Span},
		}, true

	case token.UpperIdent, token.QualUpper:
		t := p.tok
		p.advance()
		item := surface.ExposedItem{
			Sp:   t.Span,
			Kind: ast.ExposeType,
			Name: splitName(t),
		}
		if p.at(token.LParen) {
			p.advance()
			if _, ok := p.expect(token.DotDot, diag.SynUnexpectedToken); !ok {
				return surface.ExposedItem{}, false
			}
			closing, ok := p.expect(token.RParen, diag.SynUnclosedDelimiter)
			if !ok {
				return surface.ExposedItem{}, false
			}
			item.Kind = ast.ExposeTypeWithCtors
			item.Sp = t.Span.Cover(closing.Span)
		}
		return item, true

	default:
		p.errorf(diag.SynExpectIdentifier, p.tok.Span,
			"expected an exposing item, found %s", p.tok.Kind)
		return surface.ExposedItem{}, false
	}
}

// splitName разбивает "A.B.name" на квалификатор и имя по последней точке.
func splitName(t token.Token) names.Name {
	switch t.Kind {
	case token.QualLower, token.QualUpper:
		return splitNameText(t.Text, t.Span)
	}
	return names.Name{Text: t.Text, Span: t.Span}
}

// splitNameText — то же для сырого текста; нужен backticked-идентификаторам,
// которые тоже могут быть квалифицированы: `Data.List.foldr`.
func splitNameText(text string, sp source.Span) names.Name {
	for i := len(text) - 1; i >= 0; i-- {
		if text[i] == '.' {
			return names.Name{
				Module: names.ModuleName(text[:i]),
				Text:   text[i+1:],
				Span:   sp,
			}
		}
	}
	return names.Name{Text: text, Span: sp}
}
