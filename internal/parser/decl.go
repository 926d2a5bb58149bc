package parser

import (
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
	"fen/internal/source"
	"fen/internal/token"
)

// pendingAnnotation держит "name : type" до прихода тела "name ... = expr".
type pendingAnnotation struct {
	name     names.VarName
	nameSpan source.Span
	sp       source.Span
	ty       surface.Type
}

func (p *Parser) parseDecls(m *surface.Module) {
	var pending *pendingAnnotation

	flushDangling := func() {
		if pending != nil {
			p.errorf(diag.SynDanglingAnnotation, pending.sp,
				"annotation for '%s' is not followed by its definition", pending.name)
			pending = nil
		}
	}

	for !p.at(token.EOF) && !p.failed {
		switch p.tok.Kind {
		case token.KwType:
			flushDangling()
			if p.failed {
				return
			}
			d, ok := p.parseTypeDecl(m.Name)
			if !ok {
				return
			}
			m.Decls = append(m.Decls, d)

		case token.KwNative:
			flushDangling()
			if p.failed {
				return
			}
			d, ok := p.parseNativeDecl(m.Name)
			if !ok {
				return
			}
			m.Decls = append(m.Decls, d)

		case token.LowerIdent:
			nameTok := p.tok
			p.advance()
			if p.eat(token.Colon) {
				// Аннотация: name : type
				flushDangling()
				if p.failed {
					return
				}
				ty, ok := p.parseType()
				if !ok {
					return
				}
				pending = &pendingAnnotation{
					name:     names.VarName(nameTok.Text),
					nameSpan: nameTok.Span,
					sp:       nameTok.Span.Cover(ty.Span()),
					ty:       ty,
				}
				continue
			}

			d, ok := p.parseValueDecl(m.Name, nameTok)
			if !ok {
				return
			}
			if pending != nil {
				if pending.name == d.Name {
					d.Annotation = pending.ty
					d.Sp = pending.sp.Cover(d.Sp)
				} else {
					p.errorf(diag.SynDanglingAnnotation, pending.sp,
						"annotation for '%s' is not followed by its definition", pending.name)
					return
				}
				pending = nil
			}
			m.Decls = append(m.Decls, d)

		default:
			p.errorf(diag.SynExpectDeclaration, p.tok.Span,
				"expected a declaration, found %s", p.tok.Kind)
			return
		}
	}
	flushDangling()
}

// parseValueDecl: уже съеден nameTok; дальше pattern* "=" expr.
// Параметры сворачиваются в лямбду на месте.
func (p *Parser) parseValueDecl(mod names.ModuleName, nameTok token.Token) (*surface.ValueDecl, bool) {
	var params []surface.Pattern
	for !p.at(token.Equals) {
		pat, ok := p.parseAtomPattern()
		if !ok {
			return nil, false
		}
		params = append(params, pat)
	}
	p.advance() // '='

	body, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	if len(params) > 0 {
		body = &surface.Lambda{
			Sp:     nameTok.Span.Cover(body.Span()),
			Params: params,
			Body:   body,
		}
	}
	return &surface.ValueDecl{
		Sp:       nameTok.Span.Cover(body.Span()),
		Module:   mod,
		Name:     names.VarName(nameTok.Text),
		NameSpan: nameTok.Span,
		Body:     body,
	}, true
}

// parseTypeDecl: "type" UpperIdent typeVar* "=" ctor ("|" ctor)*
// либо "type" "alias" UpperIdent typeVar* "=" type
func (p *Parser) parseTypeDecl(mod names.ModuleName) (*surface.TypeDecl, bool) {
	start := p.tok.Span
	p.advance() // 'type'

	isAlias := p.eat(token.KwAlias)

	nameTok, ok := p.expect(token.UpperIdent, diag.SynExpectUpperIdent)
	if !ok {
		return nil, false
	}

	var params []names.TypeVarName
	for p.at(token.LowerIdent) {
		params = append(params, names.TypeVarName(p.tok.Text))
		p.advance()
	}

	if _, ok := p.expect(token.Equals, diag.SynUnexpectedToken); !ok {
		return nil, false
	}

	d := &surface.TypeDecl{
		Module:   mod,
		Name:     names.TypeName(nameTok.Text),
		NameSpan: nameTok.Span,
		Params:   params,
	}

	if isAlias {
		ty, ok := p.parseType()
		if !ok {
			return nil, false
		}
		d.Alias = ty
		d.Sp = start.Cover(ty.Span())
		return d, true
	}

	for {
		ctor, ok := p.parseCtorDef()
		if !ok {
			return nil, false
		}
		d.Ctors = append(d.Ctors, ctor)
		if !p.eat(token.Pipe) {
			break
		}
	}
	last := d.Ctors[len(d.Ctors)-1]
	end := last.NameSpan
	if len(last.Args) > 0 {
		end = last.Args[len(last.Args)-1].Span()
	}
	d.Sp = start.Cover(end)
	return d, true
}

// parseCtorDef: UpperIdent atomType*
func (p *Parser) parseCtorDef() (surface.CtorDef, bool) {
	nameTok, ok := p.expect(token.UpperIdent, diag.SynExpectUpperIdent)
	if !ok {
		return surface.CtorDef{}, false
	}
	ctor := surface.CtorDef{
		Name:     names.TypeName(nameTok.Text),
		NameSpan: nameTok.Span,
	}
	for p.atAtomTypeStart() {
		ty, ok := p.parseAtomType()
		if !ok {
			return surface.CtorDef{}, false
		}
		ctor.Args = append(ctor.Args, ty)
	}
	return ctor, true
}

// parseNativeDecl: "native" lowerIdent ":" type
func (p *Parser) parseNativeDecl(mod names.ModuleName) (*surface.NativeDecl, bool) {
	start := p.tok.Span
	p.advance() // 'native'

	nameTok, ok := p.expect(token.LowerIdent, diag.SynExpectIdentifier)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken); !ok {
		return nil, false
	}
	ty, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return &surface.NativeDecl{
		Sp:         start.Cover(ty.Span()),
		Module:     mod,
		Name:       names.VarName(nameTok.Text),
		NameSpan:   nameTok.Span,
		Annotation: ty,
	}, true
}
