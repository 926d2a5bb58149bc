// Package rename resolves every identifier of a module to a globally unique,
// qualified reference and desugars the surface sugar (multi-parameter and
// pattern lambdas, let-blocks) into the minimal core the later stages expect.
// The first error aborts the enclosing module, never its siblings.
package rename

import (
	"fen/internal/ast/renamed"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/modgraph"
	"fen/internal/names"
)

type Renamer struct {
	graph  *modgraph.Graph
	supply *names.Supply
}

// New создаёт Renamer поверх готового графа модулей. Supply общий на всю
// компиляцию: параллельное переименование модулей делит один атомарный
// счётчик и никогда не выдаёт один ID дважды.
func New(graph *modgraph.Graph, supply *names.Supply) *Renamer {
	return &Renamer{graph: graph, supply: supply}
}

// Module переименовывает один модуль. Порядок фиксирован: импорты →
// собственные объявления → exposing-список модуля → exposing-списки
// импортов → тела объявлений → топологическая сортировка объявлений.
func (r *Renamer) Module(m *surface.Module) (*renamed.Module, *Error) {
	c := newContext(r, m)

	if err := c.addImports(m.Imports); err != nil {
		return nil, err
	}
	for _, d := range m.Decls {
		c.addDeclaration(d)
	}

	exposing, err := renameExposing(m.Name, &m.Exposing)
	if err != nil {
		return nil, err
	}

	imports := make([]renamed.Import, 0, len(m.Imports))
	for i := range m.Imports {
		imp := &m.Imports[i]
		out := renamed.Import{
			Sp:         imp.Sp,
			Module:     imp.Module,
			ModuleSpan: imp.ModuleSpan,
		}
		if imp.Exposing != nil {
			exp, err := renameExposing(imp.Module, imp.Exposing)
			if err != nil {
				return nil, err
			}
			out.Exposing = &exp
		}
		imports = append(imports, out)
	}

	decls := make([]renamed.Decl, 0, len(m.Decls))
	for _, d := range m.Decls {
		out, err := c.renameDecl(d)
		if err != nil {
			return nil, err
		}
		decls = append(decls, out)
	}
	sortDeclarations(m.Name, decls)

	return &renamed.Module{
		File:     m.File,
		Name:     m.Name,
		NameSpan: m.NameSpan,
		Exposing: exposing,
		Imports:  imports,
		Decls:    decls,
	}, nil
}

func renameExposing(owner names.ModuleName, e *surface.Exposing) (renamed.Exposing, *Error) {
	out := renamed.Exposing{Sp: e.Sp, All: e.All}
	for _, item := range e.Items {
		q, err := qualifyIn(owner, item.Name)
		if err != nil {
			return renamed.Exposing{}, err
		}
		out.Items = append(out.Items, renamed.ExposedItem{
			Sp:   item.Sp,
			Kind: item.Kind,
			Name: q,
		})
	}
	return out, nil
}

func (c *context) renameDecl(d surface.Decl) (renamed.Decl, *Error) {
	switch d := d.(type) {
	case *surface.ValueDecl:
		c.currentDecl = d.Name
		out := &renamed.ValueDecl{
			Sp:       d.Sp,
			Module:   d.Module,
			Name:     d.Name,
			NameSpan: d.NameSpan,
		}
		if d.Annotation != nil {
			// Аннотации позволено заводить свежие переменные типа; их
			// область — одна аннотация.
			defer c.restore(c.save())
			ann, err := c.renameType(d.Annotation, true)
			if err != nil {
				return nil, err
			}
			out.Annotation = ann
		}
		body, err := c.renameExpr(d.Body)
		if err != nil {
			return nil, err
		}
		out.Body = body
		return out, nil

	case *surface.TypeDecl:
		defer c.restore(c.save())
		out := &renamed.TypeDecl{
			Sp:       d.Sp,
			Module:   d.Module,
			Name:     d.Name,
			NameSpan: d.NameSpan,
		}
		for _, p := range d.Params {
			u := names.Fresh(c.r.supply, p)
			c.typeVars[p] = u
			out.Params = append(out.Params, u)
		}
		if d.IsAlias() {
			body, err := c.renameType(d.Alias, false)
			if err != nil {
				return nil, err
			}
			out.Alias = body
			return out, nil
		}
		for _, ctor := range d.Ctors {
			rc := renamed.CtorDef{Name: ctor.Name, NameSpan: ctor.NameSpan}
			for _, arg := range ctor.Args {
				ra, err := c.renameType(arg, false)
				if err != nil {
					return nil, err
				}
				rc.Args = append(rc.Args, ra)
			}
			out.Ctors = append(out.Ctors, rc)
		}
		return out, nil

	case *surface.NativeDecl:
		return nil, errorf(diag.RenameNativeDefUnsupported, d.Sp,
			"native definition %q is not supported", d.Name)

	default:
		panic("unreachable declaration kind")
	}
}

// renameType резолвит переменные и конструкторы типов. allowNew управляет
// правом заводить новые переменные типа.
func (c *context) renameType(t surface.Type, allowNew bool) (renamed.Type, *Error) {
	switch t := t.(type) {
	case *surface.TypeVar:
		u, err := c.lookupTypeVar(t.Var, t.Sp, allowNew)
		if err != nil {
			return nil, err
		}
		return &renamed.TypeVar{Sp: t.Sp, Var: u}, nil

	case *surface.TypeCtor:
		ref, err := c.lookupType(t.Ctor)
		if err != nil {
			return nil, err
		}
		out := &renamed.TypeCtor{Sp: t.Sp, Ctor: ref}
		for _, arg := range t.Args {
			ra, err := c.renameType(arg, allowNew)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, ra)
		}
		return out, nil

	case *surface.TypeFunc:
		from, err := c.renameType(t.From, allowNew)
		if err != nil {
			return nil, err
		}
		to, err := c.renameType(t.To, allowNew)
		if err != nil {
			return nil, err
		}
		return &renamed.TypeFunc{Sp: t.Sp, From: from, To: to}, nil

	case *surface.TypeTuple:
		out := &renamed.TypeTuple{Sp: t.Sp}
		for _, el := range t.Elems {
			re, err := c.renameType(el, allowNew)
			if err != nil {
				return nil, err
			}
			out.Elems = append(out.Elems, re)
		}
		return out, nil

	case *surface.TypeUnit:
		return &renamed.TypeUnit{Sp: t.Sp}, nil

	default:
		panic("unreachable type kind")
	}
}
