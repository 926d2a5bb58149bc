package rename

import (
	"maps"

	"fen/internal/ast"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
	"fen/internal/source"
)

// context — таблица областей видимости одного модуля: три пространства имён.
// Вложенные области работают через snapshot/restore: перед спуском в
// подобласть снимается срез всех трёх карт, после возврата (в том числе по
// ошибке) он восстанавливается через defer.
type context struct {
	r      *Renamer
	module *surface.Module

	vars     map[names.VarName]names.VarRef
	types    map[names.TypeName]names.TypeRef
	typeVars map[names.TypeVarName]names.Unique[names.TypeVarName]

	// currentDecl подписывает структурные ошибки вроде BlockEndsWithLet.
	currentDecl names.VarName
}

func newContext(r *Renamer, m *surface.Module) *context {
	return &context{
		r:        r,
		module:   m,
		vars:     make(map[names.VarName]names.VarRef),
		types:    make(map[names.TypeName]names.TypeRef),
		typeVars: make(map[names.TypeVarName]names.Unique[names.TypeVarName]),
	}
}

type snapshot struct {
	vars     map[names.VarName]names.VarRef
	types    map[names.TypeName]names.TypeRef
	typeVars map[names.TypeVarName]names.Unique[names.TypeVarName]
}

func (c *context) save() snapshot {
	return snapshot{
		vars:     maps.Clone(c.vars),
		types:    maps.Clone(c.types),
		typeVars: maps.Clone(c.typeVars),
	}
}

func (c *context) restore(s snapshot) {
	c.vars = s.vars
	c.types = s.types
	c.typeVars = s.typeVars
}

// addImports регистрирует видимые через импорты объявления как Global-ссылки.
// Имя попадает в контекст, только если целевой модуль его и объявляет, и
// экспонирует; импорт неэкспонированного имени молча не связывает его, и
// использование упадёт позже с RenameUnknownName. Импорт модуля, которого
// нет в графе, уже отрепорчен при построении графа (GraphMissingModule) и
// здесь молча пропускается.
func (c *context) addImports(imports []surface.Import) *Error {
	for i := range imports {
		imp := &imports[i]
		target, ok := c.r.graph.Module(imp.Module)
		if !ok {
			continue
		}
		if imp.Exposing == nil {
			// только квалифицированный доступ
			continue
		}
		if imp.Exposing.All {
			c.addAllExposed(target)
			continue
		}
		for _, item := range imp.Exposing.Items {
			c.addExposedItem(target, item)
		}
	}
	return nil
}

func (c *context) addAllExposed(target *surface.Module) {
	for _, d := range target.Decls {
		switch d := d.(type) {
		case *surface.ValueDecl:
			if exposesValue(target, d.Name) {
				c.vars[d.Name] = names.GlobalRef(target.Name, d.Name)
			}
		case *surface.NativeDecl:
			if exposesValue(target, d.Name) {
				c.vars[d.Name] = names.GlobalRef(target.Name, d.Name)
			}
		case *surface.TypeDecl:
			if exposesType(target, d.Name) {
				c.types[d.Name] = names.GlobalRef(target.Name, d.Name)
			}
			if exposesCtors(target, d.Name) {
				for _, ctor := range d.Ctors {
					c.types[ctor.Name] = names.GlobalRef(target.Name, ctor.Name)
					c.vars[names.VarName(ctor.Name)] = names.GlobalRef(target.Name, names.VarName(ctor.Name))
				}
			}
		}
	}
}

func (c *context) addExposedItem(target *surface.Module, item surface.ExposedItem) {
	switch item.Kind {
	case ast.ExposeValue, ast.ExposeOp:
		name := names.VarName(item.Name.Text)
		if declaresValue(target, name) && exposesValue(target, name) {
			c.vars[name] = names.GlobalRef(target.Name, name)
		}
	case ast.ExposeType, ast.ExposeTypeWithCtors:
		name := names.TypeName(item.Name.Text)
		if declaresType(target, name) && exposesType(target, name) {
			c.types[name] = names.GlobalRef(target.Name, name)
		}
		if item.Kind == ast.ExposeTypeWithCtors && exposesCtors(target, name) {
			for _, ctor := range ctorsOf(target, name) {
				c.types[ctor] = names.GlobalRef(target.Name, ctor)
				c.vars[names.VarName(ctor)] = names.GlobalRef(target.Name, names.VarName(ctor))
			}
		}
	}
}

// addDeclaration вносит собственное объявление модуля: прямые и взаимные
// ссылки внутри модуля резолвятся без предварительного порядка.
// Конструкторы ADT регистрируются в обоих пространствах: в типовом — для
// паттернов и конструкторных выражений, в значенческом — как каррированные
// функции-конструкторы.
func (c *context) addDeclaration(d surface.Decl) {
	switch d := d.(type) {
	case *surface.ValueDecl:
		c.vars[d.Name] = names.GlobalRef(c.module.Name, d.Name)
	case *surface.NativeDecl:
		c.vars[d.Name] = names.GlobalRef(c.module.Name, d.Name)
	case *surface.TypeDecl:
		c.types[d.Name] = names.GlobalRef(c.module.Name, d.Name)
		for _, ctor := range d.Ctors {
			c.types[ctor.Name] = names.GlobalRef(c.module.Name, ctor.Name)
			c.vars[names.VarName(ctor.Name)] = names.GlobalRef(c.module.Name, names.VarName(ctor.Name))
		}
	}
}

// qualifyIn проверяет и нормализует имя из exposing-списка: явный
// квалификатор обязан совпадать с владельцем списка.
func qualifyIn(owner names.ModuleName, n names.Name) (names.Qualified[string], *Error) {
	if n.Module != "" && n.Module != owner {
		return names.Qualified[string]{}, errorf(diag.RenameQualifiedInWrongModule, n.Span,
			"name is qualified with %q but belongs to module %q", n.Module, owner)
	}
	return names.Qualified[string]{Module: owner, Name: n.Text}, nil
}

// lookupVar резолвит значенческое имя. Квалифицированное имя проверяется
// против графа модулей; неквалифицированное — против контекста.
func (c *context) lookupVar(n names.Name) (names.VarRef, *Error) {
	if n.Module != "" {
		if err := c.checkQualified(n, false); err != nil {
			return names.VarRef{}, err
		}
		return names.GlobalRef(n.Module, names.VarName(n.Text)), nil
	}
	if ref, ok := c.vars[names.VarName(n.Text)]; ok {
		return ref, nil
	}
	return names.VarRef{}, errorf(diag.RenameUnknownName, n.Span, "unknown name %q", n.Text)
}

// lookupType резолвит имя типа или конструктора.
func (c *context) lookupType(n names.Name) (names.TypeRef, *Error) {
	if n.Module != "" {
		if err := c.checkQualified(n, true); err != nil {
			return names.TypeRef{}, err
		}
		return names.GlobalRef(n.Module, names.TypeName(n.Text)), nil
	}
	if ref, ok := c.types[names.TypeName(n.Text)]; ok {
		return ref, nil
	}
	return names.TypeRef{}, errorf(diag.RenameUnknownName, n.Span, "unknown name %q", n.Text)
}

// checkQualified: модуль существует, объявляет имя и экспонирует его.
func (c *context) checkQualified(n names.Name, typeNS bool) *Error {
	target, ok := c.r.graph.Module(n.Module)
	if !ok {
		return errorf(diag.RenameUnknownModule, n.Span, "unknown module %q", n.Module)
	}
	var declared, exposed bool
	if typeNS {
		declared = declaresType(target, names.TypeName(n.Text))
		exposed = exposesType(target, names.TypeName(n.Text))
	} else {
		declared = declaresValue(target, names.VarName(n.Text))
		exposed = exposesValue(target, names.VarName(n.Text))
	}
	if !declared {
		return errorf(diag.RenameNonExistentModuleDecl, n.Span,
			"module %q has no declaration named %q", n.Module, n.Text)
	}
	if !exposed {
		return errorf(diag.RenameUnknownName, n.Span,
			"module %q does not expose %q", n.Module, n.Text)
	}
	return nil
}

// lookupTypeVar резолвит переменную типа; allowNew разрешает завести новую
// (свободные аннотации), иначе неизвестная переменная — ошибка.
func (c *context) lookupTypeVar(v names.TypeVarName, sp source.Span, allowNew bool) (names.Unique[names.TypeVarName], *Error) {
	if u, ok := c.typeVars[v]; ok {
		return u, nil
	}
	if allowNew {
		u := names.Fresh(c.r.supply, v)
		c.typeVars[v] = u
		return u, nil
	}
	return names.Unique[names.TypeVarName]{}, errorf(diag.RenameUnknownTypeVariable, sp,
		"unknown type variable %q", v)
}
