package rename

import (
	"fen/internal/ast"
	"fen/internal/ast/surface"
	"fen/internal/names"
)

// declaresValue: значение, native-объявление или конструктор ADT
// (конструкторы живут и в значенческом пространстве как функции).
func declaresValue(m *surface.Module, name names.VarName) bool {
	for _, d := range m.Decls {
		switch d := d.(type) {
		case *surface.ValueDecl:
			if d.Name == name {
				return true
			}
		case *surface.NativeDecl:
			if d.Name == name {
				return true
			}
		case *surface.TypeDecl:
			for _, ctor := range d.Ctors {
				if names.VarName(ctor.Name) == name {
					return true
				}
			}
		}
	}
	return false
}

// declaresType: имя типа или конструктора ADT.
func declaresType(m *surface.Module, name names.TypeName) bool {
	for _, d := range m.Decls {
		td, ok := d.(*surface.TypeDecl)
		if !ok {
			continue
		}
		if td.Name == name {
			return true
		}
		for _, ctor := range td.Ctors {
			if ctor.Name == name {
				return true
			}
		}
	}
	return false
}

// exposesValue: экспонируется ли значенческое имя. Конструктор экспонируется
// только через "T(..)" своего типа.
func exposesValue(m *surface.Module, name names.VarName) bool {
	if m.Exposing.All {
		return true
	}
	for _, item := range m.Exposing.Items {
		switch item.Kind {
		case ast.ExposeValue, ast.ExposeOp:
			if names.VarName(item.Name.Text) == name {
				return true
			}
		case ast.ExposeTypeWithCtors:
			for _, ctor := range ctorsOf(m, names.TypeName(item.Name.Text)) {
				if names.VarName(ctor) == name {
					return true
				}
			}
		}
	}
	return false
}

// exposesType: экспонируется ли имя в типовом пространстве.
// "T" экспонирует только тип; "T(..)" — тип и конструкторы.
func exposesType(m *surface.Module, name names.TypeName) bool {
	if m.Exposing.All {
		return true
	}
	for _, item := range m.Exposing.Items {
		switch item.Kind {
		case ast.ExposeType, ast.ExposeTypeWithCtors:
			if names.TypeName(item.Name.Text) == name {
				return true
			}
			if item.Kind == ast.ExposeTypeWithCtors {
				for _, ctor := range ctorsOf(m, names.TypeName(item.Name.Text)) {
					if ctor == name {
						return true
					}
				}
			}
		}
	}
	return false
}

// exposesCtors: выдаёт ли exposing-список конструкторы данного типа.
func exposesCtors(m *surface.Module, name names.TypeName) bool {
	if m.Exposing.All {
		return true
	}
	for _, item := range m.Exposing.Items {
		if item.Kind == ast.ExposeTypeWithCtors && names.TypeName(item.Name.Text) == name {
			return true
		}
	}
	return false
}

func ctorsOf(m *surface.Module, name names.TypeName) []names.TypeName {
	for _, d := range m.Decls {
		td, ok := d.(*surface.TypeDecl)
		if !ok || td.Name != name {
			continue
		}
		out := make([]names.TypeName, 0, len(td.Ctors))
		for _, ctor := range td.Ctors {
			out = append(out, ctor.Name)
		}
		return out
	}
	return nil
}
