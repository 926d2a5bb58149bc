package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fen/internal/ast"
	"fen/internal/ast/renamed"
	"fen/internal/names"
)

// RenamedModule печатает модуль после переименования. Локальные связыватели
// выводятся как base#id, глобальные ссылки — полностью квалифицированными:
// так в дампе видно и разрешение, и уникальность.
func RenamedModule(w io.Writer, m *renamed.Module) {
	fmt.Fprintf(w, "module %s exposing %s\n", m.Name, exposingString(&m.Exposing))
	for i := range m.Imports {
		imp := &m.Imports[i]
		if imp.Exposing == nil {
			fmt.Fprintf(w, "import %s\n", imp.Module)
			continue
		}
		fmt.Fprintf(w, "import %s exposing %s\n", imp.Module, exposingString(imp.Exposing))
	}
	for _, d := range m.Decls {
		fmt.Fprintln(w)
		printDecl(w, d)
	}
}

func exposingString(e *renamed.Exposing) string {
	if e.All {
		return "(..)"
	}
	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		s := item.Name.String()
		switch item.Kind {
		case ast.ExposeOp:
			s = "(" + string(item.Name.Name) + ")"
		case ast.ExposeTypeWithCtors:
			s += "(..)"
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func printDecl(w io.Writer, d renamed.Decl) {
	switch d := d.(type) {
	case *renamed.ValueDecl:
		if d.Annotation != nil {
			fmt.Fprintf(w, "%s : %s\n", d.Name, typeString(d.Annotation))
		}
		fmt.Fprintf(w, "%s = %s\n", d.Name, exprString(d.Body))
	case *renamed.TypeDecl:
		head := string(d.Name)
		for _, p := range d.Params {
			head += " " + uniqueString(p)
		}
		if d.IsAlias() {
			fmt.Fprintf(w, "type alias %s = %s\n", head, typeString(d.Alias))
			return
		}
		ctors := make([]string, 0, len(d.Ctors))
		for _, ctor := range d.Ctors {
			s := string(ctor.Name)
			for _, arg := range ctor.Args {
				s += " " + typeAtomString(arg)
			}
			ctors = append(ctors, s)
		}
		fmt.Fprintf(w, "type %s = %s\n", head, strings.Join(ctors, " | "))
	}
}

func uniqueString[N ~string](u names.Unique[N]) string {
	return fmt.Sprintf("%s#%d", string(u.Base), u.ID)
}

func varRefString(r names.VarRef) string {
	if r.Kind == names.RefLocal {
		return uniqueString(r.Local)
	}
	return r.Global.String()
}

func typeRefString(r names.TypeRef) string {
	if r.Kind == names.RefLocal {
		return uniqueString(r.Local)
	}
	return r.Global.String()
}

func exprString(e renamed.Expr) string {
	switch e := e.(type) {
	case *renamed.Lit:
		return litString(e.Value)
	case *renamed.Var:
		return varRefString(e.Ref)
	case *renamed.CtorExpr:
		return typeRefString(e.Ref)
	case *renamed.Apply:
		parts := []string{exprAtomString(e.Fn)}
		for _, arg := range e.Args {
			parts = append(parts, exprAtomString(arg))
		}
		return strings.Join(parts, " ")
	case *renamed.BinOp:
		op := varRefString(e.Op)
		if e.Infixed {
			op = "`" + op + "`"
		}
		return fmt.Sprintf("%s %s %s", exprAtomString(e.Left), op, exprAtomString(e.Right))
	case *renamed.Lambda:
		return fmt.Sprintf("\\%s -> %s", patternString(e.Params[0]), exprString(e.Body))
	case *renamed.LetIn:
		return fmt.Sprintf("let %s = %s in %s",
			uniqueString(e.Binder), exprString(e.Value), exprString(e.Body))
	case *renamed.Block:
		parts := make([]string, 0, len(e.Elems))
		for _, el := range e.Elems {
			parts = append(parts, exprString(el.Value))
		}
		return "{ " + strings.Join(parts, "; ") + " }"
	case *renamed.If:
		return fmt.Sprintf("if %s then %s else %s",
			exprString(e.Cond), exprString(e.Then), exprString(e.Else))
	case *renamed.Match:
		var b strings.Builder
		fmt.Fprintf(&b, "match %s with", exprString(e.Scrutinee))
		for _, arm := range e.Arms {
			fmt.Fprintf(&b, " | %s -> %s", patternString(arm.Pat), exprString(arm.Body))
		}
		return b.String()
	case *renamed.ListLit:
		parts := make([]string, 0, len(e.Elems))
		for _, el := range e.Elems {
			parts = append(parts, exprString(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *renamed.TupleLit:
		parts := make([]string, 0, len(e.Elems))
		for _, el := range e.Elems {
			parts = append(parts, exprString(el))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}

// exprAtomString заключает составные выражения в скобки.
func exprAtomString(e renamed.Expr) string {
	switch e.(type) {
	case *renamed.Lit, *renamed.Var, *renamed.CtorExpr,
		*renamed.ListLit, *renamed.TupleLit, *renamed.Block:
		return exprString(e)
	default:
		return "(" + exprString(e) + ")"
	}
}

func patternString(p renamed.Pattern) string {
	switch p := p.(type) {
	case *renamed.PatVar:
		return uniqueString(p.Binder)
	case *renamed.PatWildcard:
		return "_"
	case *renamed.PatLit:
		return litString(p.Value)
	case *renamed.PatCtor:
		s := typeRefString(p.Ctor)
		for _, arg := range p.Args {
			s += " " + patternAtomString(arg)
		}
		return s
	case *renamed.PatList:
		parts := make([]string, 0, len(p.Elems))
		for _, el := range p.Elems {
			parts = append(parts, patternString(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *renamed.PatCons:
		return patternAtomString(p.Head) + " :: " + patternAtomString(p.Tail)
	case *renamed.PatTuple:
		parts := make([]string, 0, len(p.Elems))
		for _, el := range p.Elems {
			parts = append(parts, patternString(el))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}

func patternAtomString(p renamed.Pattern) string {
	switch p := p.(type) {
	case *renamed.PatCtor:
		if len(p.Args) > 0 {
			return "(" + patternString(p) + ")"
		}
		return patternString(p)
	case *renamed.PatCons:
		return "(" + patternString(p) + ")"
	default:
		return patternString(p)
	}
}

func typeString(t renamed.Type) string {
	switch t := t.(type) {
	case *renamed.TypeVar:
		return uniqueString(t.Var)
	case *renamed.TypeCtor:
		s := typeRefString(t.Ctor)
		for _, arg := range t.Args {
			s += " " + typeAtomString(arg)
		}
		return s
	case *renamed.TypeFunc:
		return typeAtomString(t.From) + " -> " + typeString(t.To)
	case *renamed.TypeTuple:
		parts := make([]string, 0, len(t.Elems))
		for _, el := range t.Elems {
			parts = append(parts, typeString(el))
		}
		return "(" + strings.Join(parts, ", ") + ")"
	case *renamed.TypeUnit:
		return "()"
	default:
		return "?"
	}
}

func typeAtomString(t renamed.Type) string {
	switch t := t.(type) {
	case *renamed.TypeFunc:
		return "(" + typeString(t) + ")"
	case *renamed.TypeCtor:
		if len(t.Args) > 0 {
			return "(" + typeString(t) + ")"
		}
		return typeString(t)
	default:
		return typeString(t)
	}
}

func litString(l ast.Literal) string {
	switch l.Kind {
	case ast.LitInt:
		return fmt.Sprintf("%d", l.Int)
	case ast.LitFloat:
		return fmt.Sprintf("%g", l.Float)
	case ast.LitChar:
		return fmt.Sprintf("%q", l.Char)
	case ast.LitString:
		return fmt.Sprintf("%q", l.Str)
	default:
		return "()"
	}
}
