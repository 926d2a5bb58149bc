package rename

import (
	"fen/internal/ast/renamed"
	"fen/internal/names"
)

// sortDeclarations переупорядочивает объявления модуля так, чтобы
// зависимости шли раньше зависимых. Взаимно рекурсивные объявления остаются
// в исходном относительном порядке.
func sortDeclarations(mod names.ModuleName, decls []renamed.Decl) {
	n := len(decls)
	if n < 2 {
		return
	}

	valueIdx := make(map[names.VarName]int)
	typeIdx := make(map[names.TypeName]int)
	ctorOwner := make(map[names.TypeName]int)
	for i, d := range decls {
		switch d := d.(type) {
		case *renamed.ValueDecl:
			valueIdx[d.Name] = i
		case *renamed.TypeDecl:
			typeIdx[d.Name] = i
			for _, ctor := range d.Ctors {
				ctorOwner[ctor.Name] = i
			}
		}
	}

	deps := make([]map[int]bool, n)
	for i, d := range decls {
		set := make(map[int]bool)
		onValue := func(ref names.VarRef) {
			if ref.Kind != names.RefGlobal || ref.Global.Module != mod {
				return
			}
			if j, ok := valueIdx[ref.Global.Name]; ok && j != i {
				set[j] = true
			} else if j, ok := ctorOwner[names.TypeName(ref.Global.Name)]; ok && j != i {
				set[j] = true
			}
		}
		onType := func(ref names.TypeRef) {
			if ref.Kind != names.RefGlobal || ref.Global.Module != mod {
				return
			}
			if j, ok := typeIdx[ref.Global.Name]; ok && j != i {
				set[j] = true
			} else if j, ok := ctorOwner[ref.Global.Name]; ok && j != i {
				set[j] = true
			}
		}
		switch d := d.(type) {
		case *renamed.ValueDecl:
			if d.Annotation != nil {
				walkType(d.Annotation, onType)
			}
			walkExpr(d.Body, onValue, onType)
		case *renamed.TypeDecl:
			if d.Alias != nil {
				walkType(d.Alias, onType)
			}
			for _, ctor := range d.Ctors {
				for _, arg := range ctor.Args {
					walkType(arg, onType)
				}
			}
		}
		deps[i] = set
	}

	// Кан: стабильный обход, циклы дописываются в исходном порядке.
	indeg := make([]int, n)
	dependents := make([][]int, n)
	for i, set := range deps {
		indeg[i] = len(set)
		for j := range set {
			dependents[j] = append(dependents[j], i)
		}
	}

	order := make([]int, 0, n)
	placed := make([]bool, n)
	frontier := make([]int, 0, n)
	for i := range n {
		if indeg[i] == 0 {
			frontier = append(frontier, i)
			placed[i] = true
		}
	}
	for len(frontier) > 0 {
		next := make([]int, 0)
		for _, i := range frontier {
			order = append(order, i)
			for _, dep := range dependents[i] {
				indeg[dep]--
				if indeg[dep] == 0 && !placed[dep] {
					next = append(next, dep)
					placed[dep] = true
				}
			}
		}
		frontier = next
	}
	for i := range n {
		if !placed[i] {
			order = append(order, i)
		}
	}

	sorted := make([]renamed.Decl, n)
	for pos, i := range order {
		sorted[pos] = decls[i]
	}
	copy(decls, sorted)
}

func walkExpr(e renamed.Expr, onValue func(names.VarRef), onType func(names.TypeRef)) {
	switch e := e.(type) {
	case *renamed.Lit:
	case *renamed.Var:
		onValue(e.Ref)
	case *renamed.CtorExpr:
		onType(e.Ref)
	case *renamed.Apply:
		walkExpr(e.Fn, onValue, onType)
		for _, arg := range e.Args {
			walkExpr(arg, onValue, onType)
		}
	case *renamed.BinOp:
		onValue(e.Op)
		walkExpr(e.Left, onValue, onType)
		walkExpr(e.Right, onValue, onType)
	case *renamed.Lambda:
		for _, p := range e.Params {
			walkPattern(p, onType)
		}
		walkExpr(e.Body, onValue, onType)
	case *renamed.LetIn:
		walkExpr(e.Value, onValue, onType)
		walkExpr(e.Body, onValue, onType)
	case *renamed.Block:
		for _, el := range e.Elems {
			walkExpr(el.Value, onValue, onType)
		}
	case *renamed.If:
		walkExpr(e.Cond, onValue, onType)
		walkExpr(e.Then, onValue, onType)
		walkExpr(e.Else, onValue, onType)
	case *renamed.Match:
		walkExpr(e.Scrutinee, onValue, onType)
		for _, arm := range e.Arms {
			walkPattern(arm.Pat, onType)
			walkExpr(arm.Body, onValue, onType)
		}
	case *renamed.ListLit:
		for _, el := range e.Elems {
			walkExpr(el, onValue, onType)
		}
	case *renamed.TupleLit:
		for _, el := range e.Elems {
			walkExpr(el, onValue, onType)
		}
	}
}

func walkPattern(p renamed.Pattern, onType func(names.TypeRef)) {
	switch p := p.(type) {
	case *renamed.PatCtor:
		onType(p.Ctor)
		for _, arg := range p.Args {
			walkPattern(arg, onType)
		}
	case *renamed.PatList:
		for _, el := range p.Elems {
			walkPattern(el, onType)
		}
	case *renamed.PatCons:
		walkPattern(p.Head, onType)
		walkPattern(p.Tail, onType)
	case *renamed.PatTuple:
		for _, el := range p.Elems {
			walkPattern(el, onType)
		}
	}
}

func walkType(t renamed.Type, onType func(names.TypeRef)) {
	switch t := t.(type) {
	case *renamed.TypeCtor:
		onType(t.Ctor)
		for _, arg := range t.Args {
			walkType(arg, onType)
		}
	case *renamed.TypeFunc:
		walkType(t.From, onType)
		walkType(t.To, onType)
	case *renamed.TypeTuple:
		for _, el := range t.Elems {
			walkType(el, onType)
		}
	}
}
