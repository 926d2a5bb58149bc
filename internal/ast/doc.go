// Package ast defines one parameterized syntax tree shared by every compilation
// stage. Node shapes never change between stages; only the identifier field
// types do, selected through type parameters:
//
//	V — value occurrence (surface: names.Name, renamed: names.VarRef)
//	T — type-constructor occurrence (surface: names.Name, renamed: names.TypeRef)
//	B — value binder (surface: names.VarName, renamed: names.Unique[VarName])
//	W — type-variable occurrence (surface: names.TypeVarName, renamed: Unique)
//	E — exposing-list entry (surface: names.Name, renamed: names.Qualified)
//
// The subpackages surface and renamed alias the two instantiations actually
// used by the pipeline. Some nodes are stage-restricted by invariant rather
// than by type: Block with let elements and multi-pattern Lambda exist only
// before renaming, and the renamer guarantees every Lambda it emits binds
// exactly one PatVar.
package ast
