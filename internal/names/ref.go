package names

// RefKind discriminates the two resolved reference forms.
type RefKind uint8

const (
	// RefLocal points at a binder introduced in the current lexical scope.
	RefLocal RefKind = iota
	// RefGlobal points at a module-level declaration.
	RefGlobal
)

// Ref is a resolved reference: Local carries the binder's Unique identity,
// Global carries the owning module and declaration name. Produced exclusively
// by the renamer.
type Ref[N ~string] struct {
	Kind   RefKind
	Local  Unique[N]    // valid when Kind == RefLocal
	Global Qualified[N] // valid when Kind == RefGlobal
}

type (
	// VarRef resolves a value-level occurrence.
	VarRef = Ref[VarName]
	// TypeRef resolves a type-level occurrence.
	TypeRef = Ref[TypeName]
)

func LocalRef[N ~string](u Unique[N]) Ref[N] {
	return Ref[N]{Kind: RefLocal, Local: u}
}

func GlobalRef[N ~string](module ModuleName, name N) Ref[N] {
	return Ref[N]{Kind: RefGlobal, Global: Qualified[N]{Module: module, Name: name}}
}

func (r Ref[N]) String() string {
	if r.Kind == RefLocal {
		return r.Local.String()
	}
	return r.Global.String()
}
