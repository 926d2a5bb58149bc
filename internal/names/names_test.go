package names

import (
	"sync"
	"testing"
)

func TestUniqueIdentityNotText(t *testing.T) {
	s := NewSupply()
	a := Fresh(s, VarName("x"))
	b := Fresh(s, VarName("x"))

	if a.Same(b) {
		t.Error("two freshly minted binders with the same base must differ")
	}
	if !a.Same(a) {
		t.Error("a Unique must equal itself")
	}

	// Identity, not textual equality: equal IDs are the same binder even if
	// the bases were rewritten along the way.
	renamed := Unique[VarName]{ID: a.ID, Base: "y"}
	if !a.Same(renamed) {
		t.Error("equal IDs must compare as the same binder")
	}
}

func TestSupplyConcurrentFresh(t *testing.T) {
	s := NewSupply()
	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	ids := make([][]uint64, workers)
	for w := range workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out := make([]uint64, 0, perWorker)
			for range perWorker {
				out = append(out, Fresh(s, VarName("v")).ID)
			}
			ids[w] = out
		}(w)
	}
	wg.Wait()

	seen := make(map[uint64]bool, workers*perWorker)
	for _, chunk := range ids {
		for _, id := range chunk {
			if id == 0 {
				t.Fatal("IDs must start at 1")
			}
			if seen[id] {
				t.Fatalf("duplicate ID %d handed out", id)
			}
			seen[id] = true
		}
	}
}

func TestNameString(t *testing.T) {
	plain := Name{Text: "map"}
	if plain.String() != "map" || plain.IsQualified() {
		t.Errorf("unexpected plain name %q", plain.String())
	}

	qual := Name{Module: "Data.Maybe", Text: "map"}
	if qual.String() != "Data.Maybe.map" || !qual.IsQualified() {
		t.Errorf("unexpected qualified name %q", qual.String())
	}
}

func TestRefConstructors(t *testing.T) {
	s := NewSupply()
	u := Fresh(s, VarName("acc"))

	local := LocalRef(u)
	if local.Kind != RefLocal || !local.Local.Same(u) {
		t.Errorf("unexpected local ref %+v", local)
	}

	global := GlobalRef("Core", VarName("foldr"))
	if global.Kind != RefGlobal || global.Global.Module != "Core" || global.Global.Name != "foldr" {
		t.Errorf("unexpected global ref %+v", global)
	}
	if global.String() != "Core.foldr" {
		t.Errorf("global ref String = %q", global.String())
	}
}
