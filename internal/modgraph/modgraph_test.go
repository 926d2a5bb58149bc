package modgraph

import (
	"strings"
	"testing"

	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
)

func mod(name names.ModuleName, imports ...names.ModuleName) *surface.Module {
	m := &surface.Module{Name: name}
	for _, imp := range imports {
		m.Imports = append(m.Imports, surface.Import{Module: imp})
	}
	return m
}

func build(mods ...*surface.Module) (*Graph, *diag.Bag) {
	bag := diag.NewBag(32)
	nodes := make([]Node, 0, len(mods))
	surfaceMods := make([]*surface.Module, 0, len(mods))
	for _, m := range mods {
		nodes = append(nodes, Node{Mod: m, Reporter: diag.BagReporter{Bag: bag}})
		surfaceMods = append(surfaceMods, m)
	}
	return Build(BuildIndex(surfaceMods), nodes), bag
}

func TestToposortDepsFirst(t *testing.T) {
	g, bag := build(
		mod("App", "Core", "Data.List"),
		mod("Data.List", "Core"),
		mod("Core"),
	)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	topo := Toposort(g)
	if topo.Cyclic {
		t.Fatal("acyclic graph reported cyclic")
	}

	pos := make(map[names.ModuleName]int)
	for i, id := range topo.Order {
		pos[g.Index.IDToName[id]] = i
	}
	if pos["Core"] > pos["Data.List"] || pos["Data.List"] > pos["App"] {
		t.Errorf("dependencies must come first, got order %v", topo.Order)
	}

	// Волны: Core одна, затем Data.List, затем App
	if len(topo.Batches) != 3 {
		t.Fatalf("batches = %d", len(topo.Batches))
	}
	if g.Index.IDToName[topo.Batches[0][0]] != "Core" {
		t.Errorf("first batch %v", topo.Batches[0])
	}
}

func TestBatchesRespectEdges(t *testing.T) {
	g, _ := build(
		mod("A"),
		mod("B"),
		mod("C", "A", "B"),
	)
	topo := Toposort(g)
	if len(topo.Batches) != 2 {
		t.Fatalf("batches = %v", topo.Batches)
	}
	if len(topo.Batches[0]) != 2 {
		t.Errorf("independent modules must share a batch: %v", topo.Batches[0])
	}
}

func TestImportCycle(t *testing.T) {
	g, _ := build(
		mod("A", "B"),
		mod("B", "A"),
		mod("C"),
	)
	topo := Toposort(g)
	if !topo.Cyclic || len(topo.Cycles) != 2 {
		t.Fatalf("cycle not detected: %+v", topo)
	}
	// C вне цикла и должен быть обработан
	if len(topo.Order) != 1 || g.Index.IDToName[topo.Order[0]] != "C" {
		t.Errorf("order %v", topo.Order)
	}

	bag := diag.NewBag(8)
	for i := range g.Slots {
		g.Slots[i].Reporter = diag.BagReporter{Bag: bag}
	}
	ReportCycles(g, topo)
	if bag.Len() != 2 {
		t.Errorf("cycle diagnostics = %d", bag.Len())
	}
	if d, ok := bag.FirstError(); !ok || d.Code != diag.GraphImportCycle {
		t.Errorf("first error %+v", d)
	}
}

func TestCycleDependentIsNotACycleMember(t *testing.T) {
	g, _ := build(
		mod("A", "B"),
		mod("B", "A"),
		mod("App", "A"),
		mod("Far", "App"),
	)
	topo := Toposort(g)
	if !topo.Cyclic {
		t.Fatal("cycle not detected")
	}
	byName := func(ids []ModuleID) map[names.ModuleName]bool {
		out := make(map[names.ModuleName]bool, len(ids))
		for _, id := range ids {
			out[g.Index.IDToName[id]] = true
		}
		return out
	}
	cycles := byName(topo.Cycles)
	if len(cycles) != 2 || !cycles["A"] || !cycles["B"] {
		t.Errorf("cycle members = %v, want exactly A and B", cycles)
	}
	stuck := byName(topo.Stuck)
	if len(stuck) != 2 || !stuck["App"] || !stuck["Far"] {
		t.Errorf("stuck modules = %v, want App and Far", stuck)
	}

	bag := diag.NewBag(16)
	for i := range g.Slots {
		g.Slots[i].Reporter = diag.BagReporter{Bag: bag}
	}
	ReportCycles(g, topo)

	perCode := map[diag.Code]int{}
	for _, d := range bag.Items() {
		perCode[d.Code]++
		if d.Code == diag.GraphImportCycle &&
			(strings.Contains(d.Message, `"App"`) || strings.Contains(d.Message, `"Far"`)) {
			t.Errorf("dependent named in a cycle diagnostic: %s", d.Message)
		}
	}
	if perCode[diag.GraphImportCycle] != 2 {
		t.Errorf("cycle diagnostics = %d, want 2", perCode[diag.GraphImportCycle])
	}
	// App заблокирован циклом, Far — заблокированным App
	if perCode[diag.GraphDependencyBroken] != 2 {
		t.Errorf("blocked diagnostics = %d, want 2", perCode[diag.GraphDependencyBroken])
	}
	for _, name := range []names.ModuleName{"App", "Far"} {
		id := g.Index.NameToID[name]
		if !g.Slots[id].Broken {
			t.Errorf("%s must be marked broken", name)
		}
	}
}

func TestMissingAndSelfImport(t *testing.T) {
	_, bag := build(
		mod("A", "Nowhere"),
		mod("B", "B"),
	)
	codes := map[diag.Code]bool{}
	for _, d := range bag.Items() {
		codes[d.Code] = true
	}
	if !codes[diag.GraphMissingModule] {
		t.Error("missing import not reported")
	}
	if !codes[diag.GraphSelfImport] {
		t.Error("self import not reported")
	}
}

func TestDuplicateModule(t *testing.T) {
	_, bag := build(mod("A"), mod("A"))
	if d, ok := bag.FirstError(); !ok || d.Code != diag.GraphDuplicateModule {
		t.Fatalf("first error %+v", d)
	}
}

func TestBrokenDeps(t *testing.T) {
	g, bag := build(
		mod("App", "Core"),
		mod("Core"),
	)
	coreID := g.Index.NameToID["Core"]
	first := diag.Diagnostic{Severity: diag.SevError, Message: "boom"}
	g.MarkBroken(coreID, &first)
	ReportBrokenDeps(g)

	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.GraphDependencyBroken {
			found = true
			if len(d.Notes) != 1 {
				t.Errorf("expected a note pointing at the dependency error")
			}
		}
	}
	if !found {
		t.Error("broken dependency not reported")
	}
}
