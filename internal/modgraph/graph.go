package modgraph

import (
	"fmt"
	"slices"
	"strings"

	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/names"
)

// Node — входной модуль с его репортёром диагностик.
type Node struct {
	Mod      *surface.Module
	Reporter diag.Reporter
}

// Slot — позиция модуля в графе. Present=false для имён, которые только
// импортируются, но нигде не объявлены.
type Slot struct {
	Mod      *surface.Module
	Reporter diag.Reporter
	Present  bool
	Broken   bool
	FirstErr *diag.Diagnostic
}

type Graph struct {
	Index      Index
	Slots      []Slot
	Deps       [][]ModuleID // Deps[m] = модули, которые m импортирует
	Dependents [][]ModuleID // обратные рёбра
	Indeg      []int        // число присутствующих зависимостей
}

// Module возвращает модуль по имени, если он объявлен.
func (g *Graph) Module(name names.ModuleName) (*surface.Module, bool) {
	id, ok := g.Index.NameToID[name]
	if !ok || !g.Slots[id].Present {
		return nil, false
	}
	return g.Slots[id].Mod, true
}

// Build строит граф и репортит дубликаты, самоимпорты и импорты
// несуществующих модулей.
func Build(idx Index, nodes []Node) *Graph {
	n := len(idx.IDToName)
	g := &Graph{
		Index:      idx,
		Slots:      make([]Slot, n),
		Deps:       make([][]ModuleID, n),
		Dependents: make([][]ModuleID, n),
		Indeg:      make([]int, n),
	}

	for _, node := range nodes {
		if node.Mod == nil || node.Mod.Name == "" {
			continue
		}
		id, ok := idx.NameToID[node.Mod.Name]
		if !ok {
			// индекс строится по тем же модулям, сюда не попадаем
			continue
		}
		slot := &g.Slots[id]
		if slot.Present {
			diag.ReportError(node.Reporter, diag.GraphDuplicateModule, node.Mod.NameSpan,
				fmt.Sprintf("duplicate module %q", node.Mod.Name)).
				WithNote(slot.Mod.NameSpan, "previously declared here").Emit()
			continue
		}
		slot.Mod = node.Mod
		slot.Reporter = node.Reporter
		slot.Present = true
	}

	for from := range g.Slots {
		slot := &g.Slots[from]
		if !slot.Present {
			continue
		}
		seen := make(map[ModuleID]struct{}, len(slot.Mod.Imports))
		for _, imp := range slot.Mod.Imports {
			toID, ok := idx.NameToID[imp.Module]
			if !ok {
				continue
			}
			if ModuleID(from) == toID {
				diag.ReportError(slot.Reporter, diag.GraphSelfImport, imp.ModuleSpan,
					fmt.Sprintf("module %q imports itself", slot.Mod.Name)).Emit()
				continue
			}
			if _, dup := seen[toID]; dup {
				continue
			}
			seen[toID] = struct{}{}

			if !g.Slots[toID].Present {
				diag.ReportError(slot.Reporter, diag.GraphMissingModule, imp.ModuleSpan,
					fmt.Sprintf("module %q imports unknown module %q",
						slot.Mod.Name, imp.Module)).Emit()
				continue
			}
			g.Deps[from] = append(g.Deps[from], toID)
			g.Dependents[toID] = append(g.Dependents[toID], ModuleID(from))
			g.Indeg[from]++
		}
		if len(g.Deps[from]) > 1 {
			slices.Sort(g.Deps[from])
		}
	}
	for id := range g.Dependents {
		if len(g.Dependents[id]) > 1 {
			slices.Sort(g.Dependents[id])
		}
	}
	return g
}

// MarkBroken помечает модуль сломанным и запоминает первую ошибку,
// чтобы зависимые модули могли сослаться на неё.
func (g *Graph) MarkBroken(id ModuleID, first *diag.Diagnostic) {
	g.Slots[id].Broken = true
	if g.Slots[id].FirstErr == nil {
		g.Slots[id].FirstErr = first
	}
}

// ReportCycles репортит каждому участнику цикла его вхождение. Модули,
// которые сами в цикле не состоят, но зависят от него, получают
// GraphDependencyBroken на импорт, ведущий к циклу; участником цикла
// они не объявляются. И те, и другие помечаются сломанными: переименовать
// их нельзя.
func ReportCycles(g *Graph, topo *Topo) {
	if !topo.Cyclic || len(topo.Cycles) == 0 {
		return
	}
	parts := make([]string, 0, len(topo.Cycles))
	inCycle := make(map[ModuleID]bool, len(topo.Cycles))
	for _, id := range topo.Cycles {
		parts = append(parts, string(g.Index.IDToName[id]))
		inCycle[id] = true
	}
	summary := strings.Join(parts, " -> ")

	for _, id := range topo.Cycles {
		slot := &g.Slots[id]
		if !slot.Present {
			continue
		}
		msg := fmt.Sprintf("module %q participates in an import cycle: %s",
			slot.Mod.Name, summary)
		diag.ReportError(slot.Reporter, diag.GraphImportCycle, slot.Mod.NameSpan, msg).Emit()
		g.MarkBroken(id, &diag.Diagnostic{
			Severity: diag.SevError,
			Code:     diag.GraphImportCycle,
			Message:  msg,
			Primary:  slot.Mod.NameSpan,
		})
	}

	stuck := make(map[ModuleID]bool, len(topo.Stuck))
	for _, id := range topo.Stuck {
		stuck[id] = true
	}
	for _, id := range topo.Stuck {
		slot := &g.Slots[id]
		if !slot.Present {
			continue
		}
		for _, imp := range slot.Mod.Imports {
			toID, ok := g.Index.NameToID[imp.Module]
			if !ok || (!inCycle[toID] && !stuck[toID]) {
				continue
			}
			msg := fmt.Sprintf("dependency module %q is blocked by an import cycle: %s",
				imp.Module, summary)
			diag.ReportError(slot.Reporter, diag.GraphDependencyBroken, imp.ModuleSpan, msg).Emit()
			g.MarkBroken(id, &diag.Diagnostic{
				Severity: diag.SevError,
				Code:     diag.GraphDependencyBroken,
				Message:  msg,
				Primary:  imp.ModuleSpan,
			})
		}
	}
}

// ReportBrokenDeps репортит импорты модулей, чьё переименование провалилось.
func ReportBrokenDeps(g *Graph) {
	for from := range g.Slots {
		slot := &g.Slots[from]
		if !slot.Present || slot.Broken {
			continue
		}
		for _, imp := range slot.Mod.Imports {
			toID, ok := g.Index.NameToID[imp.Module]
			if !ok {
				continue
			}
			dep := &g.Slots[toID]
			if !dep.Broken {
				continue
			}
			b := diag.ReportError(slot.Reporter, diag.GraphDependencyBroken, imp.ModuleSpan,
				fmt.Sprintf("dependency module %q has errors", imp.Module))
			if dep.FirstErr != nil {
				b.WithNote(dep.FirstErr.Primary,
					fmt.Sprintf("first error in dependency: %s", dep.FirstErr.Message))
			}
			b.Emit()
		}
	}
}
