// Package modgraph builds the directed module graph the renamer walks:
// lookup by module name plus a Kahn topological order with batches of
// independent modules for parallel renaming.
package modgraph

import (
	"sort"

	"fen/internal/ast/surface"
	"fen/internal/names"
)

type ModuleID uint32

type Index struct {
	NameToID map[names.ModuleName]ModuleID
	IDToName []names.ModuleName
}

// BuildIndex собирает уникальные имена модулей (объявленные и импортируемые),
// сортирует и раздаёт ID по порядку.
func BuildIndex(mods []*surface.Module) Index {
	uniq := make(map[names.ModuleName]struct{}, len(mods))
	for _, m := range mods {
		if m.Name != "" {
			uniq[m.Name] = struct{}{}
		}
		for _, imp := range m.Imports {
			if imp.Module != "" {
				uniq[imp.Module] = struct{}{}
			}
		}
	}

	all := make([]names.ModuleName, 0, len(uniq))
	for name := range uniq {
		all = append(all, name)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })

	nameToID := make(map[names.ModuleName]ModuleID, len(all))
	for i, name := range all {
		nameToID[name] = ModuleID(i)
	}
	return Index{NameToID: nameToID, IDToName: all}
}
