package modgraph

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
)

type Topo struct {
	Order   []ModuleID   // линейный порядок, зависимости раньше зависимых
	Batches [][]ModuleID // волны независимых модулей
	Cyclic  bool
	Cycles  []ModuleID // настоящие участники циклов
	Stuck   []ModuleID // вне цикла, но заблокированы циклом выше по графу
}

// Toposort — алгоритм Кана поверх Indeg/Dependents. Модули с нулём
// зависимостей образуют первую волну; внутри волны порядок по ID.
func Toposort(g *Graph) *Topo {
	n := len(g.Slots)
	indeg := make([]int, n)
	copy(indeg, g.Indeg)

	topo := &Topo{Order: make([]ModuleID, 0, n)}

	active := 0
	current := make([]ModuleID, 0, n)
	for i := range n {
		if !g.Slots[i].Present {
			continue
		}
		active++
		if indeg[i] == 0 {
			id, err := safecast.Conv[ModuleID](i)
			if err != nil {
				panic(fmt.Errorf("module id overflow: %w", err))
			}
			current = append(current, id)
		}
	}
	slices.Sort(current)

	visited := 0
	for len(current) > 0 {
		batch := make([]ModuleID, len(current))
		copy(batch, current)
		topo.Batches = append(topo.Batches, batch)

		next := make([]ModuleID, 0)
		for _, id := range batch {
			topo.Order = append(topo.Order, id)
			visited++
			for _, dep := range g.Dependents[id] {
				indeg[dep]--
				if indeg[dep] == 0 {
					next = append(next, dep)
				}
			}
		}
		slices.Sort(next)
		current = next
	}

	if visited != active {
		topo.Cyclic = true
		leftover := make([]ModuleID, 0, active-visited)
		for i := range n {
			if g.Slots[i].Present && indeg[i] > 0 {
				id, err := safecast.Conv[ModuleID](i)
				if err != nil {
					panic(fmt.Errorf("module id overflow: %w", err))
				}
				leftover = append(leftover, id)
			}
		}
		topo.Cycles = cycleMembers(g, leftover)
		slices.Sort(topo.Cycles)
		for _, id := range leftover {
			if !slices.Contains(topo.Cycles, id) {
				topo.Stuck = append(topo.Stuck, id)
			}
		}
		slices.Sort(topo.Stuck)
	}
	return topo
}

// cycleMembers выделяет настоящих участников циклов: компоненты сильной
// связности размера больше единицы в подграфе необработанных узлов
// (Тарьян). Узел, который лишь зависит от цикла, в цикле не участвует.
// Петли размера один невозможны: самоимпорт отброшен ещё в Build.
func cycleMembers(g *Graph, leftover []ModuleID) []ModuleID {
	in := make(map[ModuleID]bool, len(leftover))
	for _, id := range leftover {
		in[id] = true
	}

	index := make(map[ModuleID]int, len(leftover))
	low := make(map[ModuleID]int, len(leftover))
	onStack := make(map[ModuleID]bool, len(leftover))
	var stack []ModuleID
	var members []ModuleID
	next := 0

	var connect func(v ModuleID)
	connect = func(v ModuleID) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.Deps[v] {
			if !in[w] {
				continue
			}
			if _, seen := index[w]; !seen {
				connect(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}

		if low[v] == index[v] {
			var comp []ModuleID
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			if len(comp) > 1 {
				members = append(members, comp...)
			}
		}
	}
	for _, id := range leftover {
		if _, seen := index[id]; !seen {
			connect(id)
		}
	}
	return members
}
