package driver

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"fen/internal/ast/renamed"
	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/modgraph"
	"fen/internal/names"
	"fen/internal/project"
	"fen/internal/rename"
	"fen/internal/source"
)

// Options управляет конвейером Check.
type Options struct {
	Dir            string
	Jobs           int
	MaxDiagnostics int
	NoCache        bool
	CacheDir       string // пусто = стандартное место
}

// Result — всё, что произвёл конвейер: файлы с их диагностиками, граф и
// переименованные модули. Модули, пропущенные по кэшу, в Renamed не попадают.
type Result struct {
	FileSet   *source.FileSet
	Files     []ParseResult
	Graph     *modgraph.Graph
	Topo      *modgraph.Topo
	Renamed   map[names.ModuleName]*renamed.Module
	CacheHits int
}

// Merged собирает все диагностики в один отсортированный пакет.
func (r *Result) Merged() *diag.Bag {
	max := 0
	for _, f := range r.Files {
		max += f.Bag.Len()
	}
	out := diag.NewBag(max)
	for _, f := range r.Files {
		out.Merge(f.Bag)
	}
	out.Sort()
	out.Dedup()
	return out
}

// HasErrors сообщает, нашёл ли конвейер хоть одну ошибку.
func (r *Result) HasErrors() bool {
	for _, f := range r.Files {
		if f.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// Check прогоняет каталог через разбор, граф и переименование.
// Диагностики не возвращаются ошибкой: ошибка Check — это сбой самой
// инфраструктуры (I/O кэша, отмена контекста).
func Check(ctx context.Context, opts Options) (*Result, error) {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.GOMAXPROCS(0)
	}
	if opts.MaxDiagnostics <= 0 {
		opts.MaxDiagnostics = project.DefaultMaxDiagnostics
	}

	fileSet, files, err := ParseDir(ctx, opts.Dir, opts.MaxDiagnostics, opts.Jobs)
	if err != nil {
		return nil, err
	}

	nodes := make([]modgraph.Node, 0, len(files))
	mods := make([]*surface.Module, 0, len(files))
	for i := range files {
		f := &files[i]
		if f.Mod == nil {
			continue
		}
		nodes = append(nodes, modgraph.Node{Mod: f.Mod, Reporter: diag.BagReporter{Bag: f.Bag}})
		mods = append(mods, f.Mod)
	}

	idx := modgraph.BuildIndex(mods)
	g := modgraph.Build(idx, nodes)
	topo := modgraph.Toposort(g)
	modgraph.ReportCycles(g, topo)

	var cache *DiskCache
	if !opts.NoCache {
		var cerr error
		if opts.CacheDir != "" {
			cache, cerr = OpenDiskCacheAt(opts.CacheDir)
		} else {
			cache, cerr = OpenDiskCache("fen")
		}
		if cerr != nil {
			// Недоступный кэш не валит проверку
			cache = nil
		}
	}

	res := &Result{
		FileSet: fileSet,
		Files:   files,
		Graph:   g,
		Topo:    topo,
		Renamed: make(map[names.ModuleName]*renamed.Module),
	}

	renamer := rename.New(g, names.NewSupply())
	keys := make([]project.Digest, len(g.Slots))

	var mu sync.Mutex
	for _, batch := range topo.Batches {
		eg, gctx := errgroup.WithContext(ctx)
		eg.SetLimit(min(opts.Jobs, len(batch)))
		for _, id := range batch {
			eg.Go(func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				slot := &g.Slots[id]
				mod := slot.Mod
				content := project.Digest(fileSet.Get(mod.File).Hash)

				// Ключи зависимостей уже посчитаны предыдущими волнами.
				depKeys := make([]project.Digest, 0, len(g.Deps[id]))
				for _, dep := range g.Deps[id] {
					depKeys = append(depKeys, keys[dep])
				}
				key := project.Combine(content, depKeys...)
				keys[id] = key

				var payload DiskPayload
				if hit, _ := cache.Get(key, &payload); hit && !payload.Broken && payload.Name == string(mod.Name) {
					mu.Lock()
					res.CacheHits++
					mu.Unlock()
					return nil
				}

				rm, rerr := renamer.Module(mod)
				if rerr != nil {
					rerr.Report(slot.Reporter)
					g.MarkBroken(id, &diag.Diagnostic{
						Severity: diag.SevError,
						Code:     rerr.Code,
						Message:  rerr.Msg,
						Primary:  rerr.Span,
					})
					_ = cache.Put(key, modulePayload(mod, content, true))
					return nil
				}

				mu.Lock()
				res.Renamed[mod.Name] = rm
				mu.Unlock()
				_ = cache.Put(key, modulePayload(mod, content, false))
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return res, err
		}
	}

	modgraph.ReportBrokenDeps(g)
	return res, nil
}
