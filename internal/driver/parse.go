// Package driver orchestrates the pipeline: discover files, parse them in
// parallel, build the module graph and rename modules wave by wave, with a
// disk cache keyed by content digests to skip unchanged modules.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"fen/internal/ast/surface"
	"fen/internal/diag"
	"fen/internal/parser"
	"fen/internal/source"
)

// ParseResult содержит результат разбора одного файла.
type ParseResult struct {
	Path   string
	FileID source.FileID
	Mod    *surface.Module // nil при ошибке разбора или загрузки
	Bag    *diag.Bag
}

// listFenFiles возвращает отсортированный список всех *.fen файлов в каталоге.
func listFenFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".fen") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Детерминированный порядок
	sort.Strings(files)
	return files, nil
}

// ParseDir парсит все *.fen файлы каталога параллельно. Файлы с ошибками
// загрузки или разбора получают результат с Mod=nil и диагностикой в Bag.
func ParseDir(ctx context.Context, dir string, maxDiagnostics, jobs int) (*source.FileSet, []ParseResult, error) {
	files, err := listFenFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet не потокобезопасен на запись: грузим всё до разлёта горутин.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]ParseResult, len(files))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		eg.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)
			if loadErr, failed := loadErrors[path]; failed {
				bag.Add(diag.Diagnostic{
					Severity: diag.SevError,
					Code:     diag.IOLoadFileError,
					Message:  "failed to load file: " + loadErr.Error(),
				})
				results[i] = ParseResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			mod, ok := parser.ParseModule(fileSet.Get(fileID), diag.BagReporter{Bag: bag})
			if !ok {
				mod = nil
			}
			results[i] = ParseResult{Path: path, FileID: fileID, Mod: mod, Bag: bag}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
