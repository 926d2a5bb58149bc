package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"fen/internal/diag"
	"fen/internal/project"
	"fen/internal/token"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCheckHappyPath(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"n.fen": "module N exposing (f)\nf x = x\n",
		"m.fen": "module M exposing (..)\nimport N exposing (f)\ng = f 1\n",
	})
	cacheDir := t.TempDir()

	res, err := Check(context.Background(), Options{Dir: dir, CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected errors: %v", res.Merged().Items())
	}
	if len(res.Renamed) != 2 {
		t.Errorf("renamed %d modules, want 2", len(res.Renamed))
	}
	if res.CacheHits != 0 {
		t.Errorf("first run cache hits = %d", res.CacheHits)
	}

	// Второй прогон целиком из кэша
	res2, err := Check(context.Background(), Options{Dir: dir, CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("second Check: %v", err)
	}
	if res2.CacheHits != 2 {
		t.Errorf("second run cache hits = %d, want 2", res2.CacheHits)
	}
	if res2.HasErrors() {
		t.Error("second run must stay clean")
	}
}

func TestCheckEditInvalidatesDependents(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"n.fen": "module N exposing (f)\nf x = x\n",
		"m.fen": "module M exposing (..)\nimport N exposing (f)\ng = f 1\n",
	})
	cacheDir := t.TempDir()

	if _, err := Check(context.Background(), Options{Dir: dir, CacheDir: cacheDir}); err != nil {
		t.Fatal(err)
	}

	// Правка зависимости меняет её ключ, а через него и ключ зависимого
	src := "module N exposing (f, h)\nf x = x\nh = 0\n"
	if err := os.WriteFile(filepath.Join(dir, "n.fen"), []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := Check(context.Background(), Options{Dir: dir, CacheDir: cacheDir})
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheHits != 0 {
		t.Errorf("cache hits after edit = %d, want 0", res.CacheHits)
	}
	if len(res.Renamed) != 2 {
		t.Errorf("renamed %d modules, want 2", len(res.Renamed))
	}
}

func TestCheckReportsRenameErrorAndBrokenDep(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"n.fen": "module N exposing (f)\nf = missing\n",
		"m.fen": "module M exposing (..)\nimport N exposing (f)\ng = f\n",
	})

	res, err := Check(context.Background(), Options{Dir: dir, NoCache: true})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.HasErrors() {
		t.Fatal("expected errors")
	}

	var sawUnknown, sawBrokenDep bool
	for _, d := range res.Merged().Items() {
		switch d.Code {
		case diag.RenameUnknownName:
			sawUnknown = true
		case diag.GraphDependencyBroken:
			sawBrokenDep = true
		}
	}
	if !sawUnknown {
		t.Error("missing unknown-name diagnostic in N")
	}
	if !sawBrokenDep {
		t.Error("missing broken-dependency diagnostic in M")
	}
}

func TestCheckParseErrorDoesNotAbortSiblings(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"bad.fen":  "module Bad exposing (..)\nf = = 1\n",
		"good.fen": "module Good exposing (..)\ng = 1\n",
	})

	res, err := Check(context.Background(), Options{Dir: dir, NoCache: true})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.HasErrors() {
		t.Fatal("expected a syntax error")
	}
	if _, ok := res.Renamed["Good"]; !ok {
		t.Error("Good must still be renamed")
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := project.DigestBytes([]byte("module"))
	in := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Name:        "Data.List",
		ImportPaths: []string{"Core"},
		DeclNames:   []string{"map", "foldr"},
		ContentHash: key,
	}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var out DiskPayload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v", hit, err)
	}
	if out.Name != in.Name || len(out.DeclNames) != 2 || out.DeclNames[1] != "foldr" {
		t.Errorf("payload mismatch: %+v", out)
	}
	if out.ContentHash != in.ContentHash {
		t.Error("content hash mismatch")
	}

	var miss DiskPayload
	if hit, _ := cache.Get(project.DigestBytes([]byte("other")), &miss); hit {
		t.Error("unexpected hit for unknown key")
	}

	// nil-кэш молчит
	var disabled *DiskCache
	if err := disabled.Put(key, in); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	if hit, err := disabled.Get(key, &out); hit || err != nil {
		t.Errorf("nil Get: hit=%v err=%v", hit, err)
	}
}

func TestTokenizeFile(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"m.fen": "module M exposing (..)\nf = 1\n",
	})
	_, tokens, bag, err := TokenizeFile(filepath.Join(dir, "m.fen"), 16)
	if err != nil {
		t.Fatalf("TokenizeFile: %v", err)
	}
	if bag.HasErrors() {
		t.Fatalf("diagnostics: %v", bag.Items())
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		t.Error("token stream must end with EOF")
	}
	if tokens[0].Kind != token.KwModule {
		t.Errorf("first token = %v", tokens[0].Kind)
	}
}
