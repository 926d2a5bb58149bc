package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"fen/internal/ast/surface"
	"fen/internal/project"
)

// Поднимать при изменении формата DiskPayload.
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит артефакты переименования по ключу-дайджесту на диске.
// nil-получатель допустим и означает выключенный кэш.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload — закэшированный результат обработки одного модуля.
// Ключ уже учитывает содержимое модуля и ключи зависимостей, поэтому
// попадание означает: модуль и всё, от чего он зависит, не менялись.
type DiskPayload struct {
	Schema uint16

	Name        string
	ImportPaths []string
	DeclNames   []string

	ContentHash project.Digest
	Broken      bool
}

// OpenDiskCache открывает кэш в стандартном месте:
// $XDG_CACHE_HOME/<app> или ~/.cache/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt открывает кэш в произвольном каталоге.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "mods" — для удобства ручной очистки.
	return filepath.Join(c.dir, "mods", hexKey+".mp")
}

// Put сериализует payload и атомарно записывает его в кэш.
func (c *DiskCache) Put(key project.Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get читает payload по ключу. Устаревшая схема считается промахом.
func (c *DiskCache) Get(key project.Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll инвалидирует весь кэш.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

// modulePayload собирает payload из поверхностного модуля.
func modulePayload(mod *surface.Module, content project.Digest, broken bool) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Name:        string(mod.Name),
		ContentHash: content,
		Broken:      broken,
	}
	for _, imp := range mod.Imports {
		payload.ImportPaths = append(payload.ImportPaths, string(imp.Module))
	}
	for _, d := range mod.Decls {
		switch d := d.(type) {
		case *surface.ValueDecl:
			payload.DeclNames = append(payload.DeclNames, string(d.Name))
		case *surface.TypeDecl:
			payload.DeclNames = append(payload.DeclNames, string(d.Name))
		case *surface.NativeDecl:
			payload.DeclNames = append(payload.DeclNames, string(d.Name))
		}
	}
	return payload
}
