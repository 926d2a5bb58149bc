package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a parsed fen.toml.
type Manifest struct {
	Path string // путь к самому fen.toml
	Root string // каталог манифеста

	Package PackageSection
	Check   CheckSection
}

// PackageSection is the [package] table.
type PackageSection struct {
	Name string `toml:"name"`
}

// CheckSection is the optional [check] table.
type CheckSection struct {
	MaxDiagnostics int  `toml:"max-diagnostics"`
	Cache          bool `toml:"cache"`
}

// DefaultMaxDiagnostics caps the bag when the manifest does not say otherwise.
const DefaultMaxDiagnostics = 64

var (
	// ErrPackageSectionMissing indicates that [package] is missing in fen.toml.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

type manifestFile struct {
	Package PackageSection `toml:"package"`
	Check   CheckSection   `toml:"check"`
}

// LoadManifest parses one fen.toml. Unset [check] fields fall back to the
// defaults.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !IsValidPackageName(name) {
		return nil, fmt.Errorf("%s: invalid [package].name %q", path, name)
	}

	m := &Manifest{
		Path:    path,
		Root:    filepath.Dir(path),
		Package: PackageSection{Name: name},
		Check: CheckSection{
			MaxDiagnostics: DefaultMaxDiagnostics,
			Cache:          true,
		},
	}
	if meta.IsDefined("check", "max-diagnostics") {
		if cfg.Check.MaxDiagnostics <= 0 {
			return nil, fmt.Errorf("%s: [check].max-diagnostics must be positive", path)
		}
		m.Check.MaxDiagnostics = cfg.Check.MaxDiagnostics
	}
	if meta.IsDefined("check", "cache") {
		m.Check.Cache = cfg.Check.Cache
	}
	return m, nil
}

// LoadFromDir finds the nearest fen.toml above startDir and parses it.
// ok=false means no manifest exists; callers fall back to defaults.
func LoadFromDir(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindFenToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// WriteScaffold creates a fresh fen.toml in dir. Refuses to overwrite.
func WriteScaffold(dir, name string) (string, error) {
	if !IsValidPackageName(name) {
		return "", fmt.Errorf("invalid package name %q", name)
	}
	path := filepath.Join(dir, "fen.toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to stat %q: %w", path, err)
	}
	content := fmt.Sprintf("[package]\nname = %q\n\n[check]\nmax-diagnostics = %d\n",
		name, DefaultMaxDiagnostics)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %q: %w", path, err)
	}
	return path, nil
}
