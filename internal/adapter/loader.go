// Package adapter contains infrastructure adapters for the docrun CLI.
package adapter

import (
	"fmt"
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/docrun-dev/docrun/internal/model"
)

const (
	sourceExtension = ".go"

	// settingsEnvVar mirrors the web-framework convention of naming the
	// settings module: when set, files with the reserved base name are
	// registered under "<parent-dir>.<reserved name>" instead.
	settingsEnvVar     = "DOCRUN_SETTINGS_MODULE"
	reservedModuleName = "models"
)

// artifactExtensions are compiled outputs that are never raw-text targets.
var artifactExtensions = map[string]struct{}{
	".o":   {},
	".a":   {},
	".so":  {},
	".exe": {},
}

// RawText is a non-source file scanned directly for embedded examples.
type RawText struct {
	Path m.Path
	Text string
}

// SourceLoader resolves files and folders into loadable modules. It
// intentionally hides direct os/go-parser access so the domain layer can be
// tested without touching the disk.
type SourceLoader interface {
	// Load parses one Go file and registers it under a unique module name.
	Load(path m.Path) (*m.Module, error)

	// LoadText reads a non-source file as a raw-text target.
	LoadText(path m.Path) (RawText, error)

	// ResolveFolder walks the tree rooted at path. Files whose base name
	// matches pattern load as modules when they have the source extension
	// and become raw-text targets otherwise, compiled artifacts excluded.
	ResolveFolder(path m.Path, pattern string) ([]*m.Module, []RawText, error)
}

// LocalSourceLoader is the concrete SourceLoader. Its registry lives for one
// run: construct a fresh loader per run and module-name uniqueness holds for
// exactly that run, with no cross-run leakage.
type LocalSourceLoader struct {
	registry map[string]*m.Module
}

// NewLocalSourceLoader constructs a LocalSourceLoader with an empty registry.
func NewLocalSourceLoader() *LocalSourceLoader {
	return &LocalSourceLoader{registry: make(map[string]*m.Module)}
}

// Load parses the file at path and registers the resulting module.
func (l *LocalSourceLoader) Load(path m.Path) (*m.Module, error) {
	fset := token.NewFileSet()

	file, err := parser.ParseFile(fset, string(path), nil, parser.ParseComments)
	if err != nil {
		return nil, &m.NotSourceError{Path: path, Err: err}
	}

	name := l.uniqueName(moduleName(path))
	mod := &m.Module{
		Name:    name,
		Path:    path,
		File:    file,
		FileSet: fset,
	}
	l.registry[name] = mod

	slog.Debug("loaded module", "path", path, "name", name)

	return mod, nil
}

// LoadText reads path verbatim for direct example scanning.
func (l *LocalSourceLoader) LoadText(path m.Path) (RawText, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return RawText{}, fmt.Errorf("read text target: %w", err)
	}

	return RawText{Path: path, Text: string(data)}, nil
}

// ResolveFolder walks the directory tree and classifies matching files.
func (l *LocalSourceLoader) ResolveFolder(path m.Path, pattern string) ([]*m.Module, []RawText, error) {
	if pattern == "" {
		pattern = ".*"
	}

	// Match at the start of the name, not anywhere inside it.
	prog, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, nil, fmt.Errorf("invalid name pattern %q: %w", pattern, err)
	}

	var (
		mods []*m.Module
		raws []RawText
	)

	walkErr := filepath.Walk(string(path), func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() || !prog.MatchString(info.Name()) {
			return nil
		}

		ext := filepath.Ext(p)
		if ext == sourceExtension {
			mod, loadErr := l.Load(m.Path(p))
			if loadErr != nil {
				return loadErr
			}

			mods = append(mods, mod)

			return nil
		}

		if _, artifact := artifactExtensions[ext]; artifact || !info.Mode().IsRegular() {
			return nil
		}

		raw, loadErr := l.LoadText(m.Path(p))
		if loadErr != nil {
			return loadErr
		}

		raws = append(raws, raw)

		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}

	return mods, raws, nil
}

// moduleName derives the registry candidate name for a file.
func moduleName(path m.Path) string {
	base := filepath.Base(string(path))
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if os.Getenv(settingsEnvVar) == "" || name != reservedModuleName {
		return name
	}

	abs, err := filepath.Abs(string(path))
	if err != nil {
		return name
	}

	return filepath.Base(filepath.Dir(abs)) + "." + reservedModuleName
}

// uniqueName resolves registry collisions by appending an incrementing
// numeric suffix. Uniqueness is guaranteed for the loader's lifetime only.
func (l *LocalSourceLoader) uniqueName(name string) string {
	if _, taken := l.registry[name]; !taken {
		return name
	}

	for cnt := 2; ; cnt++ {
		candidate := fmt.Sprintf("%s_%d", name, cnt)
		if _, taken := l.registry[candidate]; !taken {
			return candidate
		}
	}
}
