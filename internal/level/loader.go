package level

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var embedded embed.FS

// ErrNotFound is returned when no source holds the requested level.
var ErrNotFound = errors.New("level not found")

// Source provides levels.
type Source interface {
	LoadAll() ([]Level, error)
	LoadByID(id string) (Level, error)
}

// Parse decodes one YAML level, applies defaults and validates it.
func Parse(data []byte) (Level, error) {
	var l Level
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&l); err != nil {
		return Level{}, fmt.Errorf("decoding level: %w", err)
	}
	applyDefaults(&l)
	if err := l.Validate(); err != nil {
		return Level{}, err
	}
	return l, nil
}

// Loader handles loading levels from a file system.
type Loader struct {
	fsys fs.FS
	// Root is the directory shown in file paths; empty for embedded levels.
	Root string
}

// NewLoader creates a loader over a directory.
func NewLoader(root string) *Loader {
	return &Loader{fsys: os.DirFS(root), Root: root}
}

// Embedded returns a loader over the built-in levels.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "levels")
	if err != nil {
		panic(err)
	}
	return &Loader{fsys: sub}
}

// LoadAll scans and loads every level file. Invalid files are skipped; use
// LoadFile to see why one fails.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		lvl, err := l.load(path)
		if err != nil {
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking levels %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads a single level file from disk.
func LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("%s: %w", path, err)
	}
	lvl.FilePath = path
	return lvl, nil
}

func (l *Loader) load(path string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return Level{}, err
	}
	lvl, err := Parse(data)
	if err != nil {
		return Level{}, err
	}
	if l.Root != "" {
		lvl.FilePath = filepath.Join(l.Root, path)
	}
	return lvl, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Chain looks levels up in order. An ID found in an earlier source hides
// the same ID in later ones.
type Chain []Source

// LoadAll merges all sources, sorted by ID.
func (c Chain) LoadAll() ([]Level, error) {
	seen := make(map[string]bool)
	var out []Level
	for _, src := range c {
		levels, err := src.LoadAll()
		if err != nil {
			return nil, err
		}
		for _, lvl := range levels {
			if seen[lvl.ID] {
				continue
			}
			seen[lvl.ID] = true
			out = append(out, lvl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadByID returns the first source's level with the ID.
func (c Chain) LoadByID(id string) (Level, error) {
	for _, src := range c {
		lvl, err := src.LoadByID(id)
		if err == nil {
			return lvl, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Level{}, err
		}
	}
	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}
