// Package library lists model files available on the local host, the
// same inventory the resolver's asset identifiers are drawn from.
package library

import (
	"errors"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Kinds of model files the library knows about.
const (
	KindLoras       = "loras"
	KindCheckpoints = "checkpoints"
)

var (
	// ErrUnknownKind is returned for a kind the library is not configured with.
	ErrUnknownKind = errors.New("unknown model kind")
	// ErrNoModels is returned when a random pick finds an empty directory.
	ErrNoModels = errors.New("no model files found")
)

// modelExts are the file extensions treated as model artifacts.
var modelExts = map[string]bool{
	".safetensors": true,
	".ckpt":        true,
	".pt":          true,
}

// Library scans configured directories for model files.
type Library struct {
	dirs map[string]string
}

// New creates a library over per-kind directories. Kinds with an empty
// directory are left unconfigured.
func New(lorasDir, checkpointsDir string) *Library {
	dirs := make(map[string]string)
	if lorasDir != "" {
		dirs[KindLoras] = lorasDir
	}
	if checkpointsDir != "" {
		dirs[KindCheckpoints] = checkpointsDir
	}
	return &Library{dirs: dirs}
}

// Kinds returns the configured kinds, sorted.
func (l *Library) Kinds() []string {
	kinds := make([]string, 0, len(l.dirs))
	for kind := range l.dirs {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// List returns the model filenames of a kind, relative to its
// directory, sorted. A missing directory yields an empty list rather
// than an error so the service starts before any models are installed.
func (l *Library) List(kind string) ([]string, error) {
	dir, ok := l.dirs[kind]
	if !ok {
		return nil, ErrUnknownKind
	}

	var names []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !modelExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}

	sort.Strings(names)
	return names, nil
}

// Random picks one model filename of a kind at random.
func (l *Library) Random(kind string) (string, error) {
	names, err := l.List(kind)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", ErrNoModels
	}
	return names[rand.Intn(len(names))], nil
}
