// Package storage provides the file read/write capability shared by the
// pipeline stages. Each stage talks to a Store rather than the filesystem
// directly, so stages are testable without touching disk.
package storage

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Store is the minimal persistence surface the pipeline needs.
// Names are slash-separated paths relative to the store root.
type Store interface {
	// ReadFile returns the full contents of the named file.
	ReadFile(name string) ([]byte, error)

	// WriteFile replaces the named file with data, creating parent
	// directories as needed.
	WriteFile(name string, data []byte) error

	// Exists reports whether the named file is present.
	Exists(name string) bool
}

// Dir is a Store rooted at a filesystem directory.
type Dir struct {
	Root string
}

// NewDir returns a Store backed by the given directory.
func NewDir(root string) *Dir {
	return &Dir{Root: root}
}

func (d *Dir) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(d.Root, filepath.FromSlash(name)))
}

func (d *Dir) WriteFile(name string, data []byte) error {
	path := filepath.Join(d.Root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (d *Dir) Exists(name string) bool {
	_, err := os.Stat(filepath.Join(d.Root, filepath.FromSlash(name)))
	return err == nil
}

// Mem is an in-memory Store for tests.
type Mem struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMem returns an empty in-memory Store.
func NewMem() *Mem {
	return &Mem{files: make(map[string][]byte)}
}

func (m *Mem) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *Mem) WriteFile(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, len(data))
	copy(out, data)
	m.files[name] = out
	return nil
}

func (m *Mem) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

// Names returns the sorted names of all files in the store.
func (m *Mem) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
