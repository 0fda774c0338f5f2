package tree

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Host is the backing store a Tree is staged over.
// ReadFile must return an error satisfying errors.Is(err, fs.ErrNotExist)
// for absent files.
type Host interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Remove(path string) error
}

// OSHost reads and writes files below Root on the local disk.
type OSHost struct {
	Root string
}

// NewOSHost creates an OSHost rooted at root
func NewOSHost(root string) *OSHost {
	return &OSHost{Root: root}
}

func (h *OSHost) abs(path string) string {
	return filepath.Join(h.Root, filepath.FromSlash(path))
}

func (h *OSHost) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(h.abs(path))
}

// WriteFile writes data atomically using a temp file in the target directory
// followed by a rename, creating parent directories as needed.
func (h *OSHost) WriteFile(path string, data []byte) error {
	target := h.abs(path)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".ng-essentials-tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	perm := os.FileMode(0644)
	if info, err := os.Stat(target); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		return err
	}

	success = true
	return nil
}

// Remove deletes path. Removing an absent file is not an error.
func (h *OSHost) Remove(path string) error {
	err := os.Remove(h.abs(path))
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemHost is an in-memory Host, used by tests and previews.
type MemHost struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemHost creates a MemHost holding the given files
func NewMemHost(files map[string]string) *MemHost {
	h := &MemHost{files: make(map[string][]byte, len(files))}
	for path, content := range files {
		h.files[Clean(path)] = []byte(content)
	}
	return h
}

func (h *MemHost) ReadFile(path string) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	data, ok := h.files[Clean(path)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (h *MemHost) WriteFile(path string, data []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.files[Clean(path)] = append([]byte(nil), data...)
	return nil
}

func (h *MemHost) Remove(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.files, Clean(path))
	return nil
}

// Files returns a snapshot of every file as a string map
func (h *MemHost) Files() map[string]string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]string, len(h.files))
	for path, data := range h.files {
		out[path] = string(data)
	}
	return out
}

// Paths returns the sorted list of stored paths
func (h *MemHost) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	paths := make([]string, 0, len(h.files))
	for path := range h.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
