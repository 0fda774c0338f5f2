// Package tree stages file mutations of a project over a Host so that a whole
// preset run can be inspected, diffed or committed at once.
package tree

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/mamaar/ngessentials/pkg/types"
)

type baseFile struct {
	data   []byte
	exists bool
}

type entry struct {
	data    []byte
	deleted bool
}

// Tree is a mutable view of a project. Reads fall through to the host until
// a path is staged; nothing reaches the host before Commit.
type Tree struct {
	host   Host
	base   map[string]baseFile
	staged map[string]*entry
}

// New creates an empty staging tree over host
func New(host Host) *Tree {
	return &Tree{
		host:   host,
		base:   make(map[string]baseFile),
		staged: make(map[string]*entry),
	}
}

// Clean normalizes a tree path: slash separated, relative, no "./" prefix.
func Clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

func (t *Tree) hostRead(p string) (baseFile, error) {
	if b, ok := t.base[p]; ok {
		return b, nil
	}
	data, err := t.host.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			b := baseFile{}
			t.base[p] = b
			return b, nil
		}
		return baseFile{}, types.WrapError(types.FileSystemError, p, "failed to read file", err)
	}
	b := baseFile{data: data, exists: true}
	t.base[p] = b
	return b, nil
}

// Read returns the current content of p and whether it exists.
func (t *Tree) Read(p string) ([]byte, bool, error) {
	p = Clean(p)
	if e, ok := t.staged[p]; ok {
		if e.deleted {
			return nil, false, nil
		}
		return append([]byte(nil), e.data...), true, nil
	}
	b, err := t.hostRead(p)
	if err != nil {
		return nil, false, err
	}
	if !b.exists {
		return nil, false, nil
	}
	return append([]byte(nil), b.data...), true, nil
}

// Exists reports whether p currently exists. Host read failures count as absent.
func (t *Tree) Exists(p string) bool {
	_, ok, err := t.Read(p)
	return err == nil && ok
}

// Create stages a new file. It fails with FileExists if p already exists.
func (t *Tree) Create(p string, data []byte) error {
	p = Clean(p)
	_, ok, err := t.Read(p)
	if err != nil {
		return err
	}
	if ok {
		return types.NewError(types.FileExists, p, "file already exists")
	}
	t.stage(p, data)
	return nil
}

// Overwrite replaces the content of an existing file. It fails with
// MissingFile if p does not exist.
func (t *Tree) Overwrite(p string, data []byte) error {
	p = Clean(p)
	_, ok, err := t.Read(p)
	if err != nil {
		return err
	}
	if !ok {
		return types.NewError(types.MissingFile, p, "file does not exist")
	}
	t.stage(p, data)
	return nil
}

// Write creates or overwrites p.
func (t *Tree) Write(p string, data []byte) error {
	p = Clean(p)
	if _, err := t.hostRead(p); err != nil {
		return err
	}
	t.stage(p, data)
	return nil
}

// Delete removes p if present and reports whether it existed. Deleting an
// absent path is not an error.
func (t *Tree) Delete(p string) (bool, error) {
	p = Clean(p)
	_, ok, err := t.Read(p)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	t.staged[p] = &entry{deleted: true}
	return true, nil
}

func (t *Tree) stage(p string, data []byte) {
	t.staged[p] = &entry{data: append([]byte(nil), data...)}
}

// Actions lists the mutations Commit would perform, sorted by path.
// Paths whose staged content equals the host content are left out.
func (t *Tree) Actions() []types.Action {
	paths := make([]string, 0, len(t.staged))
	for p := range t.staged {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var actions []types.Action
	for _, p := range paths {
		e := t.staged[p]
		b := t.base[p]
		switch {
		case e.deleted && b.exists:
			actions = append(actions, types.Action{Kind: types.DeleteAction, Path: p})
		case e.deleted:
		case !b.exists:
			actions = append(actions, types.Action{Kind: types.CreateAction, Path: p})
		case !bytes.Equal(b.data, e.data):
			actions = append(actions, types.Action{Kind: types.OverwriteAction, Path: p})
		}
	}
	return actions
}

// HasChanges reports whether Commit would touch the host.
func (t *Tree) HasChanges() bool {
	return len(t.Actions()) > 0
}

// Commit writes every staged mutation to the host in path order and resets
// the staging area. A failure leaves earlier files written.
func (t *Tree) Commit(ctx context.Context) error {
	for _, a := range t.Actions() {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		switch a.Kind {
		case types.DeleteAction:
			err = t.host.Remove(a.Path)
		default:
			err = t.host.WriteFile(a.Path, t.staged[a.Path].data)
		}
		if err != nil {
			return types.WrapError(types.FileSystemError, a.Path, "failed to "+a.Kind.String()+" file", err)
		}
	}

	t.base = make(map[string]baseFile)
	t.staged = make(map[string]*entry)
	return nil
}
