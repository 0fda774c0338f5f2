package tree

import (
	"fmt"
	"sort"

	"github.com/mamaar/ngessentials/pkg/types"
)

// UpdateRecorder collects insertions against a snapshot of one file.
// Offsets always refer to the content as it was at BeginUpdate.
type UpdateRecorder struct {
	path     string
	original []byte
	edits    []types.Edit
}

// BeginUpdate starts recording edits for p. It fails with MissingFile if p
// does not exist.
func (t *Tree) BeginUpdate(p string) (*UpdateRecorder, error) {
	p = Clean(p)
	data, ok, err := t.Read(p)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.NewError(types.MissingFile, p, "file does not exist")
	}
	return &UpdateRecorder{path: p, original: data}, nil
}

// Path returns the file the recorder edits
func (r *UpdateRecorder) Path() string {
	return r.path
}

// InsertLeft records text to be inserted at pos. Insertions at the same
// offset keep the order they were recorded in.
func (r *UpdateRecorder) InsertLeft(pos int, text string) *UpdateRecorder {
	r.edits = append(r.edits, types.Edit{Kind: types.Insert, Pos: pos, End: pos, Text: text})
	return r
}

// CommitUpdate applies the recorded insertions and stages the result.
func (t *Tree) CommitUpdate(r *UpdateRecorder) error {
	if len(r.edits) == 0 {
		return nil
	}
	updated, err := ApplyEdits(r.original, r.edits)
	if err != nil {
		return types.WrapError(types.InvalidEdit, r.path, "failed to apply edits", err)
	}
	t.stage(r.path, updated)
	return nil
}

// ApplyEdits applies edits to content. Edits are applied back to front so
// earlier offsets stay valid; overlapping replacements are rejected.
func ApplyEdits(content []byte, edits []types.Edit) ([]byte, error) {
	if len(edits) == 0 {
		return append([]byte(nil), content...), nil
	}

	type indexed struct {
		types.Edit
		seq int
	}
	ordered := make([]indexed, len(edits))
	for i, e := range edits {
		if e.Kind == types.Insert {
			e.End = e.Pos
		}
		if e.Pos < 0 || e.End > len(content) || e.Pos > e.End {
			return nil, fmt.Errorf("invalid edit bounds: start=%d, end=%d, content length=%d",
				e.Pos, e.End, len(content))
		}
		ordered[i] = indexed{Edit: e, seq: i}
	}

	// Reverse order; for equal offsets the later edit goes first so the
	// earlier one ends up in front of it.
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Pos != ordered[j].Pos {
			return ordered[i].Pos > ordered[j].Pos
		}
		return ordered[i].seq > ordered[j].seq
	})

	for i := 1; i < len(ordered); i++ {
		later, earlier := ordered[i-1], ordered[i]
		if earlier.End > later.Pos && later.Pos != later.End {
			return nil, fmt.Errorf("overlapping edits detected: [%d-%d] and [%d-%d]",
				earlier.Pos, earlier.End, later.Pos, later.End)
		}
		if earlier.End > later.Pos {
			return nil, fmt.Errorf("insertion at %d falls inside edit [%d-%d]",
				later.Pos, earlier.Pos, earlier.End)
		}
	}

	out := append([]byte(nil), content...)
	for _, e := range ordered {
		var buf []byte
		buf = append(buf, out[:e.Pos]...)
		buf = append(buf, e.Text...)
		buf = append(buf, out[e.End:]...)
		out = buf
	}
	return out, nil
}
