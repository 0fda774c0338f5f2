package jsonedit

import (
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

// Read loads the JSON object at path from t.
func Read(t *tree.Tree, path string) (*Document, error) {
	data, ok, err := t.Read(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.NewError(types.MissingFile, tree.Clean(path), "file does not exist")
	}
	return Parse(tree.Clean(path), data)
}

// UpdateJSON reads the document at path, applies transform and writes the
// result back. Nothing is staged when transform fails or leaves the document
// untouched.
func UpdateJSON(t *tree.Tree, path string, transform func(*Document) error) error {
	doc, err := Read(t, path)
	if err != nil {
		return err
	}
	if err := transform(doc); err != nil {
		return err
	}
	if !doc.Changed() {
		return nil
	}
	return t.Overwrite(doc.Path(), doc.Bytes())
}
