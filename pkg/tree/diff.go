package tree

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/mamaar/ngessentials/pkg/types"
)

const diffContext = 3

const noNewlineMarker = "\\ No newline at end of file\n"

type lineOp struct {
	kind    diffmatchpatch.Operation
	content string
	// noEOL marks the last line of a side that lacks a trailing newline.
	noEOL bool
}

// Diff renders the staged mutations as a unified diff, one file after the
// other in path order.
func (t *Tree) Diff() string {
	var b strings.Builder
	for _, a := range t.Actions() {
		oldContent := ""
		if base := t.base[a.Path]; base.exists {
			oldContent = string(base.data)
		}
		newContent := ""
		if a.Kind != types.DeleteAction {
			newContent = string(t.staged[a.Path].data)
		}

		oldName, newName := "a/"+a.Path, "b/"+a.Path
		switch a.Kind {
		case types.CreateAction:
			oldName = "/dev/null"
		case types.DeleteAction:
			newName = "/dev/null"
		}
		fmt.Fprintf(&b, "--- %s\n+++ %s\n", oldName, newName)
		b.WriteString(UnifiedDiff(oldContent, newContent))
	}
	return b.String()
}

// UnifiedDiff returns the hunks of a line diff between two texts, without
// file headers.
func UnifiedDiff(oldContent, newContent string) string {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	var ops []lineOp
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			ops = append(ops, lineOp{kind: d.Type, content: line})
		}
	}
	markMissingNewline(ops, oldContent, diffmatchpatch.DiffDelete)
	markMissingNewline(ops, newContent, diffmatchpatch.DiffInsert)
	return renderHunks(ops)
}

// markMissingNewline flags the last line of one side when content does not
// end in a newline. Equal lines belong to both sides.
func markMissingNewline(ops []lineOp, content string, kind diffmatchpatch.Operation) {
	if content == "" || strings.HasSuffix(content, "\n") {
		return
	}
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].kind == kind || ops[i].kind == diffmatchpatch.DiffEqual {
			ops[i].noEOL = true
			return
		}
	}
}

func renderHunks(ops []lineOp) string {
	var b strings.Builder
	i := 0
	oldLine, newLine := 1, 1
	for i < len(ops) {
		if ops[i].kind == diffmatchpatch.DiffEqual {
			oldLine++
			newLine++
			i++
			continue
		}

		// Back up over leading context.
		start := i
		for start > 0 && i-start < diffContext && ops[start-1].kind == diffmatchpatch.DiffEqual {
			start--
		}
		hunkOld := oldLine - (i - start)
		hunkNew := newLine - (i - start)

		// Extend until a run of equal lines longer than twice the context.
		end := i
		equalRun := 0
		for end < len(ops) {
			if ops[end].kind == diffmatchpatch.DiffEqual {
				if equalRun == 2*diffContext {
					break
				}
				equalRun++
			} else {
				equalRun = 0
			}
			end++
		}
		if equalRun > diffContext {
			end -= equalRun - diffContext
		}

		var body strings.Builder
		oldCount, newCount := 0, 0
		for _, op := range ops[start:end] {
			switch op.kind {
			case diffmatchpatch.DiffEqual:
				body.WriteString(" " + op.content + "\n")
				oldCount++
				newCount++
			case diffmatchpatch.DiffDelete:
				body.WriteString("-" + op.content + "\n")
				oldCount++
			case diffmatchpatch.DiffInsert:
				body.WriteString("+" + op.content + "\n")
				newCount++
			}
			if op.noEOL {
				body.WriteString(noNewlineMarker)
			}
		}
		if oldCount == 0 {
			hunkOld--
		}
		if newCount == 0 {
			hunkNew--
		}
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", hunkOld, oldCount, hunkNew, newCount)
		b.WriteString(body.String())

		for _, op := range ops[i:end] {
			switch op.kind {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
			case diffmatchpatch.DiffDelete:
				oldLine++
			case diffmatchpatch.DiffInsert:
				newLine++
			}
		}
		i = end
	}
	return b.String()
}
