package types

import "fmt"

// Options is the input record of a preset run
type Options struct {
	FirstRun bool `json:"first_run"`
	Jest     bool `json:"jest"`
	Cypress  bool `json:"cypress"`
}

// Edit represents a textual change against an original source, at byte offsets
type Edit struct {
	Kind        EditKind
	Pos         int // Byte offset start
	End         int // Byte offset end, equal to Pos for inserts
	Text        string
	Description string
}

type EditKind int

const (
	Insert EditKind = iota
	Delete
	Replace
)

// String returns the string representation of an EditKind
func (k EditKind) String() string {
	switch k {
	case Insert:
		return "Insert"
	case Delete:
		return "Delete"
	case Replace:
		return "Replace"
	default:
		return "Unknown"
	}
}

// Action is a staged mutation of the project tree
type Action struct {
	Kind ActionKind `json:"kind"`
	Path string     `json:"path"`
}

type ActionKind int

const (
	CreateAction ActionKind = iota
	OverwriteAction
	DeleteAction
)

// String returns the string representation of an ActionKind
func (k ActionKind) String() string {
	switch k {
	case CreateAction:
		return "create"
	case OverwriteAction:
		return "overwrite"
	case DeleteAction:
		return "delete"
	default:
		return "unknown"
	}
}

// MarshalText lets reports print the kind by name.
func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText accepts the names MarshalText produces, so JSON reports
// decode back into a Report.
func (k *ActionKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "create":
		*k = CreateAction
	case "overwrite":
		*k = OverwriteAction
	case "delete":
		*k = DeleteAction
	default:
		return fmt.Errorf("unknown action kind %q", text)
	}
	return nil
}

// Report summarizes one preset run
type Report struct {
	RunID   string       `json:"run_id"`
	Skipped bool         `json:"skipped"`
	Steps   []StepReport `json:"steps,omitempty"`
	Actions []Action     `json:"actions,omitempty"`
}

type StepReport struct {
	Name    string `json:"name"`
	Skipped bool   `json:"skipped,omitempty"`
}
