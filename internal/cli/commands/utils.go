package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mamaar/ngessentials/pkg/types"
)

// OutputJSON writes data to w as indented JSON
func OutputJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// PrintReport writes a human readable summary of a preset run.
func PrintReport(w io.Writer, report *types.Report, verbose, dryRun bool) {
	if report.Skipped {
		fmt.Fprintln(w, "Not a first run; nothing to do.")
		return
	}

	if verbose {
		fmt.Fprintf(w, "Steps (%d):\n", len(report.Steps))
		for i, s := range report.Steps {
			mark := ""
			if s.Skipped {
				mark = " (skipped)"
			}
			fmt.Fprintf(w, "  %d. %s%s\n", i+1, s.Name, mark)
		}
		fmt.Fprintln(w)
	}

	if len(report.Actions) == 0 {
		fmt.Fprintln(w, "Workspace already up to date.")
		return
	}

	verb := "Applied"
	if dryRun {
		verb = "Would apply"
	}
	fmt.Fprintf(w, "%s %d changes:\n", verb, len(report.Actions))
	for _, a := range report.Actions {
		fmt.Fprintf(w, "  %-9s %s\n", a.Kind, a.Path)
	}
}
