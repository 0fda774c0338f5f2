// Package essentials applies the ng-essentials preset to an Angular workspace.
package essentials

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mamaar/ngessentials/pkg/analysis"
	"github.com/mamaar/ngessentials/pkg/templates"
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
	"github.com/mamaar/ngessentials/pkg/versions"
	"github.com/mamaar/ngessentials/pkg/workspace"
)

// SourceDir is the application source root of a generated workspace
const SourceDir = "src"

// Step is one tree transformation of a preset run. Skipped steps stay in the
// plan so every run reports the same sequence.
type Step struct {
	Name string
	Skip bool
	run  func(ctx context.Context, t *tree.Tree) error
}

// Engine builds and runs the preset pipeline.
type Engine struct {
	table     *versions.Table
	templates fs.FS
	parser    *analysis.Parser
	logger    *slog.Logger
}

// NewEngine creates an engine. A nil table or template set selects the
// built-in one.
func NewEngine(table *versions.Table, tmpl fs.FS, logger *slog.Logger) *Engine {
	if table == nil {
		table = versions.Default()
	}
	if tmpl == nil {
		tmpl = templates.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		table:     table,
		templates: tmpl,
		parser:    analysis.NewParser(logger),
		logger:    logger,
	}
}

// Versions returns the table the engine pins packages to
func (e *Engine) Versions() *versions.Table {
	return e.table
}

// Plan resolves the default application and its element prefix, then returns
// the ordered steps for opts. Plan does not modify t.
func (e *Engine) Plan(t *tree.Tree, opts types.Options) ([]Step, error) {
	app, err := workspace.DefaultProjectName(t)
	if err != nil {
		return nil, fmt.Errorf("resolve default project: %w", err)
	}
	prefix, err := workspace.ElementPrefix(t, app)
	if err != nil {
		return nil, fmt.Errorf("resolve element prefix: %w", err)
	}
	return e.steps(app, prefix, opts)
}

// Apply runs the preset against t. Nothing is staged when opts.FirstRun is
// false. The first failing step stops the run; steps before it stay staged.
func (e *Engine) Apply(ctx context.Context, t *tree.Tree, opts types.Options) (*types.Report, error) {
	report := &types.Report{RunID: uuid.NewString()}
	logger := e.logger.With("run_id", report.RunID)

	if !opts.FirstRun {
		report.Skipped = true
		logger.Info("not a first run, preset skipped")
		return report, nil
	}

	steps, err := e.Plan(t, opts)
	if err != nil {
		return report, err
	}

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Steps = append(report.Steps, types.StepReport{Name: s.Name, Skipped: s.Skip})
		if s.Skip {
			logger.Debug("step skipped", "step", s.Name)
			continue
		}
		logger.Debug("running step", "step", s.Name)
		if err := s.run(ctx, t); err != nil {
			logger.Error("step failed", "step", s.Name, "error", err)
			return report, fmt.Errorf("step %s: %w", s.Name, err)
		}
	}

	report.Actions = t.Actions()
	logger.Info("preset applied", "steps", len(report.Steps), "changes", len(report.Actions))
	return report, nil
}
