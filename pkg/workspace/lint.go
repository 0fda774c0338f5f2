package workspace

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/mamaar/ngessentials/pkg/jsonedit"
	"github.com/mamaar/ngessentials/pkg/tree"
	"github.com/mamaar/ngessentials/pkg/types"
)

var (
	lintExtends        = []string{"tslint:recommended", "tslint-angular", "tslint-config-prettier"}
	lintRulesDirectory = []string{"codelyzer"}
)

type importGroup struct {
	Name  string  `json:"name,omitempty"`
	Match *string `json:"match"`
	Order int     `json:"order"`
}

func group(name, match string, order int) importGroup {
	return importGroup{Name: name, Match: &match, Order: order}
}

// lintRules builds the rule set in the order it is written to tslint.json.
func lintRules(prefix string) *orderedmap.OrderedMap[string, any] {
	ordering := orderedmap.New[string, any]()
	ordering.Set("grouped-imports", true)
	ordering.Set("groups", []importGroup{
		group("angular", "^@angular", 1),
		group("scoped_paths", "^@", 3),
		group("node_modules", "^[a-zA-Z]", 2),
		group("parent", "^../", 4),
		// Name kept as published; existing projects may reference it.
		group("silbing", "^./", 5),
		{Match: nil, Order: 5},
	})

	rules := orderedmap.New[string, any]()
	rules.Set("directive-selector", []any{true, "attribute", prefix, "camelCase"})
	rules.Set("component-selector", []any{true, "element", prefix, "kebab-case"})
	rules.Set("no-console", []any{true, "debug", "info", "time", "timeEnd", "trace"})
	rules.Set("interface-name", false)
	rules.Set("max-classes-per-file", false)
	rules.Set("ordered-imports", []any{true, ordering})
	return rules
}

// EditTSLint replaces extends, rulesDirectory and rules in tslint.json with
// the preset's rule set. Custom rules under those keys are lost.
func EditTSLint(t *tree.Tree, prefix string) error {
	rules, err := json.Marshal(lintRules(prefix))
	if err != nil {
		return types.WrapError(types.MalformedDocument, types.TSLintJSON, "cannot encode lint rules", err)
	}
	return jsonedit.UpdateJSON(t, types.TSLintJSON, func(d *jsonedit.Document) error {
		if err := d.Set(lintExtends, "extends"); err != nil {
			return err
		}
		if err := d.Set(lintRulesDirectory, "rulesDirectory"); err != nil {
			return err
		}
		return d.SetRaw(rules, "rules")
	})
}

// EditTSConfig clears compilerOptions.paths and keeps every other option.
func EditTSConfig(t *tree.Tree) error {
	return jsonedit.UpdateJSON(t, types.TSConfigJSON, func(d *jsonedit.Document) error {
		if d.Has("compilerOptions") && !d.IsObject("compilerOptions") {
			if err := d.Set(map[string]any{}, "compilerOptions"); err != nil {
				return err
			}
		}
		if raw, ok := d.GetRaw("compilerOptions", "paths"); ok && string(raw) == "{}" {
			return nil
		}
		return d.Set(map[string]any{}, "compilerOptions", "paths")
	})
}
