package analysis

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mamaar/ngessentials/pkg/types"
)

type importDecl struct {
	node      *sitter.Node
	source    *sitter.Node
	path      string
	namespace bool
	defaultID *sitter.Node
	named     *sitter.Node
	names     []string
}

func collectImports(src *Source) []importDecl {
	root := src.Root()
	var out []importDecl
	for i := 0; i < int(root.NamedChildCount()); i++ {
		n := root.NamedChild(i)
		if n.Type() != "import_statement" {
			continue
		}
		decl := importDecl{node: n, source: n.ChildByFieldName("source")}
		if decl.source == nil {
			decl.source = firstNamedChild(n, "string")
		}
		if decl.source == nil {
			continue
		}
		decl.path = stringValue(src, decl.source)

		if clause := firstNamedChild(n, "import_clause"); clause != nil {
			for j := 0; j < int(clause.NamedChildCount()); j++ {
				c := clause.NamedChild(j)
				switch c.Type() {
				case "identifier":
					decl.defaultID = c
				case "namespace_import":
					decl.namespace = true
				case "named_imports":
					decl.named = c
					for _, spec := range members(c) {
						if spec.Type() != "import_specifier" {
							continue
						}
						name := spec.ChildByFieldName("alias")
						if name == nil {
							name = spec.ChildByFieldName("name")
						}
						if name != nil {
							decl.names = append(decl.names, src.Text(name))
						}
					}
				}
			}
		}
		out = append(out, decl)
	}
	return out
}

// importEdit returns the insertion that makes symbol importable from
// importPath, or false when it already is.
func importEdit(src *Source, symbol, importPath string) (types.Edit, bool) {
	imports := collectImports(src)

	for _, decl := range imports {
		if decl.path != importPath {
			continue
		}
		if decl.namespace {
			return types.Edit{}, false
		}
		for _, name := range decl.names {
			if name == symbol {
				return types.Edit{}, false
			}
		}
	}

	for _, decl := range imports {
		if decl.path != importPath {
			continue
		}
		if decl.named != nil {
			if specs := members(decl.named); len(specs) > 0 {
				return types.Edit{
					Kind:        types.Insert,
					Pos:         int(specs[len(specs)-1].EndByte()),
					Text:        ", " + symbol,
					Description: "extend import",
				}, true
			}
			closing := decl.named.Child(int(decl.named.ChildCount()) - 1)
			return types.Edit{
				Kind:        types.Insert,
				Pos:         int(closing.StartByte()),
				Text:        " " + symbol + " ",
				Description: "extend import",
			}, true
		}
		if decl.defaultID != nil {
			return types.Edit{
				Kind:        types.Insert,
				Pos:         int(decl.defaultID.EndByte()),
				Text:        fmt.Sprintf(", { %s }", symbol),
				Description: "extend import",
			}, true
		}
	}

	if len(imports) == 0 {
		return types.Edit{
			Kind:        types.Insert,
			Pos:         0,
			Text:        fmt.Sprintf("import { %s } from '%s';\n", symbol, importPath),
			Description: "add import",
		}, true
	}
	last := imports[len(imports)-1]
	return types.Edit{
		Kind:        types.Insert,
		Pos:         int(last.source.EndByte()),
		Text:        fmt.Sprintf(";\nimport { %s } from '%s'", symbol, importPath),
		Description: "add import",
	}, true
}
