package analysis

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/mamaar/ngessentials/pkg/types"
)

const providersField = "providers"

// Leading line break plus indentation of a node, as written in the source.
var leadingIndent = regexp.MustCompile(`^\r?\n\s*`)

// ProviderInsertions returns the edits that list symbol in the providers of
// the @decorator({...}) metadata object and import it from importPath. The
// provider edit comes first. No edits are returned when symbol is already
// provided, when providers is not an array literal, or when the source has
// no such decorator.
func (p *Parser) ProviderInsertions(ctx context.Context, path string, content []byte, decorator, symbol, importPath string) ([]types.Edit, error) {
	src, err := p.Parse(ctx, path, content)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	metadata := findDecoratorMetadata(src, src.Root(), decorator)
	if metadata == nil {
		p.logger.Debug("no decorator metadata, nothing to register", "path", path, "decorator", decorator)
		return nil, nil
	}

	provider, ok := providerEdit(src, metadata, symbol)
	if !ok {
		return nil, nil
	}
	edits := []types.Edit{provider}
	if imp, ok := importEdit(src, symbol, importPath); ok {
		edits = append(edits, imp)
	}
	return edits, nil
}

// findDecoratorMetadata returns the object literal passed to the first
// @name(...) decorator in document order.
func findDecoratorMetadata(src *Source, n *sitter.Node, name string) *sitter.Node {
	if n.Type() == "decorator" {
		if call := firstNamedChild(n, "call_expression"); call != nil {
			fn := call.ChildByFieldName("function")
			args := call.ChildByFieldName("arguments")
			if fn != nil && args != nil && fn.Type() == "identifier" && src.Text(fn) == name {
				return firstNamedChild(args, "object")
			}
		}
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if found := findDecoratorMetadata(src, n.NamedChild(i), name); found != nil {
			return found
		}
	}
	return nil
}

func providerEdit(src *Source, metadata *sitter.Node, symbol string) (types.Edit, bool) {
	props := members(metadata)

	var field *sitter.Node
	for _, prop := range props {
		if prop.Type() != "pair" {
			continue
		}
		if key := prop.ChildByFieldName("key"); key != nil && propertyName(src, key) == providersField {
			field = prop
			break
		}
	}

	if field == nil {
		if len(props) == 0 {
			closing := metadata.Child(int(metadata.ChildCount()) - 1)
			return types.Edit{
				Kind:        types.Insert,
				Pos:         int(closing.StartByte()),
				Text:        fmt.Sprintf("  %s: [%s]\n", providersField, symbol),
				Description: "add providers field",
			}, true
		}
		last := props[len(props)-1]
		sep := " "
		if indent := leadingIndent.FindString(leadingTrivia(src, last)); indent != "" {
			sep = indent
		}
		return types.Edit{
			Kind:        types.Insert,
			Pos:         int(last.EndByte()),
			Text:        fmt.Sprintf(",%s%s: [%s]", sep, providersField, symbol),
			Description: "add providers field",
		}, true
	}

	value := field.ChildByFieldName("value")
	if value == nil {
		return types.Edit{}, false
	}
	// Only array literals can be extended in place.
	if value.Type() != "array" {
		return types.Edit{}, false
	}

	elements := members(value)
	if len(elements) == 0 {
		closing := value.Child(int(value.ChildCount()) - 1)
		return types.Edit{
			Kind:        types.Insert,
			Pos:         int(closing.StartByte()),
			Text:        symbol,
			Description: "add provider",
		}, true
	}
	for _, el := range elements {
		if src.Text(el) == symbol {
			return types.Edit{}, false
		}
	}
	last := elements[len(elements)-1]
	text := ", " + symbol
	if indent := leadingIndent.FindString(leadingTrivia(src, last)); indent != "" {
		text = "," + indent + symbol
	}
	return types.Edit{
		Kind:        types.Insert,
		Pos:         int(last.EndByte()),
		Text:        text,
		Description: "add provider",
	}, true
}

// members returns the named children of an object or array literal, comments
// excluded.
func members(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// leadingTrivia is the text between n and the token before it.
func leadingTrivia(src *Source, n *sitter.Node) string {
	prev := n.PrevSibling()
	if prev == nil {
		return ""
	}
	return string(src.Content[prev.EndByte():n.StartByte()])
}

func propertyName(src *Source, key *sitter.Node) string {
	if key.Type() == "string" {
		return stringValue(src, key)
	}
	return src.Text(key)
}

func stringValue(src *Source, n *sitter.Node) string {
	if frag := firstNamedChild(n, "string_fragment"); frag != nil {
		return src.Text(frag)
	}
	return strings.Trim(src.Text(n), `"'`)
}

func firstNamedChild(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c.Type() == typ {
			return c
		}
	}
	return nil
}
