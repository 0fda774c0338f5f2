// Package analysis parses TypeScript sources and computes the edits that
// register a provider in an Angular module.
package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/mamaar/ngessentials/pkg/types"
)

// Source is a parsed TypeScript file. Close releases the syntax tree.
type Source struct {
	Path    string
	Content []byte
	tree    *sitter.Tree
}

// Root returns the program node
func (s *Source) Root() *sitter.Node {
	return s.tree.RootNode()
}

// Text returns the source text covered by n.
func (s *Source) Text(n *sitter.Node) string {
	return n.Content(s.Content)
}

func (s *Source) Close() {
	s.tree.Close()
}

// Parser parses TypeScript with the tree-sitter grammar.
type Parser struct {
	logger *slog.Logger
}

func NewParser(logger *slog.Logger) *Parser {
	return &Parser{logger: logger}
}

// Parse builds a syntax tree for content. Syntax errors are tolerated; the
// tree then contains ERROR nodes and a debug line is logged.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*Source, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !utf8.Valid(content) {
		return nil, types.NewError(types.ParseError, path, "content is not valid UTF-8")
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(typescript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, types.WrapError(types.ParseError, path, fmt.Sprintf("failed to parse file: %v", err), err)
	}
	if tree.RootNode().HasError() {
		p.logger.Debug("source contains syntax errors", "path", path)
	}
	return &Source{Path: path, Content: content, tree: tree}, nil
}
