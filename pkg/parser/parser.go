// Package parser is the boundary between raw JavaScript source text and the
// normalized syntax tree the feature-detection engine consumes. It drives a
// tree-sitter JavaScript grammar and lowers the concrete syntax tree into the
// pkg/ast node vocabulary the feature catalog is written against.
package parser

import (
	"bytes"
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/Sumatoshi-tech/escheck/pkg/ast"
)

// Source type values for Options.SourceType.
const (
	SourceTypeScript = "script"
	SourceTypeModule = "module"
)

// Options configures a Parser.
type Options struct {
	// SourceType selects script or module parsing mode. In script mode,
	// import and export declarations are rejected as parse errors.
	SourceType string

	// AllowHashBang permits a leading #! line.
	AllowHashBang bool
}

// ParseError reports source text that is not valid for the requested syntax
// mode. It is surfaced per file and never aborts checking of other files.
type ParseError struct {
	File string
	Msg  string
	Line uint
	Col  uint
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Col, e.Msg)
}

// Parser parses JavaScript source into normalized syntax trees. A Parser is
// safe for concurrent use; each Parse call drives its own tree-sitter parser
// instance.
type Parser struct {
	opts Options
}

// NewParser creates a Parser with the given options. An empty SourceType
// defaults to script mode.
func NewParser(opts Options) *Parser {
	if opts.SourceType == "" {
		opts.SourceType = SourceTypeScript
	}

	return &Parser{opts: opts}
}

// hashBangPrefix marks an interpreter line at the start of a file.
var hashBangPrefix = []byte("#!") //nolint:gochecknoglobals // Constant byte prefix.

// Parse parses source and returns the normalized tree root.
func (p *Parser) Parse(ctx context.Context, filename string, source []byte) (*ast.Node, error) {
	if !p.opts.AllowHashBang && bytes.HasPrefix(source, hashBangPrefix) {
		return nil, &ParseError{
			File: filename,
			Line: 1,
			Col:  1,
			Msg:  "unexpected hash bang line (enable allow-hash-bang to accept it)",
		}
	}

	tsParser := sitter.NewParser()
	tsParser.SetLanguage(javascript.GetLanguage())

	tree, err := tsParser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()

	if root.HasError() {
		return nil, syntaxError(filename, root)
	}

	lowered := lower(root, source)

	if p.opts.SourceType == SourceTypeScript {
		if offending := firstModuleSyntax(lowered); offending != nil {
			return nil, moduleSyntaxError(filename, offending)
		}
	}

	return lowered, nil
}

// syntaxError locates the first ERROR or missing node and builds a ParseError
// from its position.
func syntaxError(filename string, root *sitter.Node) *ParseError {
	bad := firstErrorNode(root)
	if bad == nil {
		bad = root
	}

	point := bad.StartPoint()

	return &ParseError{
		File: filename,
		Line: uint(point.Row) + 1,
		Col:  uint(point.Column) + 1,
		Msg:  "syntax error",
	}
}

// firstErrorNode finds the first ERROR or missing node in pre-order.
func firstErrorNode(root *sitter.Node) *sitter.Node {
	stack := []*sitter.Node{root}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if curr.Type() == "ERROR" || curr.IsMissing() {
			return curr
		}

		for idx := int(curr.ChildCount()) - 1; idx >= 0; idx-- {
			if child := curr.Child(idx); child != nil {
				stack = append(stack, child)
			}
		}
	}

	return nil
}

// firstModuleSyntax returns the first import or export declaration in the
// lowered tree, if any.
func firstModuleSyntax(root *ast.Node) *ast.Node {
	found := root.Find(func(n *ast.Node) bool {
		return n.Type == ast.TypeImportDeclaration || n.Type == ast.TypeExportDeclaration
	})

	if len(found) == 0 {
		return nil
	}

	return found[0]
}

func moduleSyntaxError(filename string, n *ast.Node) *ParseError {
	perr := &ParseError{
		File: filename,
		Line: 1,
		Col:  1,
		Msg:  "import and export declarations are only valid in module mode",
	}

	if n.Pos != nil {
		perr.Line = n.Pos.StartLine
		perr.Col = n.Pos.StartCol
	}

	return perr
}
