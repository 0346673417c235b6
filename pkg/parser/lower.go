package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/Sumatoshi-tech/escheck/pkg/ast"
)

// Grammar node type names of the tree-sitter JavaScript grammar that lower to
// normalized types. Everything else keeps its raw grammar type and is ignored
// by the catalog.
const (
	tsProgram              = "program"
	tsVariableDeclaration  = "variable_declaration"
	tsLexicalDeclaration   = "lexical_declaration"
	tsFunctionDeclaration  = "function_declaration"
	tsFunctionExpression   = "function_expression"
	tsFunction             = "function"
	tsGeneratorFunction    = "generator_function"
	tsGeneratorDeclaration = "generator_function_declaration"
	tsMethodDefinition     = "method_definition"
	tsArrowFunction        = "arrow_function"
	tsClassDeclaration     = "class_declaration"
	tsClassExpression      = "class"
	tsClassHeritage        = "class_heritage"
	tsFieldDefinition      = "field_definition"
	tsClassStaticBlock     = "class_static_block"
	tsCallExpression       = "call_expression"
	tsNewExpression        = "new_expression"
	tsMemberExpression     = "member_expression"
	tsSubscriptExpression  = "subscript_expression"
	tsBinaryExpression     = "binary_expression"
	tsAugmentedAssignment  = "augmented_assignment_expression"
	tsTemplateString       = "template_string"
	tsSpreadElement        = "spread_element"
	tsRestPattern          = "rest_pattern"
	tsAwaitExpression      = "await_expression"
	tsForInStatement       = "for_in_statement"
	tsTryStatement         = "try_statement"
	tsCatchClause          = "catch_clause"
	tsNumber               = "number"
	tsRegex                = "regex"
	tsString               = "string"
	tsTrue                 = "true"
	tsFalse                = "false"
	tsNull                 = "null"
	tsIdentifier           = "identifier"
	tsImportStatement      = "import_statement"
	tsExportStatement      = "export_statement"
	tsImport               = "import"
	tsAsync                = "async"
	tsStar                 = "*"
	tsStatic               = "static"
	tsAwaitKeyword         = "await"
	tsOptionalChain        = "optional_chain"
	tsPrivatePropertyID    = "private_property_identifier"
)

// Grammar field names.
const (
	fieldFunction    = "function"
	fieldConstructor = "constructor"
	fieldObject      = "object"
	fieldProperty    = "property"
	fieldOperator    = "operator"
	fieldHandler     = "handler"
	fieldParameter   = "parameter"
	fieldFlags       = "flags"
)

// lowerFrame pairs a grammar node with the normalized parent it lowers under.
type lowerFrame struct {
	ts     *sitter.Node
	parent *ast.Node
}

// lower converts a tree-sitter concrete syntax tree into the normalized
// pkg/ast tree. The walk uses an explicit work-list so deeply nested source
// does not exhaust the call stack.
func lower(root *sitter.Node, source []byte) *ast.Node {
	out := newASTNode(root, source)

	stack := make([]lowerFrame, 0, len(source)/16+1)
	stack = pushNamedChildrenReversed(stack, root, out)

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		lowered := newASTNode(frame.ts, source)
		frame.parent.AddChild(lowered)

		stack = pushNamedChildrenReversed(stack, frame.ts, lowered)
	}

	return out
}

func pushNamedChildrenReversed(stack []lowerFrame, tsNode *sitter.Node, parent *ast.Node) []lowerFrame {
	for idx := int(tsNode.NamedChildCount()) - 1; idx >= 0; idx-- {
		child := tsNode.NamedChild(idx)
		if child == nil {
			continue
		}

		stack = append(stack, lowerFrame{ts: child, parent: parent})
	}

	return stack
}

// newASTNode builds the normalized node for one grammar node, consulting
// children and fields locally where the normalized form needs discriminating
// properties.
//
//nolint:cyclop,funlen // Flat dispatch over the grammar vocabulary.
func newASTNode(tsNode *sitter.Node, source []byte) *ast.Node {
	out := &ast.Node{
		Type: ast.Type(tsNode.Type()),
		Pos:  positions(tsNode),
	}

	switch tsNode.Type() {
	case tsProgram:
		out.Type = ast.TypeProgram
	case tsVariableDeclaration:
		out.Type = ast.TypeVariableDeclaration
		out.SetProp(ast.PropKind, "var")
	case tsLexicalDeclaration:
		out.Type = ast.TypeVariableDeclaration
		out.SetProp(ast.PropKind, declarationKeyword(tsNode, source))
	case tsFunctionDeclaration, tsFunctionExpression, tsFunction, tsMethodDefinition:
		out.Type = ast.TypeFunction
		applyFunctionModifiers(out, tsNode)
	case tsGeneratorFunction, tsGeneratorDeclaration:
		out.Type = ast.TypeFunction
		out.SetProp(ast.PropGenerator, "true")
		applyFunctionModifiers(out, tsNode)
	case tsArrowFunction:
		out.Type = ast.TypeArrowFunction
		applyFunctionModifiers(out, tsNode)
	case tsClassDeclaration, tsClassExpression:
		out.Type = ast.TypeClass
		applySuperclass(out, tsNode, source)
	case tsFieldDefinition:
		out.Type = ast.TypeFieldDefinition
		applyFieldModifiers(out, tsNode)
	case tsClassStaticBlock:
		out.Type = ast.TypeStaticBlock
	case tsCallExpression:
		lowerCall(out, tsNode, source)
	case tsNewExpression:
		out.Type = ast.TypeNew
		applyConstructorCallee(out, tsNode, source)
	case tsMemberExpression, tsSubscriptExpression:
		out.Type = ast.TypeMember
		applyMemberShape(out, tsNode, source)
	case tsBinaryExpression:
		out.Type = ast.TypeBinaryOp
		out.SetProp(ast.PropOperator, operatorText(tsNode, source))
	case tsAugmentedAssignment:
		out.Type = ast.TypeAssignOp
		out.SetProp(ast.PropOperator, operatorText(tsNode, source))
	case tsTemplateString:
		out.Type = ast.TypeTemplateLiteral
	case tsSpreadElement:
		out.Type = ast.TypeSpreadElement
	case tsRestPattern:
		out.Type = ast.TypeRestElement
	case tsAwaitExpression:
		out.Type = ast.TypeAwait
	case tsForInStatement:
		lowerForStatement(out, tsNode, source)
	case tsTryStatement:
		out.Type = ast.TypeTry
		applyCatchShape(out, tsNode)
	case tsNumber:
		out.Type = ast.TypeLiteral
		raw := tsNode.Content(source)
		out.SetProp(ast.PropKind, classifyNumber(raw))
		out.SetProp(ast.PropRaw, raw)
		out.Token = raw
	case tsRegex:
		out.Type = ast.TypeLiteral
		out.SetProp(ast.PropKind, ast.LiteralRegexp)
		applyRegexFlags(out, tsNode, source)
	case tsString:
		out.Type = ast.TypeLiteral
		out.SetProp(ast.PropKind, ast.LiteralString)
	case tsTrue, tsFalse:
		out.Type = ast.TypeLiteral
		out.SetProp(ast.PropKind, ast.LiteralBoolean)
		out.Token = tsNode.Type()
	case tsNull:
		out.Type = ast.TypeLiteral
		out.SetProp(ast.PropKind, ast.LiteralNull)
	case tsIdentifier:
		out.Type = ast.TypeIdentifier
		out.Token = tsNode.Content(source)
	case tsImportStatement:
		out.Type = ast.TypeImportDeclaration
	case tsExportStatement:
		out.Type = ast.TypeExportDeclaration
	}

	return out
}

func positions(tsNode *sitter.Node) *ast.Positions {
	start := tsNode.StartPoint()
	end := tsNode.EndPoint()

	return &ast.Positions{
		StartLine: uint(start.Row) + 1,
		StartCol:  uint(start.Column) + 1,
		EndLine:   uint(end.Row) + 1,
		EndCol:    uint(end.Column) + 1,
	}
}

// declarationKeyword returns the leading keyword of a lexical declaration
// (let or const).
func declarationKeyword(tsNode *sitter.Node, source []byte) string {
	first := tsNode.Child(0)
	if first == nil {
		return ""
	}

	return first.Content(source)
}

// applyFunctionModifiers marks async and generator modifiers, which the
// grammar represents as anonymous keyword tokens among the children.
func applyFunctionModifiers(out *ast.Node, tsNode *sitter.Node) {
	for idx := 0; idx < int(tsNode.ChildCount()); idx++ {
		child := tsNode.Child(idx)
		if child == nil {
			continue
		}

		switch child.Type() {
		case tsAsync:
			out.SetProp(ast.PropAsync, "true")
		case tsStar:
			out.SetProp(ast.PropGenerator, "true")
		}
	}
}

func applySuperclass(out *ast.Node, tsNode *sitter.Node, source []byte) {
	for idx := 0; idx < int(tsNode.NamedChildCount()); idx++ {
		child := tsNode.NamedChild(idx)
		if child == nil || child.Type() != tsClassHeritage {
			continue
		}

		if super := child.NamedChild(0); super != nil {
			out.SetProp(ast.PropSuperclass, super.Content(source))
		}

		return
	}
}

func applyFieldModifiers(out *ast.Node, tsNode *sitter.Node) {
	property := tsNode.ChildByFieldName(fieldProperty)
	if property != nil && property.Type() == tsPrivatePropertyID {
		out.SetProp(ast.PropPrivate, "true")
	}

	for idx := 0; idx < int(tsNode.ChildCount()); idx++ {
		child := tsNode.Child(idx)
		if child != nil && child.Type() == tsStatic {
			out.SetProp(ast.PropStatic, "true")
		}
	}
}

// lowerCall classifies a call expression into the bare-call, method-call, or
// dynamic-import shape.
func lowerCall(out *ast.Node, tsNode *sitter.Node, source []byte) {
	callee := tsNode.ChildByFieldName(fieldFunction)
	if callee == nil {
		out.Type = ast.TypeCall

		return
	}

	switch callee.Type() {
	case tsImport:
		out.Type = ast.TypeImportCall
	case tsIdentifier:
		out.Type = ast.TypeCall
		out.SetProp(ast.PropCallee, callee.Content(source))
	case tsMemberExpression:
		out.Type = ast.TypeCall
		applyMemberShape(out, callee, source)
	default:
		out.Type = ast.TypeCall
	}

	if hasOptionalChain(tsNode) {
		out.SetProp(ast.PropOptional, "true")
	}
}

func applyConstructorCallee(out *ast.Node, tsNode *sitter.Node, source []byte) {
	ctor := tsNode.ChildByFieldName(fieldConstructor)
	if ctor != nil && ctor.Type() == tsIdentifier {
		out.SetProp(ast.PropCallee, ctor.Content(source))
	}
}

// applyMemberShape records the receiver identifier (when the receiver is a
// plain identifier), the accessed property name, and optional chaining.
func applyMemberShape(out *ast.Node, member *sitter.Node, source []byte) {
	if object := member.ChildByFieldName(fieldObject); object != nil && object.Type() == tsIdentifier {
		out.SetProp(ast.PropObject, object.Content(source))
	}

	if property := member.ChildByFieldName(fieldProperty); property != nil {
		out.SetProp(ast.PropProperty, property.Content(source))
	}

	if hasOptionalChain(member) {
		out.SetProp(ast.PropOptional, "true")
	}
}

func hasOptionalChain(tsNode *sitter.Node) bool {
	for idx := 0; idx < int(tsNode.ChildCount()); idx++ {
		child := tsNode.Child(idx)
		if child != nil && child.Type() == tsOptionalChain {
			return true
		}
	}

	return false
}

// lowerForStatement separates for-of (including for-await-of) from for-in.
// Both share one grammar node type discriminated by the operator field.
func lowerForStatement(out *ast.Node, tsNode *sitter.Node, source []byte) {
	operator := tsNode.ChildByFieldName(fieldOperator)
	if operator == nil || operator.Content(source) != "of" {
		return
	}

	out.Type = ast.TypeForOf

	for idx := 0; idx < int(tsNode.ChildCount()); idx++ {
		child := tsNode.Child(idx)
		if child != nil && child.Type() == tsAwaitKeyword {
			out.SetProp(ast.PropAwait, "true")

			return
		}
	}
}

// applyCatchShape records whether the try statement has a catch clause and
// whether that clause declares a parameter.
func applyCatchShape(out *ast.Node, tsNode *sitter.Node) {
	handler := tsNode.ChildByFieldName(fieldHandler)
	if handler == nil {
		handler = namedChildOfType(tsNode, tsCatchClause)
	}

	if handler == nil {
		return
	}

	out.SetProp(ast.PropCatch, "true")

	if handler.ChildByFieldName(fieldParameter) != nil {
		out.SetProp(ast.PropBinding, "true")
	}
}

func namedChildOfType(tsNode *sitter.Node, wanted string) *sitter.Node {
	for idx := 0; idx < int(tsNode.NamedChildCount()); idx++ {
		child := tsNode.NamedChild(idx)
		if child != nil && child.Type() == wanted {
			return child
		}
	}

	return nil
}

func operatorText(tsNode *sitter.Node, source []byte) string {
	operator := tsNode.ChildByFieldName(fieldOperator)
	if operator == nil {
		return ""
	}

	return operator.Content(source)
}

func applyRegexFlags(out *ast.Node, tsNode *sitter.Node, source []byte) {
	flags := tsNode.ChildByFieldName(fieldFlags)
	if flags != nil {
		out.SetProp(ast.PropFlags, flags.Content(source))
	}
}

// classifyNumber classifies a numeric literal token. Only the explicit n
// suffix denotes a big integer: a suffix-less literal always evaluates to a
// Number at runtime, however large its written magnitude.
func classifyNumber(raw string) string {
	if strings.HasSuffix(strings.ToLower(raw), "n") {
		return ast.LiteralBigInt
	}

	return ast.LiteralNumber
}
