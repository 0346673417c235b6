// Package ast provides the normalized syntax-tree node structure produced by
// the parser and consumed by the feature-detection engine, together with
// work-list based traversal operations.
package ast

import (
	"strconv"
	"strings"
)

// Type represents a normalized node type label.
type Type string

// Normalized node types the feature catalog is written against. Nodes whose
// grammar type has no normalized form keep their raw grammar type string and
// never match any catalog entry.
const (
	TypeProgram             Type = "Program"
	TypeVariableDeclaration Type = "VariableDeclaration"
	TypeFunction            Type = "Function"
	TypeArrowFunction       Type = "ArrowFunction"
	TypeClass               Type = "Class"
	TypeCall                Type = "Call"
	TypeNew                 Type = "New"
	TypeMember              Type = "Member"
	TypeBinaryOp            Type = "BinaryOp"
	TypeAssignOp            Type = "AssignOp"
	TypeTemplateLiteral     Type = "TemplateLiteral"
	TypeSpreadElement       Type = "SpreadElement"
	TypeRestElement         Type = "RestElement"
	TypeAwait               Type = "Await"
	TypeForOf               Type = "ForOf"
	TypeTry                 Type = "Try"
	TypeLiteral             Type = "Literal"
	TypeIdentifier          Type = "Identifier"
	TypeImportCall          Type = "ImportCall"
	TypeImportDeclaration   Type = "ImportDeclaration"
	TypeExportDeclaration   Type = "ExportDeclaration"
	TypeFieldDefinition     Type = "FieldDefinition"
	TypeStaticBlock         Type = "StaticBlock"
)

// Property keys carried in Node.Props. Values are strings; boolean properties
// use "true" and are simply absent when false.
const (
	PropKind       = "kind"       // declaration keyword or literal classification
	PropOperator   = "operator"   // binary/assignment operator symbol
	PropCallee     = "callee"     // bare identifier callee of a call/new
	PropObject     = "object"     // receiver identifier of a member access
	PropProperty   = "property"   // accessed property name of a member access
	PropOptional   = "optional"   // member access/call uses optional chaining
	PropAsync      = "async"      // function declared async
	PropGenerator  = "generator"  // function declared as generator
	PropSuperclass = "superclass" // class heritage identifier
	PropAwait      = "await"      // for-await-of loop
	PropCatch      = "catch"      // try statement has a catch clause
	PropBinding    = "binding"    // catch clause declares a parameter
	PropFlags      = "flags"      // regular expression flags
	PropRaw        = "raw"        // raw literal text
	PropPrivate    = "private"    // class member uses a private name
	PropStatic     = "static"     // class member declared static
)

// Literal classification values stored under PropKind on TypeLiteral nodes.
const (
	LiteralString  = "string"
	LiteralNumber  = "number"
	LiteralBigInt  = "bigint"
	LiteralRegexp  = "regexp"
	LiteralBoolean = "boolean"
	LiteralNull    = "null"
)

// Positions represents 1-based line/column offsets for a node.
type Positions struct {
	StartLine uint
	StartCol  uint
	EndLine   uint
	EndCol    uint
}

// Node is the normalized syntax-tree node.
//
// Fields:
//
//	Type: normalized node type, or the raw grammar type for uncataloged nodes.
//	Token: source text for leaf nodes (identifier names, literal text).
//	Props: discriminating properties (operator, callee, declaration kind, ...).
//	Pos: source position info (optional).
//	Children: child nodes (ordered).
type Node struct {
	Token    string
	Type     Type
	Props    map[string]string
	Pos      *Positions
	Children []*Node
}

// initial work-list capacity for traversals.
const defaultStackCap = 64

// Prop returns the named property value, or "" when absent or when the node
// carries no properties at all.
func (n *Node) Prop(key string) string {
	if n == nil || n.Props == nil {
		return ""
	}

	return n.Props[key]
}

// HasProp reports whether the named boolean property is set to "true".
func (n *Node) HasProp(key string) bool {
	return n.Prop(key) == "true"
}

// SetProp sets a property, allocating the map on first use.
func (n *Node) SetProp(key, value string) {
	if n.Props == nil {
		n.Props = make(map[string]string)
	}

	n.Props[key] = value
}

// AddChild appends a child node to n.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Walk visits every node reachable from n exactly once in pre-order using an
// explicit work-list, so arbitrarily deep trees do not exhaust the call stack.
// A nil receiver is a no-op.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}

	stack := make([]*Node, 0, defaultStackCap)
	stack = append(stack, n)

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if curr == nil {
			continue
		}

		fn(curr)

		stack = pushReversedChildren(curr, stack)
	}
}

// Find returns all nodes in the tree (including root) for which
// predicate(node) is true. Traversal is pre-order. Returns nil if n is nil.
func (n *Node) Find(predicate func(*Node) bool) []*Node {
	var result []*Node

	n.Walk(func(curr *Node) {
		if predicate(curr) {
			result = append(result, curr)
		}
	})

	return result
}

// pushReversedChildren pushes children onto the stack in reverse order so the
// pre-order visit sees them left to right.
func pushReversedChildren(n *Node, stack []*Node) []*Node {
	for idx := len(n.Children) - 1; idx >= 0; idx-- {
		stack = append(stack, n.Children[idx])
	}

	return stack
}

// String returns a concise representation of the node for diagnostics.
func (n *Node) String() string {
	if n == nil {
		return "nil"
	}

	var buf strings.Builder

	buf.WriteString("Node{Type:")
	buf.WriteString(string(n.Type))

	if n.Token != "" {
		buf.WriteString(",Token:")
		buf.WriteString(n.Token)
	}

	if len(n.Props) > 0 {
		buf.WriteString(",Props:")
		buf.WriteString(strconv.Itoa(len(n.Props)))
	}

	if len(n.Children) > 0 {
		buf.WriteString(",Children:")
		buf.WriteString(strconv.Itoa(len(n.Children)))
	}

	buf.WriteString("}")

	return buf.String()
}
