// Package features holds the catalog of known ECMAScript features and the
// per-node-type matchers that recognize their use in a normalized syntax tree.
//
// The catalog and the dispatch table are read-only, constructed once at
// process start, and shared by all checks.
package features

import (
	"strings"

	"github.com/Sumatoshi-tech/escheck/pkg/ast"
)

// Definition describes one named language or library feature: the smallest
// ECMAScript edition that supports it and the structural signature that
// identifies its use.
type Definition struct {
	Name       string
	MinVersion int
	Example    string
	Signature  Signature
}

// Signature is the structural condition identifying a feature. NodeType names
// the normalized node type the feature manifests as; the remaining fields are
// discriminating constraints interpreted by that node type's matcher. Zero
// values mean "no constraint".
type Signature struct {
	NodeType ast.Type

	// AltNodeType registers the same signature under a second node type for
	// features that manifest in two syntactic shapes.
	AltNodeType ast.Type

	// Kind constrains the declaration keyword of a VariableDeclaration or
	// the literal classification of a Literal.
	Kind string

	// Operator constrains the operator symbol of a BinaryOp or AssignOp.
	Operator string

	// Callee constrains a bare function-call or constructor shape: the call's
	// callee must be this identifier and the call must not be a member access.
	Callee string

	// Object and Property together constrain a static method-call shape
	// (receiver identifier and accessed property both exact). Property alone
	// constrains an instance method-call shape (any receiver, exact property).
	Object   string
	Property string

	// Token constrains the text of an Identifier node.
	Token string

	// RequiresSuperclass narrows a Class to one with a heritage clause.
	RequiresSuperclass bool

	// NoCatchBinding narrows a Try to one whose catch clause declares no
	// parameter.
	NoCatchBinding bool

	// Optional narrows a Member to an optional-chaining access.
	Optional bool

	// Async and Generator narrow a Function by its declared modifiers.
	Async     bool
	Generator bool

	// Await narrows a ForOf to the for-await-of form.
	Await bool

	// Flag requires a regular-expression Literal to carry this flag letter.
	Flag string

	// Private narrows a FieldDefinition to one declaring a private name.
	Private bool

	// RawContains requires the raw literal text to contain this substring.
	RawContains string
}

// matcherFunc reports whether a node satisfies a signature. Matchers are pure,
// stateless, order-insensitive, and must not panic for malformed nodes:
// missing optional fields degrade to "no match".
type matcherFunc func(n *ast.Node, sig Signature) bool

// matchers is the per-node-type dispatch table. Node types absent from the
// table fall through to matchNever.
//
//nolint:gochecknoglobals // Read-only dispatch table shared process-wide.
var matchers = map[ast.Type]matcherFunc{
	ast.TypeVariableDeclaration: matchVariableDeclaration,
	ast.TypeFunction:            matchFunction,
	ast.TypeArrowFunction:       matchAlways,
	ast.TypeClass:               matchClass,
	ast.TypeCall:                matchCall,
	ast.TypeNew:                 matchNew,
	ast.TypeMember:              matchMember,
	ast.TypeBinaryOp:            matchOperator,
	ast.TypeAssignOp:            matchOperator,
	ast.TypeTemplateLiteral:     matchAlways,
	ast.TypeSpreadElement:       matchAlways,
	ast.TypeRestElement:         matchAlways,
	ast.TypeAwait:               matchAlways,
	ast.TypeForOf:               matchForOf,
	ast.TypeTry:                 matchTry,
	ast.TypeLiteral:             matchLiteral,
	ast.TypeIdentifier:          matchIdentifier,
	ast.TypeImportCall:          matchAlways,
	ast.TypeImportDeclaration:   matchAlways,
	ast.TypeExportDeclaration:   matchAlways,
	ast.TypeFieldDefinition:     matchFieldDefinition,
	ast.TypeStaticBlock:         matchAlways,
}

// byNodeType indexes catalog definitions by their declared node type so the
// traversal only evaluates signatures that can possibly apply to a node.
//
//nolint:gochecknoglobals // Read-only index built once at init.
var byNodeType = buildIndex()

func buildIndex() map[ast.Type][]Definition {
	index := make(map[ast.Type][]Definition, len(Catalog))

	for _, def := range Catalog {
		index[def.Signature.NodeType] = append(index[def.Signature.NodeType], def)

		if alt := def.Signature.AltNodeType; alt != "" {
			index[alt] = append(index[alt], def)
		}
	}

	return index
}

// Match returns the catalog definitions whose signature is satisfied by the
// given node. Unknown node types never match.
func Match(n *ast.Node) []Definition {
	if n == nil {
		return nil
	}

	candidates := byNodeType[n.Type]
	if len(candidates) == 0 {
		return nil
	}

	matcher, ok := matchers[n.Type]
	if !ok {
		matcher = matchNever
	}

	var matched []Definition

	for _, def := range candidates {
		if matcher(n, def.Signature) {
			matched = append(matched, def)
		}
	}

	return matched
}

// Lookup returns the definition with the given name, if present.
func Lookup(name string) (Definition, bool) {
	for _, def := range Catalog {
		if def.Name == name {
			return def, true
		}
	}

	return Definition{}, false
}

// matchNever is the catch-all matcher for uncataloged node types.
func matchNever(_ *ast.Node, _ Signature) bool {
	return false
}

// matchAlways matches any node of the signature's declared type; the mere
// presence of the syntax category is the feature.
func matchAlways(_ *ast.Node, _ Signature) bool {
	return true
}

func matchVariableDeclaration(n *ast.Node, sig Signature) bool {
	if sig.Kind == "" {
		return true
	}

	return n.Prop(ast.PropKind) == sig.Kind
}

func matchFunction(n *ast.Node, sig Signature) bool {
	if sig.Async && !n.HasProp(ast.PropAsync) {
		return false
	}

	if sig.Generator && !n.HasProp(ast.PropGenerator) {
		return false
	}

	// A plain function is not a feature; every function signature in the
	// catalog constrains at least one modifier.
	return sig.Async || sig.Generator
}

func matchClass(n *ast.Node, sig Signature) bool {
	if sig.RequiresSuperclass {
		return n.Prop(ast.PropSuperclass) != ""
	}

	return true
}

// matchCall distinguishes three call shapes: a bare call (callee identifier,
// no member access), a static method call (exact receiver identifier plus
// exact property), and an instance method call (any receiver, exact
// property). A signature for one shape never matches another shape. An
// Optional signature instead matches any call made through optional chaining,
// whatever its callee shape.
func matchCall(n *ast.Node, sig Signature) bool {
	if sig.Optional {
		return n.HasProp(ast.PropOptional)
	}

	callee := n.Prop(ast.PropCallee)
	object := n.Prop(ast.PropObject)
	property := n.Prop(ast.PropProperty)

	switch {
	case sig.Callee != "":
		return callee == sig.Callee && object == "" && property == ""
	case sig.Object != "" && sig.Property != "":
		return object == sig.Object && property == sig.Property
	case sig.Property != "":
		return property == sig.Property
	default:
		return false
	}
}

func matchNew(n *ast.Node, sig Signature) bool {
	if sig.Callee == "" {
		return false
	}

	return n.Prop(ast.PropCallee) == sig.Callee
}

func matchMember(n *ast.Node, sig Signature) bool {
	if sig.Optional {
		return n.HasProp(ast.PropOptional)
	}

	if sig.Object != "" && sig.Property != "" {
		return n.Prop(ast.PropObject) == sig.Object && n.Prop(ast.PropProperty) == sig.Property
	}

	return false
}

func matchOperator(n *ast.Node, sig Signature) bool {
	if sig.Operator == "" {
		return false
	}

	return n.Prop(ast.PropOperator) == sig.Operator
}

func matchForOf(n *ast.Node, sig Signature) bool {
	if sig.Await {
		return n.HasProp(ast.PropAwait)
	}

	// The field-less signature covers the whole category: a for-await-of
	// loop is still a for-of loop.
	return true
}

func matchTry(n *ast.Node, sig Signature) bool {
	if !sig.NoCatchBinding {
		return false
	}

	return n.HasProp(ast.PropCatch) && !n.HasProp(ast.PropBinding)
}

func matchLiteral(n *ast.Node, sig Signature) bool {
	if sig.Kind != "" && n.Prop(ast.PropKind) != sig.Kind {
		return false
	}

	if sig.Flag != "" && !strings.Contains(n.Prop(ast.PropFlags), sig.Flag) {
		return false
	}

	if sig.RawContains != "" && !strings.Contains(n.Prop(ast.PropRaw), sig.RawContains) {
		return false
	}

	return sig.Kind != "" || sig.Flag != "" || sig.RawContains != ""
}

func matchIdentifier(n *ast.Node, sig Signature) bool {
	if sig.Token == "" {
		return false
	}

	return n.Token == sig.Token
}

func matchFieldDefinition(n *ast.Node, sig Signature) bool {
	if sig.Private {
		return n.HasProp(ast.PropPrivate)
	}

	return true
}
