package parser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/escheck/pkg/ast"
	"github.com/Sumatoshi-tech/escheck/pkg/parser"
)

// parse lowers one source snippet with the given options, failing the test on
// any parse error.
func parse(t *testing.T, opts parser.Options, source string) *ast.Node {
	t.Helper()

	root, err := parser.NewParser(opts).Parse(context.Background(), "test.js", []byte(source))
	require.NoError(t, err)
	require.NotNil(t, root)

	return root
}

// firstOfType returns the first node of the given normalized type, failing the
// test when none exists.
func firstOfType(t *testing.T, root *ast.Node, nodeType ast.Type) *ast.Node {
	t.Helper()

	found := root.Find(func(n *ast.Node) bool { return n.Type == nodeType })
	require.NotEmpty(t, found, "no %s node in tree", nodeType)

	return found[0]
}

func TestParseProgramRoot(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "var x = 1;\n")
	assert.Equal(t, ast.TypeProgram, root.Type)
	assert.NotEmpty(t, root.Children)
}

func TestParseSyntaxError(t *testing.T) {
	t.Parallel()

	_, err := parser.NewParser(parser.Options{}).Parse(context.Background(), "bad.js", []byte("var x = 1;\nconst = ;\n"))
	require.Error(t, err)

	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "bad.js", parseErr.File)
	assert.Equal(t, uint(2), parseErr.Line)
	assert.Contains(t, parseErr.Error(), "bad.js:2:")
}

func TestParseHashBang(t *testing.T) {
	t.Parallel()

	source := "#!/usr/bin/env node\nvar x = 1;\n"

	_, err := parser.NewParser(parser.Options{}).Parse(context.Background(), "cli.js", []byte(source))

	var parseErr *parser.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, uint(1), parseErr.Line)

	root := parse(t, parser.Options{AllowHashBang: true}, source)
	assert.Equal(t, ast.TypeProgram, root.Type)
}

func TestParseScriptModeRejectsModuleSyntax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
	}{
		{"import declaration", "import x from 'mod';\n"},
		{"export declaration", "export const x = 1;\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parser.NewParser(parser.Options{SourceType: parser.SourceTypeScript}).
				Parse(context.Background(), "mod.js", []byte(tt.source))

			var parseErr *parser.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Contains(t, parseErr.Msg, "module mode")
		})
	}
}

func TestParseModuleModeAcceptsModuleSyntax(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{SourceType: parser.SourceTypeModule},
		"import x from 'mod';\nexport const y = x;\n")

	firstOfType(t, root, ast.TypeImportDeclaration)
	firstOfType(t, root, ast.TypeExportDeclaration)
}

func TestLowerDeclarationKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		kind   string
	}{
		{"var", "var a = 1;", "var"},
		{"let", "let a = 1;", "let"},
		{"const", "const a = 1;", "const"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := parse(t, parser.Options{}, tt.source)
			decl := firstOfType(t, root, ast.TypeVariableDeclaration)
			assert.Equal(t, tt.kind, decl.Prop(ast.PropKind))
		})
	}
}

func TestLowerFunctionModifiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		source    string
		async     bool
		generator bool
	}{
		{"plain", "function f() {}", false, false},
		{"async", "async function f() {}", true, false},
		{"generator", "function* f() { yield 1; }", false, true},
		{"async generator", "async function* f() { yield 1; }", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := parse(t, parser.Options{}, tt.source)
			fn := firstOfType(t, root, ast.TypeFunction)
			assert.Equal(t, tt.async, fn.HasProp(ast.PropAsync))
			assert.Equal(t, tt.generator, fn.HasProp(ast.PropGenerator))
		})
	}
}

func TestLowerArrowFunction(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "var f = async () => 1;")
	arrow := firstOfType(t, root, ast.TypeArrowFunction)
	assert.True(t, arrow.HasProp(ast.PropAsync))
}

func TestLowerClassHeritage(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "class C extends Base {}")
	class := firstOfType(t, root, ast.TypeClass)
	assert.Equal(t, "Base", class.Prop(ast.PropSuperclass))

	root = parse(t, parser.Options{}, "class C {}")
	class = firstOfType(t, root, ast.TypeClass)
	assert.Empty(t, class.Prop(ast.PropSuperclass))
}

func TestLowerClassMembers(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "class C { x = 1; #y = 2; static #z = 3; static { init(); } }")

	fields := root.Find(func(n *ast.Node) bool { return n.Type == ast.TypeFieldDefinition })
	require.Len(t, fields, 3)

	assert.False(t, fields[0].HasProp(ast.PropPrivate))
	assert.True(t, fields[1].HasProp(ast.PropPrivate))
	assert.True(t, fields[2].HasProp(ast.PropPrivate))
	assert.True(t, fields[2].HasProp(ast.PropStatic))

	firstOfType(t, root, ast.TypeStaticBlock)
}

func TestLowerCallShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		callee   string
		object   string
		property string
	}{
		{"bare call", "Symbol('d');", "Symbol", "", ""},
		{"static method", "Object.assign({}, s);", "", "Object", "assign"},
		{"instance method", "xs.includes(x);", "", "xs", "includes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := parse(t, parser.Options{}, tt.source)
			call := firstOfType(t, root, ast.TypeCall)
			assert.Equal(t, tt.callee, call.Prop(ast.PropCallee))
			assert.Equal(t, tt.object, call.Prop(ast.PropObject))
			assert.Equal(t, tt.property, call.Prop(ast.PropProperty))
		})
	}
}

func TestLowerChainedCallHasNoReceiverIdentifier(t *testing.T) {
	t.Parallel()

	// The receiver of the outer call is itself a call, not a plain
	// identifier, so no object property is recorded.
	root := parse(t, parser.Options{}, "f().includes(x);")
	calls := root.Find(func(n *ast.Node) bool {
		return n.Type == ast.TypeCall && n.Prop(ast.PropProperty) == "includes"
	})
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Prop(ast.PropObject))
}

func TestLowerDynamicImport(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "import('./mod.js');")
	firstOfType(t, root, ast.TypeImportCall)
}

func TestLowerNewExpression(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "new WeakRef(obj);")
	n := firstOfType(t, root, ast.TypeNew)
	assert.Equal(t, "WeakRef", n.Prop(ast.PropCallee))
}

func TestLowerOperators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		nodeType ast.Type
		operator string
	}{
		{"nullish coalescing", "var x = a ?? b;", ast.TypeBinaryOp, "??"},
		{"exponent", "var x = a ** b;", ast.TypeBinaryOp, "**"},
		{"nullish assignment", "a ??= b;", ast.TypeAssignOp, "??="},
		{"logical or assignment", "a ||= b;", ast.TypeAssignOp, "||="},
		{"exponent assignment", "a **= b;", ast.TypeAssignOp, "**="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := parse(t, parser.Options{}, tt.source)
			op := firstOfType(t, root, tt.nodeType)
			assert.Equal(t, tt.operator, op.Prop(ast.PropOperator))
		})
	}
}

func TestLowerOptionalChaining(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "var x = obj?.prop;")
	member := firstOfType(t, root, ast.TypeMember)
	assert.True(t, member.HasProp(ast.PropOptional))

	root = parse(t, parser.Options{}, "var x = obj.prop;")
	member = firstOfType(t, root, ast.TypeMember)
	assert.False(t, member.HasProp(ast.PropOptional))
}

func TestLowerOptionalCall(t *testing.T) {
	t.Parallel()

	// The chain can sit on the call itself rather than a member access.
	root := parse(t, parser.Options{}, "a?.();")
	call := firstOfType(t, root, ast.TypeCall)
	assert.True(t, call.HasProp(ast.PropOptional))

	root = parse(t, parser.Options{}, "a.b?.();")
	call = firstOfType(t, root, ast.TypeCall)
	assert.True(t, call.HasProp(ast.PropOptional))

	root = parse(t, parser.Options{}, "a.b();")
	call = firstOfType(t, root, ast.TypeCall)
	assert.False(t, call.HasProp(ast.PropOptional))
}

func TestLowerForStatements(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "for (var x of xs) {}")
	loop := firstOfType(t, root, ast.TypeForOf)
	assert.False(t, loop.HasProp(ast.PropAwait))

	root = parse(t, parser.Options{}, "async function f() { for await (var x of xs) {} }")
	loop = firstOfType(t, root, ast.TypeForOf)
	assert.True(t, loop.HasProp(ast.PropAwait))

	// for-in shares the grammar node but must not lower to ForOf.
	root = parse(t, parser.Options{}, "for (var k in obj) {}")
	found := root.Find(func(n *ast.Node) bool { return n.Type == ast.TypeForOf })
	assert.Empty(t, found)
}

func TestLowerCatchShapes(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "try { f(); } catch { g(); }")
	try := firstOfType(t, root, ast.TypeTry)
	assert.True(t, try.HasProp(ast.PropCatch))
	assert.False(t, try.HasProp(ast.PropBinding))

	root = parse(t, parser.Options{}, "try { f(); } catch (e) { g(e); }")
	try = firstOfType(t, root, ast.TypeTry)
	assert.True(t, try.HasProp(ast.PropCatch))
	assert.True(t, try.HasProp(ast.PropBinding))

	root = parse(t, parser.Options{}, "try { f(); } finally { g(); }")
	try = firstOfType(t, root, ast.TypeTry)
	assert.False(t, try.HasProp(ast.PropCatch))
}

func TestLowerNumericLiterals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		kind   string
	}{
		{"plain integer", "var n = 42;", ast.LiteralNumber},
		{"float", "var n = 4.2;", ast.LiteralNumber},
		{"separators stay number", "var n = 1_000_000;", ast.LiteralNumber},
		{"bigint suffix", "var n = 123n;", ast.LiteralBigInt},
		{"hex bigint suffix", "var n = 0xFFn;", ast.LiteralBigInt},
		{"max safe integer is number", "var n = 9007199254740991;", ast.LiteralNumber},
		{"large literal without suffix stays number", "var n = 9007199254740993;", ast.LiteralNumber},
		{"large hex without suffix stays number", "var n = 0x20000000000001;", ast.LiteralNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := parse(t, parser.Options{}, tt.source)
			lit := firstOfType(t, root, ast.TypeLiteral)
			assert.Equal(t, tt.kind, lit.Prop(ast.PropKind))
		})
	}
}

func TestLowerNumericSeparatorRaw(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "var n = 1_000;")
	lit := firstOfType(t, root, ast.TypeLiteral)
	assert.Equal(t, "1_000", lit.Prop(ast.PropRaw))
}

func TestLowerRegexFlags(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "var re = /a.b/gs;")
	lit := firstOfType(t, root, ast.TypeLiteral)
	assert.Equal(t, ast.LiteralRegexp, lit.Prop(ast.PropKind))
	assert.Equal(t, "gs", lit.Prop(ast.PropFlags))
}

func TestLowerKeepsUncatalogedTypesRaw(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "if (a) { f(); }")
	found := root.Find(func(n *ast.Node) bool { return n.Type == "if_statement" })
	assert.NotEmpty(t, found)
}

func TestLowerPositions(t *testing.T) {
	t.Parallel()

	root := parse(t, parser.Options{}, "var a = 1;\nvar b = a ?? 2;\n")
	op := firstOfType(t, root, ast.TypeBinaryOp)
	require.NotNil(t, op.Pos)
	assert.Equal(t, uint(2), op.Pos.StartLine)
}

func TestParserConcurrentUse(t *testing.T) {
	t.Parallel()

	p := parser.NewParser(parser.Options{})
	done := make(chan error, 8)

	for range 8 {
		go func() {
			_, err := p.Parse(context.Background(), "x.js", []byte("const x = a ?? b;\n"))
			done <- err
		}()
	}

	for range 8 {
		assert.NoError(t, <-done)
	}
}
