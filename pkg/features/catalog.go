package features

import (
	"github.com/Sumatoshi-tech/escheck/pkg/ast"
)

// ECMAScript edition numbers used by the catalog.
const (
	ES5  = 5
	ES6  = 6
	ES7  = 7
	ES8  = 8
	ES9  = 9
	ES10 = 10
	ES11 = 11
	ES12 = 12
	ES13 = 13
	ES14 = 14
)

// Catalog is the declarative table of known features: one entry per named
// language or library feature, with the minimum supporting edition and the
// structural signature that identifies its use. Names are stable,
// case-sensitive identifiers; they are the only vocabulary exchanged with
// ignore lists, allow lists, and polyfill signatures.
//
//nolint:gochecknoglobals // Read-only catalog shared process-wide.
var Catalog = []Definition{
	// ES5.
	{
		Name: "ObjectCreate", MinVersion: ES5,
		Example:   "Object.create(proto)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "create"},
	},
	{
		Name: "ObjectDefineProperty", MinVersion: ES5,
		Example:   "Object.defineProperty(obj, 'x', d)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "defineProperty"},
	},
	{
		Name: "ArrayIsArray", MinVersion: ES5,
		Example:   "Array.isArray(x)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Array", Property: "isArray"},
	},
	{
		Name: "JSONParse", MinVersion: ES5,
		Example:   "JSON.parse(text)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "JSON", Property: "parse"},
	},
	{
		Name: "JSONStringify", MinVersion: ES5,
		Example:   "JSON.stringify(value)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "JSON", Property: "stringify"},
	},
	{
		Name: "DateNow", MinVersion: ES5,
		Example:   "Date.now()",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Date", Property: "now"},
	},

	// ES6 (ES2015).
	{
		Name: "LetDeclaration", MinVersion: ES6,
		Example:   "let x = 1;",
		Signature: Signature{NodeType: ast.TypeVariableDeclaration, Kind: "let"},
	},
	{
		Name: "ConstDeclaration", MinVersion: ES6,
		Example:   "const x = 1;",
		Signature: Signature{NodeType: ast.TypeVariableDeclaration, Kind: "const"},
	},
	{
		Name: "ArrowFunction", MinVersion: ES6,
		Example:   "const f = () => 1;",
		Signature: Signature{NodeType: ast.TypeArrowFunction},
	},
	{
		Name: "Class", MinVersion: ES6,
		Example:   "class C {}",
		Signature: Signature{NodeType: ast.TypeClass},
	},
	{
		Name: "ClassInheritance", MinVersion: ES6,
		Example:   "class C extends D {}",
		Signature: Signature{NodeType: ast.TypeClass, RequiresSuperclass: true},
	},
	{
		Name: "TemplateLiteral", MinVersion: ES6,
		Example:   "`hello ${name}`",
		Signature: Signature{NodeType: ast.TypeTemplateLiteral},
	},
	{
		Name: "GeneratorFunction", MinVersion: ES6,
		Example:   "function* gen() { yield 1; }",
		Signature: Signature{NodeType: ast.TypeFunction, Generator: true},
	},
	{
		Name: "SpreadSyntax", MinVersion: ES6,
		Example:   "f(...args)",
		Signature: Signature{NodeType: ast.TypeSpreadElement},
	},
	{
		Name: "RestParameters", MinVersion: ES6,
		Example:   "function f(...rest) {}",
		Signature: Signature{NodeType: ast.TypeRestElement},
	},
	{
		Name: "ForOf", MinVersion: ES6,
		Example:   "for (const x of xs) {}",
		Signature: Signature{NodeType: ast.TypeForOf},
	},
	{
		Name: "PromiseConstructor", MinVersion: ES6,
		Example:   "new Promise((res, rej) => {})",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "Promise"},
	},
	{
		Name: "PromiseAll", MinVersion: ES6,
		Example:   "Promise.all(ps)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Promise", Property: "all"},
	},
	{
		Name: "PromiseRace", MinVersion: ES6,
		Example:   "Promise.race(ps)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Promise", Property: "race"},
	},
	{
		Name: "Symbol", MinVersion: ES6,
		Example:   "Symbol('desc')",
		Signature: Signature{NodeType: ast.TypeCall, Callee: "Symbol"},
	},
	{
		Name: "MapCollection", MinVersion: ES6,
		Example:   "new Map()",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "Map"},
	},
	{
		Name: "SetCollection", MinVersion: ES6,
		Example:   "new Set()",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "Set"},
	},
	{
		Name: "WeakMapCollection", MinVersion: ES6,
		Example:   "new WeakMap()",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "WeakMap"},
	},
	{
		Name: "WeakSetCollection", MinVersion: ES6,
		Example:   "new WeakSet()",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "WeakSet"},
	},
	{
		Name: "Proxy", MinVersion: ES6,
		Example:   "new Proxy(target, handler)",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "Proxy"},
	},
	{
		Name: "ArrayFrom", MinVersion: ES6,
		Example:   "Array.from(iterable)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Array", Property: "from"},
	},
	{
		Name: "ArrayOf", MinVersion: ES6,
		Example:   "Array.of(1, 2, 3)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Array", Property: "of"},
	},
	{
		Name: "ObjectAssign", MinVersion: ES6,
		Example:   "Object.assign({}, src)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "assign"},
	},
	{
		Name: "ObjectIs", MinVersion: ES6,
		Example:   "Object.is(a, b)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "is"},
	},
	{
		Name: "ImportDeclaration", MinVersion: ES6,
		Example:   "import x from 'mod';",
		Signature: Signature{NodeType: ast.TypeImportDeclaration},
	},
	{
		Name: "ExportDeclaration", MinVersion: ES6,
		Example:   "export default x;",
		Signature: Signature{NodeType: ast.TypeExportDeclaration},
	},

	// ES7 (ES2016).
	{
		Name: "ExponentOperator", MinVersion: ES7,
		Example:   "a ** b",
		Signature: Signature{NodeType: ast.TypeBinaryOp, Operator: "**"},
	},
	{
		Name: "ExponentAssignment", MinVersion: ES7,
		Example:   "a **= b",
		Signature: Signature{NodeType: ast.TypeAssignOp, Operator: "**="},
	},
	{
		Name: "ArrayIncludes", MinVersion: ES7,
		Example:   "xs.includes(x)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "includes"},
	},

	// ES8 (ES2017).
	{
		Name: "AsyncFunction", MinVersion: ES8,
		Example:   "async function f() {}",
		Signature: Signature{NodeType: ast.TypeFunction, Async: true},
	},
	{
		Name: "AwaitExpression", MinVersion: ES8,
		Example:   "await p",
		Signature: Signature{NodeType: ast.TypeAwait},
	},
	{
		Name: "ObjectEntries", MinVersion: ES8,
		Example:   "Object.entries(obj)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "entries"},
	},
	{
		Name: "ObjectValues", MinVersion: ES8,
		Example:   "Object.values(obj)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "values"},
	},
	{
		Name: "ObjectGetOwnPropertyDescriptors", MinVersion: ES8,
		Example:   "Object.getOwnPropertyDescriptors(obj)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "getOwnPropertyDescriptors"},
	},
	{
		Name: "StringPadStart", MinVersion: ES8,
		Example:   "s.padStart(8)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "padStart"},
	},
	{
		Name: "StringPadEnd", MinVersion: ES8,
		Example:   "s.padEnd(8)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "padEnd"},
	},

	// ES9 (ES2018).
	{
		Name: "AsyncIteration", MinVersion: ES9,
		Example:   "async function* gen() {}",
		Signature: Signature{NodeType: ast.TypeFunction, Async: true, Generator: true},
	},
	{
		Name: "ForAwaitOf", MinVersion: ES9,
		Example:   "for await (const x of xs) {}",
		Signature: Signature{NodeType: ast.TypeForOf, Await: true},
	},
	{
		Name: "PromiseFinally", MinVersion: ES9,
		Example:   "p.finally(() => {})",
		Signature: Signature{NodeType: ast.TypeCall, Property: "finally"},
	},
	{
		Name: "RegexpDotAllFlag", MinVersion: ES9,
		Example:   "/a.b/s",
		Signature: Signature{NodeType: ast.TypeLiteral, Kind: ast.LiteralRegexp, Flag: "s"},
	},

	// ES10 (ES2019).
	{
		Name: "ArrayFlat", MinVersion: ES10,
		Example:   "xs.flat()",
		Signature: Signature{NodeType: ast.TypeCall, Property: "flat"},
	},
	{
		Name: "ArrayFlatMap", MinVersion: ES10,
		Example:   "xs.flatMap(f)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "flatMap"},
	},
	{
		Name: "ObjectFromEntries", MinVersion: ES10,
		Example:   "Object.fromEntries(pairs)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "fromEntries"},
	},
	{
		Name: "StringTrimStart", MinVersion: ES10,
		Example:   "s.trimStart()",
		Signature: Signature{NodeType: ast.TypeCall, Property: "trimStart"},
	},
	{
		Name: "StringTrimEnd", MinVersion: ES10,
		Example:   "s.trimEnd()",
		Signature: Signature{NodeType: ast.TypeCall, Property: "trimEnd"},
	},
	{
		Name: "OptionalCatchBinding", MinVersion: ES10,
		Example:   "try { f(); } catch { g(); }",
		Signature: Signature{NodeType: ast.TypeTry, NoCatchBinding: true},
	},

	// ES11 (ES2020).
	{
		Name: "BigIntLiteral", MinVersion: ES11,
		Example:   "const n = 9007199254740993n;",
		Signature: Signature{NodeType: ast.TypeLiteral, Kind: ast.LiteralBigInt},
	},
	{
		Name: "BigIntConstructor", MinVersion: ES11,
		Example:   "BigInt('9007199254740993')",
		Signature: Signature{NodeType: ast.TypeCall, Callee: "BigInt"},
	},
	{
		Name: "DynamicImport", MinVersion: ES11,
		Example:   "import('./mod.js')",
		Signature: Signature{NodeType: ast.TypeImportCall},
	},
	{
		Name: "NullishCoalescing", MinVersion: ES11,
		Example:   "a ?? b",
		Signature: Signature{NodeType: ast.TypeBinaryOp, Operator: "??"},
	},
	{
		Name: "OptionalChaining", MinVersion: ES11,
		Example:   "obj?.prop",
		Signature: Signature{NodeType: ast.TypeMember, AltNodeType: ast.TypeCall, Optional: true},
	},
	{
		Name: "PromiseAllSettled", MinVersion: ES11,
		Example:   "Promise.allSettled(ps)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Promise", Property: "allSettled"},
	},
	{
		Name: "GlobalThis", MinVersion: ES11,
		Example:   "globalThis.fetch",
		Signature: Signature{NodeType: ast.TypeIdentifier, Token: "globalThis"},
	},
	{
		Name: "StringMatchAll", MinVersion: ES11,
		Example:   "s.matchAll(re)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "matchAll"},
	},

	// ES12 (ES2021).
	{
		Name: "LogicalOrAssignment", MinVersion: ES12,
		Example:   "a ||= b",
		Signature: Signature{NodeType: ast.TypeAssignOp, Operator: "||="},
	},
	{
		Name: "LogicalAndAssignment", MinVersion: ES12,
		Example:   "a &&= b",
		Signature: Signature{NodeType: ast.TypeAssignOp, Operator: "&&="},
	},
	{
		Name: "NullishAssignment", MinVersion: ES12,
		Example:   "a ??= b",
		Signature: Signature{NodeType: ast.TypeAssignOp, Operator: "??="},
	},
	{
		Name: "NumericSeparators", MinVersion: ES12,
		Example:   "const n = 1_000_000;",
		Signature: Signature{NodeType: ast.TypeLiteral, RawContains: "_"},
	},
	{
		Name: "StringReplaceAll", MinVersion: ES12,
		Example:   "s.replaceAll('a', 'b')",
		Signature: Signature{NodeType: ast.TypeCall, Property: "replaceAll"},
	},
	{
		Name: "PromiseAny", MinVersion: ES12,
		Example:   "Promise.any(ps)",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Promise", Property: "any"},
	},
	{
		Name: "WeakRef", MinVersion: ES12,
		Example:   "new WeakRef(obj)",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "WeakRef"},
	},
	{
		Name: "FinalizationRegistry", MinVersion: ES12,
		Example:   "new FinalizationRegistry(cb)",
		Signature: Signature{NodeType: ast.TypeNew, Callee: "FinalizationRegistry"},
	},

	// ES13 (ES2022).
	{
		Name: "ClassFields", MinVersion: ES13,
		Example:   "class C { x = 1; }",
		Signature: Signature{NodeType: ast.TypeFieldDefinition},
	},
	{
		Name: "PrivateClassMembers", MinVersion: ES13,
		Example:   "class C { #x = 1; }",
		Signature: Signature{NodeType: ast.TypeFieldDefinition, Private: true},
	},
	{
		Name: "StaticBlock", MinVersion: ES13,
		Example:   "class C { static { init(); } }",
		Signature: Signature{NodeType: ast.TypeStaticBlock},
	},
	{
		Name: "ArrayAt", MinVersion: ES13,
		Example:   "xs.at(-1)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "at"},
	},
	{
		Name: "ObjectHasOwn", MinVersion: ES13,
		Example:   "Object.hasOwn(obj, 'x')",
		Signature: Signature{NodeType: ast.TypeCall, Object: "Object", Property: "hasOwn"},
	},
	{
		Name: "RegexpHasIndicesFlag", MinVersion: ES13,
		Example:   "/ab/d",
		Signature: Signature{NodeType: ast.TypeLiteral, Kind: ast.LiteralRegexp, Flag: "d"},
	},

	// ES14 (ES2023).
	{
		Name: "ArrayFindLast", MinVersion: ES14,
		Example:   "xs.findLast(f)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "findLast"},
	},
	{
		Name: "ArrayFindLastIndex", MinVersion: ES14,
		Example:   "xs.findLastIndex(f)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "findLastIndex"},
	},
	{
		Name: "ArrayToSorted", MinVersion: ES14,
		Example:   "xs.toSorted()",
		Signature: Signature{NodeType: ast.TypeCall, Property: "toSorted"},
	},
	{
		Name: "ArrayToReversed", MinVersion: ES14,
		Example:   "xs.toReversed()",
		Signature: Signature{NodeType: ast.TypeCall, Property: "toReversed"},
	},
	{
		Name: "ArrayToSpliced", MinVersion: ES14,
		Example:   "xs.toSpliced(0, 1)",
		Signature: Signature{NodeType: ast.TypeCall, Property: "toSpliced"},
	},
	{
		Name: "RegexpUnicodeSetsFlag", MinVersion: ES14,
		Example:   "/[\\p{Letter}]/v",
		Signature: Signature{NodeType: ast.TypeLiteral, Kind: ast.LiteralRegexp, Flag: "v"},
	},
}
