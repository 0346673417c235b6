package suppress

import (
	"regexp"
	"sync"
)

// polyfillSignature pairs a feature name with the textual patterns whose
// presence anywhere in a file is understood to supply a runtime
// implementation of that feature.
type polyfillSignature struct {
	Feature  string
	Patterns []string
}

// polyfillSignatures lists the recognized polyfill import paths and global
// assignments per feature name. The core-js module paths cover both the
// full and the pure entry points.
//
//nolint:gochecknoglobals // Read-only signature table.
var polyfillSignatures = []polyfillSignature{
	{Feature: "PromiseConstructor", Patterns: []string{
		`core-js(?:-pure)?/(?:es|stable|actual|features)/promise`,
		`core-js/modules/es\.promise`,
		`['"]promise-polyfill['"]`,
		`(?:window|globalThis|global)\.Promise\s*=`,
	}},
	{Feature: "PromiseAll", Patterns: []string{
		`core-js(?:-pure)?/(?:es|stable|actual|features)/promise`,
		`core-js/modules/es\.promise`,
	}},
	{Feature: "PromiseRace", Patterns: []string{
		`core-js(?:-pure)?/(?:es|stable|actual|features)/promise`,
		`core-js/modules/es\.promise`,
	}},
	{Feature: "PromiseFinally", Patterns: []string{
		`core-js/modules/es\.promise\.finally`,
		`promise\.prototype\.finally`,
	}},
	{Feature: "PromiseAllSettled", Patterns: []string{
		`core-js/modules/es\.promise\.all-settled`,
		`promise\.allsettled`,
	}},
	{Feature: "PromiseAny", Patterns: []string{
		`core-js/modules/es\.promise\.any`,
		`promise\.any`,
	}},
	{Feature: "Symbol", Patterns: []string{
		`core-js(?:-pure)?/(?:es|stable|actual|features)/symbol`,
		`core-js/modules/es\.symbol`,
		`es6-symbol`,
	}},
	{Feature: "MapCollection", Patterns: []string{
		`core-js(?:-pure)?/(?:es|stable|actual|features)/map`,
		`core-js/modules/es\.map`,
		`es6-map`,
	}},
	{Feature: "SetCollection", Patterns: []string{
		`core-js(?:-pure)?/(?:es|stable|actual|features)/set`,
		`core-js/modules/es\.set`,
		`es6-set`,
	}},
	{Feature: "WeakMapCollection", Patterns: []string{
		`core-js/modules/es\.weak-map`,
	}},
	{Feature: "WeakSetCollection", Patterns: []string{
		`core-js/modules/es\.weak-set`,
	}},
	{Feature: "ArrayFrom", Patterns: []string{
		`core-js/modules/es\.array\.from`,
		`array\.from-polyfill`,
	}},
	{Feature: "ArrayOf", Patterns: []string{
		`core-js/modules/es\.array\.of`,
	}},
	{Feature: "ArrayIncludes", Patterns: []string{
		`core-js/modules/es\.array\.includes`,
		`array-includes`,
	}},
	{Feature: "ArrayFlat", Patterns: []string{
		`core-js/modules/es\.array\.flat`,
		`array\.prototype\.flat`,
	}},
	{Feature: "ArrayFlatMap", Patterns: []string{
		`core-js/modules/es\.array\.flat-map`,
		`array\.prototype\.flatmap`,
	}},
	{Feature: "ArrayAt", Patterns: []string{
		`core-js/modules/es\.array\.at`,
		`array\.prototype\.at`,
	}},
	{Feature: "ArrayFindLast", Patterns: []string{
		`core-js/modules/es\.array\.find-last`,
		`array\.prototype\.findlast`,
	}},
	{Feature: "ArrayFindLastIndex", Patterns: []string{
		`core-js/modules/es\.array\.find-last-index`,
		`array\.prototype\.findlastindex`,
	}},
	{Feature: "ObjectAssign", Patterns: []string{
		`core-js/modules/es\.object\.assign`,
		`object-assign`,
	}},
	{Feature: "ObjectEntries", Patterns: []string{
		`core-js/modules/es\.object\.entries`,
		`object\.entries`,
	}},
	{Feature: "ObjectValues", Patterns: []string{
		`core-js/modules/es\.object\.values`,
		`object\.values`,
	}},
	{Feature: "ObjectFromEntries", Patterns: []string{
		`core-js/modules/es\.object\.from-entries`,
		`object\.fromentries`,
	}},
	{Feature: "ObjectHasOwn", Patterns: []string{
		`core-js/modules/es\.object\.has-own`,
		`object\.hasown`,
	}},
	{Feature: "StringPadStart", Patterns: []string{
		`core-js/modules/es\.string\.pad-start`,
		`string\.prototype\.padstart`,
	}},
	{Feature: "StringPadEnd", Patterns: []string{
		`core-js/modules/es\.string\.pad-end`,
		`string\.prototype\.padend`,
	}},
	{Feature: "StringTrimStart", Patterns: []string{
		`core-js/modules/es\.string\.trim-start`,
		`string\.prototype\.trimstart`,
	}},
	{Feature: "StringTrimEnd", Patterns: []string{
		`core-js/modules/es\.string\.trim-end`,
		`string\.prototype\.trimend`,
	}},
	{Feature: "StringMatchAll", Patterns: []string{
		`core-js/modules/es\.string\.match-all`,
		`string\.prototype\.matchall`,
	}},
	{Feature: "StringReplaceAll", Patterns: []string{
		`core-js/modules/es\.string\.replace-all`,
		`string\.prototype\.replaceall`,
	}},
	{Feature: "GlobalThis", Patterns: []string{
		`core-js/modules/es\.global-this`,
		`globalthis/polyfill`,
	}},
	{Feature: "BigIntConstructor", Patterns: []string{
		`big-integer`,
		`bigint-polyfill`,
	}},
}

// compiledSignatures holds the lazily compiled regular expressions. The
// polyfill subsystem is only needed when scanning is explicitly requested, so
// compilation is deferred until first use.
//
//nolint:gochecknoglobals // Guarded by compileOnce.
var (
	compileOnce        sync.Once
	compiledSignatures map[string][]*regexp.Regexp
)

func compiled() map[string][]*regexp.Regexp {
	compileOnce.Do(func() {
		compiledSignatures = make(map[string][]*regexp.Regexp, len(polyfillSignatures))

		for _, sig := range polyfillSignatures {
			patterns := make([]*regexp.Regexp, 0, len(sig.Patterns))

			for _, pattern := range sig.Patterns {
				compiledPattern, err := regexp.Compile(`(?i)` + pattern)
				if err != nil {
					// A malformed signature must never abort checking; it
					// simply cannot suppress anything.
					continue
				}

				patterns = append(patterns, compiledPattern)
			}

			compiledSignatures[sig.Feature] = append(compiledSignatures[sig.Feature], patterns...)
		}
	})

	return compiledSignatures
}

// dropPolyfilled removes features for which a polyfill signature matches
// anywhere in the source text.
func dropPolyfilled(remaining []string, source []byte) []string {
	table := compiled()
	kept := make([]string, 0, len(remaining))

	for _, name := range remaining {
		if !anyPatternMatches(table[name], source) {
			kept = append(kept, name)
		}
	}

	return kept
}

func anyPatternMatches(patterns []*regexp.Regexp, source []byte) bool {
	for _, pattern := range patterns {
		if pattern.Match(source) {
			return true
		}
	}

	return false
}
