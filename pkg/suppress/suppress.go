// Package suppress filters the unsupported-feature set produced by the
// checker: allow-listed features are removed unconditionally, ignored
// features are removed next, and finally features neutralized by a detected
// runtime polyfill are dropped when polyfill checking is enabled.
package suppress

import (
	"sort"
	"strings"
)

// Set is a membership filter over feature names.
type Set map[string]struct{}

// NewSet builds a Set from the given names, skipping empties.
func NewSet(names ...string) Set {
	set := make(Set, len(names))

	for _, name := range names {
		if name != "" {
			set[name] = struct{}{}
		}
	}

	return set
}

// FromList parses an inline comma-separated feature-name list into a Set.
func FromList(list string) Set {
	if strings.TrimSpace(list) == "" {
		return Set{}
	}

	parts := strings.Split(list, ",")
	set := make(Set, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			set[trimmed] = struct{}{}
		}
	}

	return set
}

// Union returns a new Set holding the members of both sets.
func (s Set) Union(other Set) Set {
	merged := make(Set, len(s)+len(other))

	for name := range s {
		merged[name] = struct{}{}
	}

	for name := range other {
		merged[name] = struct{}{}
	}

	return merged
}

// Has reports membership.
func (s Set) Has(name string) bool {
	_, ok := s[name]

	return ok
}

// Options controls the optional polyfill-scanning stage of the pipeline.
type Options struct {
	// CheckForPolyfills enables textual polyfill scanning of Source.
	CheckForPolyfills bool

	// Source is the raw file content scanned for polyfill signatures.
	Source []byte
}

// Apply produces the final reported set from the unsupported set by a fixed
// filter order: (1) the allow set, an unconditional override; (2) the ignore
// set; (3) polyfill detection, when enabled. Polyfill scanning is skipped
// outright when nothing survives the first two filters.
//
// Polyfill detection is textual pattern matching, not tree-aware: a
// signature's mere presence anywhere in the file suffices, even if the
// polyfill is unreachable from the feature's use site. This is a documented
// approximation, not a soundness guarantee.
func Apply(unsupported []string, ignore, allow Set, opts Options) []string {
	remaining := make([]string, 0, len(unsupported))

	for _, name := range unsupported {
		if allow.Has(name) || ignore.Has(name) {
			continue
		}

		remaining = append(remaining, name)
	}

	if opts.CheckForPolyfills && len(remaining) > 0 {
		remaining = dropPolyfilled(remaining, opts.Source)
	}

	sort.Strings(remaining)

	return remaining
}
