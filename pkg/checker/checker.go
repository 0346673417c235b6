// Package checker implements the feature-detection traversal: it walks a
// normalized syntax tree, matches nodes against the feature catalog, and
// reduces the matches to a deterministic found/unsupported verdict for a
// target ECMAScript edition.
package checker

import (
	"sort"

	"github.com/Sumatoshi-tech/escheck/pkg/ast"
	"github.com/Sumatoshi-tech/escheck/pkg/features"
)

// Result holds the outcome of checking one file: every feature found in the
// tree, and the subset whose minimum edition exceeds the target. Both lists
// are sorted and duplicate-free.
type Result struct {
	Found       []string
	Unsupported []string
}

// CheckFile walks the tree rooted at root and reports found and unsupported
// features for the given target edition. When checkFeatures is false the
// traversal is skipped entirely and both sets are empty: parse success is the
// only signal the caller needs.
//
// Checking is a pure function of (tree, target): repeated runs yield
// identical results, and the result for a concatenation of fragments is the
// union of the per-fragment results.
func CheckFile(root *ast.Node, target int, checkFeatures bool) Result {
	if !checkFeatures || root == nil {
		return Result{}
	}

	found := make(map[string]int)

	root.Walk(func(n *ast.Node) {
		for _, def := range features.Match(n) {
			found[def.Name] = def.MinVersion
		}
	})

	return reduce(found, target)
}

func reduce(found map[string]int, target int) Result {
	result := Result{
		Found: make([]string, 0, len(found)),
	}

	for name, minVersion := range found {
		result.Found = append(result.Found, name)

		if minVersion > target {
			result.Unsupported = append(result.Unsupported, name)
		}
	}

	sort.Strings(result.Found)
	sort.Strings(result.Unsupported)

	return result
}
