// Package esversion resolves a user-supplied compatibility target, either an
// explicit version token or a browser-compatibility query, into a single
// comparable ECMAScript edition number.
package esversion

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for version resolution.
var (
	// ErrInvalidVersion indicates a version token outside the known
	// enumeration, including the never-standardized es4.
	ErrInvalidVersion = errors.New("invalid ECMAScript version")

	// ErrUnresolvedQuery indicates a browser-compatibility query that could
	// not be reduced to an edition number.
	ErrUnresolvedQuery = errors.New("unresolved browser query")
)

// tokens maps every accepted version token to its edition number. Year-named
// synonyms follow the edition = year - 2009 convention. es4 is deliberately
// absent: it was never standardized and is rejected explicitly.
//
//nolint:gochecknoglobals // Read-only lookup table.
var tokens = map[string]int{
	"es3":    3,
	"es5":    5,
	"es6":    6,
	"es2015": 6,
	"es7":    7,
	"es2016": 7,
	"es8":    8,
	"es2017": 8,
	"es9":    9,
	"es2018": 9,
	"es10":   10,
	"es2019": 10,
	"es11":   11,
	"es2020": 11,
	"es12":   12,
	"es2021": 12,
	"es13":   13,
	"es2022": 13,
	"es14":   14,
	"es2023": 14,
}

// Resolve maps an explicit version token to its edition number. Tokens are
// matched case-insensitively. Unknown tokens, and the explicitly rejected
// es4, fail with ErrInvalidVersion.
func Resolve(token string) (int, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))

	if normalized == "es4" {
		return 0, fmt.Errorf("%w: es4 was never standardized", ErrInvalidVersion)
	}

	edition, ok := tokens[normalized]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidVersion, token)
	}

	return edition, nil
}

// Tokens returns the accepted version tokens in no particular order.
func Tokens() []string {
	out := make([]string, 0, len(tokens))

	for token := range tokens {
		out = append(out, token)
	}

	return out
}
