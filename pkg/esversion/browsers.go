package esversion

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Browser is one browser/version pair produced by a browser-compatibility
// query resolver.
type Browser struct {
	Name    string
	Version float64
}

// BrowserResolver resolves a browser-compatibility query string into the set
// of browser/version pairs the caller wants to support.
type BrowserResolver interface {
	Resolve(ctx context.Context, query string) ([]Browser, error)
}

// editionStep is one row of the browser compatibility table: browsers at or
// above MinBrowser only need edition Edition.
type editionStep struct {
	MinBrowser float64
	Edition    int
}

// browserTable maps a browser name to its compatibility steps, ordered by
// descending browser version. The binding edition for a browser version is
// the first step whose MinBrowser the version satisfies; versions older than
// every step are held to ES5.
//
//nolint:gochecknoglobals // Read-only compatibility table snapshot.
var browserTable = map[string][]editionStep{
	"chrome": {
		{MinBrowser: 117, Edition: 14},
		{MinBrowser: 94, Edition: 13},
		{MinBrowser: 85, Edition: 12},
		{MinBrowser: 80, Edition: 11},
		{MinBrowser: 73, Edition: 10},
		{MinBrowser: 64, Edition: 9},
		{MinBrowser: 55, Edition: 8},
		{MinBrowser: 52, Edition: 7},
		{MinBrowser: 51, Edition: 6},
	},
	"edge": {
		{MinBrowser: 117, Edition: 14},
		{MinBrowser: 94, Edition: 13},
		{MinBrowser: 85, Edition: 12},
		{MinBrowser: 80, Edition: 11},
		{MinBrowser: 79, Edition: 10},
		{MinBrowser: 15, Edition: 7},
		{MinBrowser: 14, Edition: 6},
	},
	"firefox": {
		{MinBrowser: 115, Edition: 14},
		{MinBrowser: 93, Edition: 13},
		{MinBrowser: 80, Edition: 12},
		{MinBrowser: 74, Edition: 11},
		{MinBrowser: 62, Edition: 9},
		{MinBrowser: 53, Edition: 8},
		{MinBrowser: 52, Edition: 7},
		{MinBrowser: 45, Edition: 6},
	},
	"safari": {
		{MinBrowser: 16.4, Edition: 14},
		{MinBrowser: 16, Edition: 13},
		{MinBrowser: 14.1, Edition: 12},
		{MinBrowser: 13.1, Edition: 11},
		{MinBrowser: 12, Edition: 9},
		{MinBrowser: 10.1, Edition: 8},
		{MinBrowser: 10, Edition: 6},
	},
	"ios_saf": {
		{MinBrowser: 16.4, Edition: 14},
		{MinBrowser: 16, Edition: 13},
		{MinBrowser: 14.5, Edition: 12},
		{MinBrowser: 13.4, Edition: 11},
		{MinBrowser: 12, Edition: 9},
		{MinBrowser: 10.3, Edition: 8},
		{MinBrowser: 10, Edition: 6},
	},
	"opera": {
		{MinBrowser: 103, Edition: 14},
		{MinBrowser: 80, Edition: 13},
		{MinBrowser: 71, Edition: 12},
		{MinBrowser: 67, Edition: 11},
		{MinBrowser: 60, Edition: 10},
		{MinBrowser: 51, Edition: 9},
		{MinBrowser: 42, Edition: 8},
		{MinBrowser: 39, Edition: 7},
		{MinBrowser: 38, Edition: 6},
	},
	"ie": {
		{MinBrowser: 9, Edition: 5},
	},
	"node": {
		{MinBrowser: 20, Edition: 14},
		{MinBrowser: 16.11, Edition: 13},
		{MinBrowser: 15, Edition: 12},
		{MinBrowser: 14, Edition: 11},
		{MinBrowser: 12, Edition: 10},
		{MinBrowser: 10, Edition: 9},
		{MinBrowser: 8, Edition: 8},
		{MinBrowser: 7, Edition: 7},
		{MinBrowser: 6, Edition: 6},
	},
}

// fallbackEdition is the edition assumed for browser versions predating every
// table step.
const fallbackEdition = 5

// EditionForBrowser returns the minimum ECMAScript edition the given browser
// version already supports. Unknown browsers fail with ErrUnresolvedQuery.
func EditionForBrowser(browser Browser) (int, error) {
	steps, ok := browserTable[strings.ToLower(browser.Name)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown browser %q", ErrUnresolvedQuery, browser.Name)
	}

	for _, step := range steps {
		if browser.Version >= step.MinBrowser {
			return step.Edition, nil
		}
	}

	return fallbackEdition, nil
}

// FromBrowsers reduces a set of browser/version pairs to the single edition
// the query binds the caller to: the target must satisfy every browser, so
// the result is the maximum of the per-browser minimum editions. An empty set
// is reported as unresolvable, never silently defaulted.
func FromBrowsers(browsers []Browser) (int, error) {
	if len(browsers) == 0 {
		return 0, fmt.Errorf("%w: empty browser set", ErrUnresolvedQuery)
	}

	highest := 0

	for _, browser := range browsers {
		edition, err := EditionForBrowser(browser)
		if err != nil {
			return 0, err
		}

		if edition > highest {
			highest = edition
		}
	}

	return highest, nil
}

// listEntryParts is the expected field count of one "name version" pair in a
// browser list query.
const listEntryParts = 2

// ListResolver resolves comma-separated "name version" pairs, the query form
// accepted on the command line (for example "chrome 90, firefox 88").
type ListResolver struct{}

// Resolve implements BrowserResolver.
func (ListResolver) Resolve(_ context.Context, query string) ([]Browser, error) {
	entries := strings.Split(query, ",")
	browsers := make([]Browser, 0, len(entries))

	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) != listEntryParts {
			return nil, fmt.Errorf("%w: malformed entry %q", ErrUnresolvedQuery, trimmed)
		}

		version, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad version in %q", ErrUnresolvedQuery, trimmed)
		}

		browsers = append(browsers, Browser{Name: fields[0], Version: version})
	}

	if len(browsers) == 0 {
		return nil, fmt.Errorf("%w: empty query", ErrUnresolvedQuery)
	}

	return browsers, nil
}

// ResolveTarget resolves either an explicit version token or, when token is
// empty, a browser query via the given resolver. Exactly one of the two paths
// is taken per run.
func ResolveTarget(ctx context.Context, token, query string, resolver BrowserResolver) (int, error) {
	if token != "" {
		return Resolve(token)
	}

	if resolver == nil {
		return 0, fmt.Errorf("%w: no resolver configured", ErrUnresolvedQuery)
	}

	browsers, err := resolver.Resolve(ctx, query)
	if err != nil {
		return 0, err
	}

	return FromBrowsers(browsers)
}
