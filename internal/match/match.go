// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match detects which catalog regulations a report references.
// A regulation matches when any of its normalized keywords is a literal
// substring of the normalized report text.
package match

import (
	"strings"

	"github.com/pdiddy/regscan/internal/catalog"
	"github.com/pdiddy/regscan/internal/normalize"
)

type cluster struct {
	law      string
	keywords []string
}

// Matcher holds the prepared (normalized) keywords of a catalog.
type Matcher struct {
	clusters []cluster
	index    map[string]int
}

// New prepares a matcher for c. Keywords that normalize to the empty string
// are dropped.
func New(c *catalog.Catalog) *Matcher {
	laws := c.Laws()
	m := &Matcher{
		clusters: make([]cluster, len(laws)),
		index:    make(map[string]int, len(laws)),
	}
	for i, law := range laws {
		var kws []string
		for _, kw := range c.Keywords(law) {
			if n := normalize.Text(kw); n != "" {
				kws = append(kws, n)
			}
		}
		m.clusters[i] = cluster{law: law, keywords: kws}
		m.index[law] = i
	}
	return m
}

// Match returns the regulations found in text, in ascending order. text must
// already be normalized with normalize.Text.
func (m *Matcher) Match(text string) []string {
	var laws []string
	for _, c := range m.clusters {
		if c.matches(text) {
			laws = append(laws, c.law)
		}
	}
	return laws
}

// Matched reports whether law is found in the normalized text. Unknown
// regulations never match.
func (m *Matcher) Matched(text, law string) bool {
	i, ok := m.index[law]
	if !ok {
		return false
	}
	return m.clusters[i].matches(text)
}

// Keywords returns the normalized keywords used for law.
func (m *Matcher) Keywords(law string) []string {
	i, ok := m.index[law]
	if !ok {
		return nil
	}
	return append([]string(nil), m.clusters[i].keywords...)
}

func (c cluster) matches(text string) bool {
	for _, kw := range c.keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
