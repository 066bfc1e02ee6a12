// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog holds the regulation catalog: each regulation (cluster)
// maps to an ordered list of synonym phrases used for keyword matching.
// A catalog is immutable once loaded.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed catalog.yaml
var defaultYAML []byte

// Regulation is a single cluster: a regulation name and its keywords.
type Regulation struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// File is the on-disk representation of a catalog.
type File struct {
	Regulations []Regulation `json:"regulations" yaml:"regulations"`
}

// Catalog maps regulation names to their keywords.
type Catalog struct {
	keywords map[string][]string
	laws     []string
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
})

// Default returns the built-in catalog of sustainability reporting
// regulations and standards.
func Default() *Catalog {
	return loadDefault()
}

// Load reads a catalog YAML file from path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML. A valid catalog has at least one
// regulation, unique non-empty names, and at least one non-blank keyword per
// regulation.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(f.Regulations)
}

// New builds a catalog from regulations, applying the same validation as Parse.
func New(regs []Regulation) (*Catalog, error) {
	if len(regs) == 0 {
		return nil, fmt.Errorf("catalog has no regulations")
	}

	c := &Catalog{keywords: make(map[string][]string, len(regs))}
	for i, r := range regs {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			return nil, fmt.Errorf("regulation %d has no name", i+1)
		}
		if _, dup := c.keywords[name]; dup {
			return nil, fmt.Errorf("duplicate regulation %q", name)
		}
		if !hasKeyword(r.Keywords) {
			return nil, fmt.Errorf("regulation %q has no keywords", name)
		}
		c.keywords[name] = append([]string(nil), r.Keywords...)
		c.laws = append(c.laws, name)
	}
	sort.Strings(c.laws)

	return c, nil
}

func hasKeyword(keywords []string) bool {
	for _, kw := range keywords {
		if strings.TrimSpace(kw) != "" {
			return true
		}
	}
	return false
}

// Laws returns the regulation names in ascending order.
func (c *Catalog) Laws() []string {
	return append([]string(nil), c.laws...)
}

// Keywords returns the keywords for law in declaration order, or nil when
// the catalog has no such regulation.
func (c *Catalog) Keywords(law string) []string {
	kws, ok := c.keywords[law]
	if !ok {
		return nil
	}
	return append([]string(nil), kws...)
}

// Len returns the number of regulations.
func (c *Catalog) Len() int {
	return len(c.laws)
}

// File returns the catalog in its serializable form, regulations sorted by name.
func (c *Catalog) File() File {
	f := File{Regulations: make([]Regulation, len(c.laws))}
	for i, law := range c.laws {
		f.Regulations[i] = Regulation{Name: law, Keywords: c.Keywords(law)}
	}
	return f
}
