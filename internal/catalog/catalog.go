// Package catalog holds the static mapping from topic keys assigned by
// the upstream topic model ("Topic 1" ... "Topic 10") to the
// human-readable descriptions shown in charts and legends.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// UnknownLabel is the description used for topic keys the catalog
// does not know about. Rows carrying such keys still render.
const UnknownLabel = "Unknown"

// unknownSortKey sorts unmapped, non-numeric topic codes after every
// cataloged topic instead of failing on them.
const unknownSortKey = 1 << 30

// Entry is one catalog row as it appears in a YAML override file.
type Entry struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Catalog is an immutable topic-key → description lookup, ordered by
// the numeric suffix of the keys.
type Catalog struct {
	labels map[string]string
	keys   []string // sorted ascending by numeric suffix
}

// Default returns the built-in ten-topic catalog produced by the
// upstream LDA run over the antibiotic-resistance corpus.
func Default() *Catalog {
	return New([]Entry{
		{Key: "Topic 1", Label: "Genomics & Genetics (sequencing, virulence, methicillin resistance)"},
		{Key: "Topic 2", Label: "Clinical Infections & Patient Management (hospital, treatment, risk)"},
		{Key: "Topic 3", Label: "Microbiota & Phages (intestinal, microbial community, mouse)"},
		{Key: "Topic 4", Label: "Antimicrobial Activity & Biofilms (antibacterial, cell, effect, protein)"},
		{Key: "Topic 5", Label: "Resistance Genes & Plasmids (colistin, carbapenem, multidrug)"},
		{Key: "Topic 6", Label: "Antimicrobial Resistance (AMR) & Public Health (use, review, disease)"},
		{Key: "Topic 7", Label: "Antimicrobial Peptides (AMPs) & Vaccines (COVID, insight)"},
		{Key: "Topic 8", Label: "Tuberculosis & Drug Resistance (mutation, HIV, mycobacterium)"},
		{Key: "Topic 9", Label: "Isolates, Susceptibility & Prevalence (strain, E. coli, sample study)"},
		{Key: "Topic 10", Label: "Probiotics & Urinary Tract Infections (UTI, defense, treatment failure)"},
	})
}

// New builds a catalog from explicit entries. Tests and deployments
// can substitute alternate catalogs through this constructor.
func New(entries []Entry) *Catalog {
	c := &Catalog{labels: make(map[string]string, len(entries))}
	for _, e := range entries {
		if e.Key == "" {
			continue
		}
		if _, dup := c.labels[e.Key]; !dup {
			c.keys = append(c.keys, e.Key)
		}
		c.labels[e.Key] = e.Label
	}
	sort.Slice(c.keys, func(i, j int) bool {
		return SortKey(c.keys[i]) < SortKey(c.keys[j])
	})
	return c
}

// LoadFile reads a YAML topic catalog ("- key: ..., label: ..." list)
// from disk, replacing the built-in entries entirely.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topic catalog %s: %w", path, err)
	}
	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse topic catalog %s: %w", path, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("topic catalog %s contains no entries", path)
	}
	return New(entries), nil
}

// Describe returns the human-readable description for a topic key,
// or UnknownLabel for keys outside the catalog.
func (c *Catalog) Describe(key string) string {
	if label, ok := c.labels[key]; ok {
		return label
	}
	return UnknownLabel
}

// Has reports whether the key is part of the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.labels[key]
	return ok
}

// SortedKeys returns the catalog keys ascending by numeric suffix.
func (c *Catalog) SortedKeys() []string {
	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	return keys
}

// AllKeys returns the catalog keys as a set.
func (c *Catalog) AllKeys() map[string]bool {
	set := make(map[string]bool, len(c.keys))
	for _, k := range c.keys {
		set[k] = true
	}
	return set
}

// Len returns the number of cataloged topics.
func (c *Catalog) Len() int {
	return len(c.keys)
}

// SortKey extracts the integer suffix of a topic key ("Topic 7" → 7).
// Non-numeric keys sort after all numeric ones.
func SortKey(key string) int {
	fields := strings.Fields(key)
	if len(fields) == 0 {
		return unknownSortKey
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return unknownSortKey
	}
	return n
}

// palette holds one chart color per catalog slot, reused cyclically
// for catalogs larger than ten topics. Hex for the web dashboard,
// ANSI-256 for the terminal one.
var palette = []struct {
	Hex  string
	ANSI string
}{
	{"#4c78a8", "32"},
	{"#f58518", "208"},
	{"#e45756", "167"},
	{"#72b7b2", "73"},
	{"#54a24b", "71"},
	{"#eeca3b", "184"},
	{"#b279a2", "133"},
	{"#ff9da6", "210"},
	{"#9d755d", "95"},
	{"#bab0ac", "145"},
}

// unknownColor marks segments whose topic key is not in the catalog.
var unknownColor = struct{ Hex, ANSI string }{"#888888", "244"}

// ColorHex returns the web chart color for a topic key.
func ColorHex(key string) string {
	n := SortKey(key)
	if n == unknownSortKey {
		return unknownColor.Hex
	}
	return palette[(n-1+len(palette))%len(palette)].Hex
}

// ColorANSI returns the terminal chart color for a topic key.
func ColorANSI(key string) string {
	n := SortKey(key)
	if n == unknownSortKey {
		return unknownColor.ANSI
	}
	return palette[(n-1+len(palette))%len(palette)].ANSI
}
