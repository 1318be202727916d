package vocab

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/claimguard/internal/model"
	"gopkg.in/yaml.v3"
)

// Exposure pairs an exposure variable with the outcomes it plausibly moves
// and the confounders that plausibly move both
type Exposure struct {
	Name        string   `yaml:"name" json:"name"`
	Outcomes    []string `yaml:"outcomes" json:"outcomes"`
	Confounders []string `yaml:"confounders" json:"confounders"`
}

// Table maps domain names to ordered exposure lists. A table is built once
// at startup and read-only afterwards; callers must not mutate what its
// accessors return.
type Table struct {
	domains map[string][]Exposure
	order   []string
	def     string
}

// New builds a table from the built-in vocabulary, optionally merged with a
// YAML override file. A domain present in the file replaces the built-in
// domain entirely; new domains are appended in sorted order.
func New(cfg model.VocabConfig) (*Table, error) {
	domains, order := builtin()

	if cfg.File != "" {
		loaded, err := loadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("load vocabulary file: %w", err)
		}

		var added []string
		for name, entries := range loaded {
			if _, exists := domains[name]; !exists {
				added = append(added, name)
			}
			domains[name] = entries
		}
		sort.Strings(added)
		order = append(order, added...)
	}

	def := normalize(cfg.DefaultDomain)
	if def == "" {
		def = "health"
	}
	if _, ok := domains[def]; !ok {
		return nil, fmt.Errorf("default domain %q not in vocabulary", def)
	}

	return &Table{domains: domains, order: order, def: def}, nil
}

// DefaultDomain returns the domain used when a request names no known one
func (t *Table) DefaultDomain() string {
	return t.def
}

// Domains lists the known domain names in declaration order
func (t *Table) Domains() []string {
	return t.order
}

// Exposures returns the named domain's entries and whether it exists
func (t *Table) Exposures(domain string) ([]Exposure, bool) {
	entries, ok := t.domains[normalize(domain)]
	return entries, ok
}

// Resolve returns the exposure list for the named domain, falling back to
// the default domain when the name is unknown or empty. It never returns
// an empty list.
func (t *Table) Resolve(domain string) []Exposure {
	if entries, ok := t.domains[normalize(domain)]; ok {
		return entries
	}
	return t.domains[t.def]
}

// ResolveName returns the normalized domain name that Resolve would use
func (t *Table) ResolveName(domain string) string {
	if name := normalize(domain); name != "" {
		if _, ok := t.domains[name]; ok {
			return name
		}
	}
	return t.def
}

// loadFile reads a YAML vocabulary override: a map of domain name to
// exposure list
func loadFile(path string) (map[string][]Exposure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string][]Exposure
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	domains := make(map[string][]Exposure, len(raw))
	for name, entries := range raw {
		key := normalize(name)
		if key == "" {
			return nil, fmt.Errorf("empty domain name")
		}
		if len(entries) == 0 {
			return nil, fmt.Errorf("domain %q has no exposures", key)
		}
		for i, e := range entries {
			if strings.TrimSpace(e.Name) == "" {
				return nil, fmt.Errorf("domain %q: exposure %d has no name", key, i)
			}
			if len(e.Outcomes) == 0 {
				return nil, fmt.Errorf("domain %q: exposure %q has no outcomes", key, e.Name)
			}
		}
		domains[key] = entries
	}

	return domains, nil
}

func normalize(domain string) string {
	return strings.ToLower(strings.TrimSpace(domain))
}
