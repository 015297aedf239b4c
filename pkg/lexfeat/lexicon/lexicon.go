package lexicon

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
)

// POS is a coarse part-of-speech hint used to disambiguate lemma lookups.
// The values follow the WordNet convention.
type POS string

const (
	POSNone      POS = ""
	POSNoun      POS = "n"
	POSVerb      POS = "v"
	POSAdjective POS = "a"
	POSAdverb    POS = "r"
)

// lookupOrder is the order in which tagged entries are tried when the caller
// supplies no hint.
var lookupOrder = []POS{POSNoun, POSVerb, POSAdjective, POSAdverb}

// ParsePOS converts a config value ("n", "noun", "v", "verb", ...) to a POS.
func ParsePOS(s string) (POS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return POSNone, nil
	case "n", "noun":
		return POSNoun, nil
	case "v", "verb":
		return POSVerb, nil
	case "a", "adj", "adjective":
		return POSAdjective, nil
	case "r", "adv", "adverb":
		return POSAdverb, nil
	default:
		return POSNone, fmt.Errorf("%w: unknown part of speech %q", internalerr.ErrInvalidConfig, s)
	}
}

// Entry groups the inflected forms that reduce to one lemma.
// Example: {Lemma: "run", POS: "v", Forms: ["ran", "running", "runs"]}
type Entry struct {
	Lemma string
	POS   POS
	Forms []string
}

type lemmaKey struct {
	form string
	pos  POS
}

// LemmaMap is a read-only mapping from (form, part of speech) to lemma.
// It is built once from a list of entries and never mutated afterwards, so it
// can be shared across goroutines.
type LemmaMap struct {
	lemmas map[lemmaKey]string
	// lemma -> forms, canonical first
	forms   map[string][]string
	entries []Entry
}

// New builds a LemmaMap. Forms and lemmas are lower-cased; every lemma maps
// to itself. When two entries claim the same (form, pos) the first one wins.
func New(entries []Entry) *LemmaMap {
	m := &LemmaMap{
		lemmas:  make(map[lemmaKey]string),
		forms:   make(map[string][]string),
		entries: make([]Entry, 0, len(entries)),
	}

	for _, e := range entries {
		lemma := strings.ToLower(strings.TrimSpace(e.Lemma))
		if lemma == "" {
			continue
		}

		seen := make(map[string]bool)
		forms := []string{lemma}
		seen[lemma] = true
		for _, f := range e.Forms {
			f = strings.ToLower(strings.TrimSpace(f))
			if f == "" || seen[f] {
				continue
			}
			seen[f] = true
			forms = append(forms, f)
		}

		for _, f := range forms {
			key := lemmaKey{form: f, pos: e.POS}
			if _, exists := m.lemmas[key]; !exists {
				m.lemmas[key] = lemma
			}
		}
		m.forms[lemma] = mergeForms(m.forms[lemma], forms)
		m.entries = append(m.entries, Entry{Lemma: lemma, POS: e.POS, Forms: forms[1:]})
	}

	return m
}

func mergeForms(existing, add []string) []string {
	if len(existing) == 0 {
		return add
	}
	seen := make(map[string]bool, len(existing))
	for _, f := range existing {
		seen[f] = true
	}
	for _, f := range add {
		if !seen[f] {
			existing = append(existing, f)
			seen[f] = true
		}
	}
	return existing
}

// LoadFromYAML loads lemma entries from a YAML file.
//
// Expected format:
//
//	lemmas:
//	  - lemma: run
//	    pos: v
//	    forms: [ran, running, runs]
//	  - lemma: dog
//	    pos: n
//	    forms: [dogs]
//
// pos may be omitted for entries that apply regardless of word class.
func LoadFromYAML(path string) (*LemmaMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Lemmas []struct {
			Lemma string   `yaml:"lemma"`
			POS   string   `yaml:"pos"`
			Forms []string `yaml:"forms"`
		} `yaml:"lemmas"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(doc.Lemmas))
	for i, l := range doc.Lemmas {
		pos, err := ParsePOS(l.POS)
		if err != nil {
			return nil, fmt.Errorf("lemma entry %d: %w", i, err)
		}
		entries = append(entries, Entry{Lemma: l.Lemma, POS: pos, Forms: l.Forms})
	}

	return New(entries), nil
}

// Lookup returns the lemma for a form and whether it was found.
//
// With a POS hint, the entry tagged with that POS is preferred, then an
// untagged entry. Without a hint, the untagged entry is tried first and then
// tagged entries in noun, verb, adjective, adverb order.
func (m *LemmaMap) Lookup(form string, pos POS) (string, bool) {
	if m == nil {
		return "", false
	}
	form = strings.ToLower(form)

	if pos != POSNone {
		if lemma, ok := m.lemmas[lemmaKey{form: form, pos: pos}]; ok {
			return lemma, true
		}
	}
	if lemma, ok := m.lemmas[lemmaKey{form: form}]; ok {
		return lemma, true
	}
	if pos != POSNone {
		return "", false
	}
	for _, p := range lookupOrder {
		if lemma, ok := m.lemmas[lemmaKey{form: form, pos: p}]; ok {
			return lemma, true
		}
	}
	return "", false
}

// Lemma returns the lemma of a form, or the form itself when unknown.
//
// Examples:
//   - Lemma("ran", POSVerb) -> "run"
//   - Lemma("unknown", POSNone) -> "unknown"
func (m *LemmaMap) Lemma(form string, pos POS) string {
	if lemma, ok := m.Lookup(form, pos); ok {
		return lemma
	}
	return form
}

// Forms returns every known form of a lemma, the lemma itself first.
// Unknown lemmas return a slice holding only the input.
func (m *LemmaMap) Forms(lemma string) []string {
	lemma = strings.ToLower(lemma)
	if m != nil {
		if forms, ok := m.forms[lemma]; ok {
			out := make([]string, len(forms))
			copy(out, forms)
			return out
		}
	}
	return []string{lemma}
}

// Entries returns a copy of the normalized entries the map was built from.
func (m *LemmaMap) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	for i, e := range m.entries {
		forms := make([]string, len(e.Forms))
		copy(forms, e.Forms)
		out[i] = Entry{Lemma: e.Lemma, POS: e.POS, Forms: forms}
	}
	return out
}

// Stats returns statistics about the map contents.
func (m *LemmaMap) Stats() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		Lemmas: len(m.forms),
		Keys:   len(m.lemmas),
	}
}

// Stats holds statistics about lemma map contents.
type Stats struct {
	Lemmas int // Number of distinct lemmas
	Keys   int // Number of (form, pos) keys, lemmas included
}
