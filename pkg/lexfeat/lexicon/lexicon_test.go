package lexicon

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
)

func sampleMap() *LemmaMap {
	return New([]Entry{
		{Lemma: "run", POS: POSVerb, Forms: []string{"ran", "running", "runs"}},
		{Lemma: "agree", POS: POSVerb, Forms: []string{"agreed", "agrees"}},
		{Lemma: "dog", POS: POSNoun, Forms: []string{"dogs"}},
		{Lemma: "saw", POS: POSNoun, Forms: []string{"saws"}},
		{Lemma: "see", POS: POSVerb, Forms: []string{"saw", "seen", "sees"}},
	})
}

func TestLemmaMapNew(t *testing.T) {
	m := New(nil)
	if m == nil {
		t.Fatal("New(nil) returned nil")
	}
	if stats := m.Stats(); stats.Lemmas != 0 || stats.Keys != 0 {
		t.Errorf("empty map stats = %+v, want zero", stats)
	}
}

func TestLemmaMapLemma(t *testing.T) {
	m := sampleMap()

	tests := []struct {
		form string
		pos  POS
		want string
	}{
		{"running", POSNone, "run"},
		{"ran", POSNone, "run"},
		{"ran", POSVerb, "run"},
		{"agreed", POSNone, "agree"},
		{"dogs", POSNoun, "dog"},
		{"run", POSNone, "run"},
		{"Ran", POSNone, "run"},
	}

	for _, tt := range tests {
		if got := m.Lemma(tt.form, tt.pos); got != tt.want {
			t.Errorf("Lemma(%q, %q) = %q, want %q", tt.form, tt.pos, got, tt.want)
		}
	}
}

func TestLemmaMapUnknownFailsOpen(t *testing.T) {
	m := sampleMap()

	if got := m.Lemma("zebra", POSNone); got != "zebra" {
		t.Errorf("Lemma('zebra') = %q, want 'zebra'", got)
	}
	if _, ok := m.Lookup("zebra", POSNoun); ok {
		t.Error("Lookup('zebra') should report not found")
	}

	var nilMap *LemmaMap
	if got := nilMap.Lemma("dogs", POSNone); got != "dogs" {
		t.Errorf("nil map Lemma('dogs') = %q, want 'dogs'", got)
	}
}

func TestLemmaMapPOSDisambiguation(t *testing.T) {
	m := sampleMap()

	if got := m.Lemma("saw", POSVerb); got != "see" {
		t.Errorf("Lemma('saw', verb) = %q, want 'see'", got)
	}
	if got := m.Lemma("saw", POSNoun); got != "saw" {
		t.Errorf("Lemma('saw', noun) = %q, want 'saw'", got)
	}
	// No hint: nouns are tried before verbs
	if got := m.Lemma("saw", POSNone); got != "saw" {
		t.Errorf("Lemma('saw') = %q, want 'saw'", got)
	}
	// A hint that matches nothing does not fall through to other classes
	if got := m.Lemma("dogs", POSVerb); got != "dogs" {
		t.Errorf("Lemma('dogs', verb) = %q, want 'dogs'", got)
	}
}

func TestLemmaMapForms(t *testing.T) {
	m := sampleMap()

	forms := m.Forms("run")
	if len(forms) != 4 || forms[0] != "run" {
		t.Errorf("Forms('run') = %v, want run first and 4 entries", forms)
	}

	forms[0] = "mutated"
	if m.Forms("run")[0] != "run" {
		t.Error("Forms should return a copy")
	}

	if got := m.Forms("unknown"); len(got) != 1 || got[0] != "unknown" {
		t.Errorf("Forms('unknown') = %v, want [unknown]", got)
	}
}

func TestLemmaMapFirstEntryWins(t *testing.T) {
	m := New([]Entry{
		{Lemma: "lie", POS: POSVerb, Forms: []string{"lay"}},
		{Lemma: "lay", POS: POSVerb, Forms: []string{"laid"}},
	})

	if got := m.Lemma("lay", POSVerb); got != "lie" {
		t.Errorf("Lemma('lay') = %q, want 'lie'", got)
	}
}

func TestLoadFromYAML(t *testing.T) {
	m, err := LoadFromYAML(filepath.Join("testdata", "lemmas.yaml"))
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}

	if got := m.Lemma("ran", POSNone); got != "run" {
		t.Errorf("Lemma('ran') = %q, want 'run'", got)
	}
	if got := m.Lemma("agreed", POSVerb); got != "agree" {
		t.Errorf("Lemma('agreed') = %q, want 'agree'", got)
	}
	// Untagged entry applies for any hint
	if got := m.Lemma("better", POSAdjective); got != "good" {
		t.Errorf("Lemma('better', adj) = %q, want 'good'", got)
	}

	stats := m.Stats()
	if stats.Lemmas != 4 {
		t.Errorf("Lemmas = %d, want 4", stats.Lemmas)
	}
	if stats.Keys != 13 {
		t.Errorf("Keys = %d, want 13", stats.Keys)
	}
}

func TestLoadFromYAMLInvalidPOS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := "lemmas:\n  - lemma: run\n    pos: gerund\n    forms: [running]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFromYAML(path)
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("LoadFromYAML error = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadFromYAMLMissingFile(t *testing.T) {
	if _, err := LoadFromYAML(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEntriesNormalized(t *testing.T) {
	m := New([]Entry{{Lemma: " Run ", POS: POSVerb, Forms: []string{"RAN", "ran", ""}}})

	entries := m.Entries()
	if len(entries) != 1 {
		t.Fatalf("Entries() len = %d, want 1", len(entries))
	}
	if entries[0].Lemma != "run" {
		t.Errorf("Lemma = %q, want 'run'", entries[0].Lemma)
	}
	if len(entries[0].Forms) != 1 || entries[0].Forms[0] != "ran" {
		t.Errorf("Forms = %v, want [ran]", entries[0].Forms)
	}
}
