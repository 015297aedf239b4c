package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/lexicon"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), filepath.Join(t.TempDir(), "resources.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestStopwordsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.UpsertStopwords(ctx, "English", []string{"The", "a", "of", "the", " "}); err != nil {
		t.Fatalf("UpsertStopwords: %v", err)
	}

	got, err := st.Stopwords(ctx, "english")
	if err != nil {
		t.Fatalf("Stopwords: %v", err)
	}
	want := []string{"a", "of", "the"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Stopwords() = %v, want %v", got, want)
	}
}

func TestUpsertStopwordsReplaces(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	if err := st.UpsertStopwords(ctx, "english", []string{"the", "a"}); err != nil {
		t.Fatal(err)
	}
	if err := st.UpsertStopwords(ctx, "english", []string{"of"}); err != nil {
		t.Fatal(err)
	}
	if err := st.UpsertStopwords(ctx, "french", []string{"le"}); err != nil {
		t.Fatal(err)
	}

	got, err := st.Stopwords(ctx, "english")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"of"}) {
		t.Errorf("Stopwords(english) = %v, want [of]", got)
	}

	fr, err := st.Stopwords(ctx, "french")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(fr, []string{"le"}) {
		t.Errorf("Stopwords(french) = %v, want [le]", fr)
	}
}

func TestStopwordsNotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.Stopwords(context.Background(), "german")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("Stopwords error = %v, want ErrNotFound", err)
	}
}

func TestLemmaMapRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	entries := []lexicon.Entry{
		{Lemma: "run", POS: lexicon.POSVerb, Forms: []string{"ran", "running", "runs"}},
		{Lemma: "saw", POS: lexicon.POSNoun, Forms: []string{"saws"}},
		{Lemma: "see", POS: lexicon.POSVerb, Forms: []string{"saw", "seen"}},
		{Lemma: "good", Forms: []string{"better", "best"}},
	}
	if err := st.UpsertLemmas(ctx, entries); err != nil {
		t.Fatalf("UpsertLemmas: %v", err)
	}

	m, err := st.LemmaMap(ctx)
	if err != nil {
		t.Fatalf("LemmaMap: %v", err)
	}

	original := lexicon.New(entries)
	tests := []struct {
		form string
		pos  lexicon.POS
	}{
		{"ran", lexicon.POSNone},
		{"running", lexicon.POSVerb},
		{"saw", lexicon.POSVerb},
		{"saw", lexicon.POSNoun},
		{"saw", lexicon.POSNone},
		{"better", lexicon.POSAdjective},
		{"unknown", lexicon.POSNone},
	}
	for _, tt := range tests {
		if got, want := m.Lemma(tt.form, tt.pos), original.Lemma(tt.form, tt.pos); got != want {
			t.Errorf("Lemma(%q, %q) = %q, want %q", tt.form, tt.pos, got, want)
		}
	}

	if m.Stats().Keys != original.Stats().Keys {
		t.Errorf("Keys = %d, want %d", m.Stats().Keys, original.Stats().Keys)
	}
}

func TestLemmaMapFirstEntryWinsAfterReload(t *testing.T) {
	ctx := context.Background()
	st := openTestStore(t)

	entries := []lexicon.Entry{
		{Lemma: "lie", POS: lexicon.POSVerb, Forms: []string{"lay"}},
		{Lemma: "lay", POS: lexicon.POSVerb, Forms: []string{"laid"}},
	}
	if err := st.UpsertLemmas(ctx, entries); err != nil {
		t.Fatal(err)
	}

	m, err := st.LemmaMap(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Lemma("lay", lexicon.POSVerb); got != "lie" {
		t.Errorf("Lemma('lay') = %q, want 'lie'", got)
	}
	if got := m.Lemma("laid", lexicon.POSVerb); got != "lay" {
		t.Errorf("Lemma('laid') = %q, want 'lay'", got)
	}
}

func TestLemmaMapEmpty(t *testing.T) {
	st := openTestStore(t)

	_, err := st.LemmaMap(context.Background())
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("LemmaMap error = %v, want ErrNotFound", err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "resources.db")

	st, err := Open(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := st.UpsertStopwords(ctx, "english", []string{"the"}); err != nil {
		t.Fatal(err)
	}
	st.Close()

	st, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	got, err := st.Stopwords(ctx, "english")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []string{"the"}) {
		t.Errorf("Stopwords() = %v, want [the]", got)
	}
}
