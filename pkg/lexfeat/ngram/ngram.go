package ngram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cognicore/lexfeat/pkg/lexfeat/freq"
	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
)

// NGram is an ordered tuple of adjacent tokens.
type NGram []string

// Key returns a structural, order-sensitive key for use in maps. Each token
// is written as its byte length, a colon, then the token, so distinct grams
// never share a key whatever bytes the tokens hold.
func (g NGram) Key() string {
	var b strings.Builder
	for _, tok := range g {
		b.WriteString(strconv.Itoa(len(tok)))
		b.WriteByte(':')
		b.WriteString(tok)
	}
	return b.String()
}

// FromKey rebuilds an NGram from its Key. Decoding stops at the first
// malformed element.
func FromKey(key string) NGram {
	g := NGram{}
	for key != "" {
		colon := strings.IndexByte(key, ':')
		if colon < 0 {
			break
		}
		size, err := strconv.Atoi(key[:colon])
		if err != nil || size < 0 || colon+1+size > len(key) {
			break
		}
		g = append(g, key[colon+1:colon+1+size])
		key = key[colon+1+size:]
	}
	return g
}

// Equal reports whether two n-grams hold the same tokens in the same order.
func (g NGram) Equal(other NGram) bool {
	if len(g) != len(other) {
		return false
	}
	for i := range g {
		if g[i] != other[i] {
			return false
		}
	}
	return true
}

func (g NGram) String() string {
	return "(" + strings.Join(g, ", ") + ")"
}

// Build slides a window of size n over tokens with stride 1 and returns the
// n-grams in order. Fewer than n tokens yields an empty slice; n < 1 is
// rejected with ErrInvalidParameter.
func Build(tokens []string, n int) ([]NGram, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n-gram size %d, must be >= 1", internalerr.ErrInvalidParameter, n)
	}
	if len(tokens) < n {
		return []NGram{}, nil
	}

	grams := make([]NGram, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		gram := make(NGram, n)
		copy(gram, tokens[i:i+n])
		grams = append(grams, gram)
	}
	return grams, nil
}

// Bigrams returns the adjacent token pairs of tokens.
func Bigrams(tokens []string) []NGram {
	grams, _ := Build(tokens, 2)
	return grams
}

// Entry is one n-gram of a frequency table.
type Entry struct {
	Gram  NGram
	Count int
}

// FrequencyTable counts n-grams. Like freq.Table it is immutable; Filter
// returns a new table.
type FrequencyTable struct {
	table *freq.Table[string]
}

// Count builds a frequency table from a sequence of n-grams.
func Count(grams []NGram) *FrequencyTable {
	keys := make([]string, len(grams))
	for i, g := range grams {
		keys[i] = g.Key()
	}
	return &FrequencyTable{table: freq.New(keys)}
}

// Count returns how often g occurred.
func (f *FrequencyTable) Count(g NGram) int {
	return f.table.Count(g.Key())
}

// Total returns the number of n-grams counted, duplicates included.
func (f *FrequencyTable) Total() int {
	return f.table.Total()
}

// Len returns the number of distinct n-grams.
func (f *FrequencyTable) Len() int {
	return f.table.Len()
}

// Grams returns the distinct n-grams in first-seen order.
func (f *FrequencyTable) Grams() []NGram {
	keys := f.table.Keys()
	out := make([]NGram, len(keys))
	for i, k := range keys {
		out[i] = FromKey(k)
	}
	return out
}

// MostCommon returns the k most frequent n-grams, ties broken by first-seen
// order. k <= 0 returns all of them.
func (f *FrequencyTable) MostCommon(k int) []Entry {
	entries := f.table.MostCommon(k)
	out := make([]Entry, len(entries))
	for i, e := range entries {
		out[i] = Entry{Gram: FromKey(e.Key), Count: e.Count}
	}
	return out
}

// Filter returns a new table with only the n-grams counted at least min times.
func (f *FrequencyTable) Filter(min int) *FrequencyTable {
	return &FrequencyTable{table: f.table.AtLeast(min)}
}
