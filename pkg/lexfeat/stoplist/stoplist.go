package stoplist

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"github.com/kljensen/snowball/french"
	"github.com/kljensen/snowball/russian"
	"github.com/kljensen/snowball/spanish"
	"github.com/kljensen/snowball/swedish"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
)

// builtinLists maps a language to the stop word predicate shipped with the
// snowball stemmer for that language.
var builtinLists = map[string]func(string) bool{
	"english": english.IsStopWord,
	"french":  french.IsStopWord,
	"russian": russian.IsStopWord,
	"spanish": spanish.IsStopWord,
	"swedish": swedish.IsStopWord,
}

// Set is an immutable stop word set. Membership is exact on the lower-cased
// word. A set may be backed by a built-in language list in addition to its
// explicit words.
type Set struct {
	language string
	words    map[string]struct{}
	builtin  func(string) bool
}

// New creates a set from the given words.
func New(words []string) Set {
	stops := make(map[string]struct{}, len(words))
	for _, w := range words {
		stops[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return Set{words: stops}
}

// ForLanguage returns the built-in stop word set for a language.
func ForLanguage(language string) (Set, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	fn, ok := builtinLists[language]
	if !ok {
		return Set{}, fmt.Errorf("%w: no built-in stopwords for language %q", internalerr.ErrInvalidConfig, language)
	}
	return Set{language: language, words: map[string]struct{}{}, builtin: fn}, nil
}

// With returns a new set holding the receiver's words plus the given ones.
// The receiver is left untouched.
func (s Set) With(words ...string) Set {
	stops := make(map[string]struct{}, len(s.words)+len(words))
	for w := range s.words {
		stops[w] = struct{}{}
	}
	for _, w := range words {
		stops[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	return Set{language: s.language, words: stops, builtin: s.builtin}
}

// Contains checks if a word is a stopword.
func (s Set) Contains(word string) bool {
	word = strings.ToLower(word)
	if _, ok := s.words[word]; ok {
		return true
	}
	return s.builtin != nil && s.builtin(word)
}

// Keep reports whether a token survives filtering: it is not a stopword and
// is not made up solely of punctuation or symbols.
func (s Set) Keep(token string) bool {
	return !isPunctuation(token) && !s.Contains(token)
}

// Language returns the built-in list backing the set, or "".
func (s Set) Language() string {
	return s.language
}

// Len returns the number of explicit words; built-in lists are not counted.
func (s Set) Len() int {
	return len(s.words)
}

// All returns the explicit words of the set.
func (s Set) All() []string {
	result := make([]string, 0, len(s.words))
	for w := range s.words {
		result = append(result, w)
	}
	return result
}

// Filter lower-cases tokens and drops stopwords and punctuation-only tokens,
// preserving the order of the survivors. Filtering its own output with the
// same set returns it unchanged.
func Filter(tokens []string, set Set) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !set.Keep(tok) {
			continue
		}
		out = append(out, strings.ToLower(tok))
	}
	return out
}

// isPunctuation reports whether token holds only punctuation, symbols or spaces.
func isPunctuation(token string) bool {
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
