package normalize

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
)

// maxStemPasses bounds the fixed-point loop in Stemmer.Stem. Snowball never
// lengthens a word, so a handful of passes always settles.
const maxStemPasses = 5

var stemLanguages = map[string]bool{
	"english": true,
	"spanish": true,
	"french":  true,
	"russian": true,
	"swedish": true,
}

// Stemmer reduces words to stems with the Snowball algorithm for one language.
//
// Stems are not guaranteed to be dictionary words, and irregular forms are not
// reduced: "running" and "runs" become "run" but "ran" stays "ran", and
// "agreed" does not come back as "agree". These are accepted properties of
// suffix stripping, not defects.
type Stemmer struct {
	language string
}

// NewStemmer creates a stemmer for a supported Snowball language.
func NewStemmer(language string) (*Stemmer, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if !stemLanguages[language] {
		return nil, fmt.Errorf("%w: no stemmer for language %q", internalerr.ErrInvalidConfig, language)
	}
	return &Stemmer{language: language}, nil
}

// Language returns the stemmer's language.
func (s *Stemmer) Language() string {
	return s.language
}

// Stem returns the stem of word. The Snowball rules are re-applied until the
// output stops changing, so stemming a stem returns the same stem. If the
// stemmer fails the word is returned unchanged.
func (s *Stemmer) Stem(word string) string {
	current := word
	for i := 0; i < maxStemPasses; i++ {
		stemmed, err := snowball.Stem(current, s.language, true)
		if err != nil || stemmed == "" {
			if i == 0 {
				return word
			}
			return current
		}
		if stemmed == current {
			return current
		}
		current = stemmed
	}
	return current
}
