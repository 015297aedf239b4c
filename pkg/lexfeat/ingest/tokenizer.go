package ingest

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
)

// Tokenize splits text into word tokens. Contiguous runs of letters and
// digits form a token; whitespace, punctuation and symbols are boundaries.
// Case is preserved. The text is NFC-normalized first so that a decomposed
// accent stays inside its word.
//
// Empty or whitespace-only text yields an empty slice. Text that is not
// valid UTF-8 is rejected with ErrInvalidInput.
func Tokenize(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", internalerr.ErrInvalidInput)
	}

	text = norm.NFC.String(text)
	tokens := []string{}
	var current strings.Builder

	for _, r := range text {
		if isWordRune(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	// Don't forget the last token
	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}

	return tokens, nil
}

// isWordRune reports whether r belongs inside a token. Combining marks that
// survive NFC (no precomposed form) are kept with their base letter.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r)
}
