package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"
	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/lexicon"
)

// TaggedToken is a token with its Penn Treebank tag and the coarse part of
// speech derived from it.
type TaggedToken struct {
	Text string
	Tag  string
	POS  lexicon.POS
}

// Tag tokenizes and part-of-speech tags text with the prose averaged
// perceptron model. Tokens follow the Tokenize rule: only runs of letters and
// digits are returned, each carrying the tag of the prose token it came from.
// Punctuation tokens yield nothing, and so do the clitics the tagger splits
// off contractions ("n't", "'s", "'ll"). Case is preserved.
func Tag(text string) ([]TaggedToken, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: text is not valid UTF-8", internalerr.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return []TaggedToken{}, nil
	}

	doc, err := prose.NewDocument(norm.NFC.String(text),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("tag text: %w", err)
	}

	toks := doc.Tokens()
	tagged := make([]TaggedToken, 0, len(toks))
	for _, tok := range toks {
		if isClitic(tok.Text) {
			continue
		}
		pos := PennToPOS(tok.Tag)
		for _, word := range strings.FieldsFunc(tok.Text, func(r rune) bool { return !isWordRune(r) }) {
			tagged = append(tagged, TaggedToken{Text: word, Tag: tok.Tag, POS: pos})
		}
	}
	return tagged, nil
}

// isClitic reports whether tok is a contraction fragment such as "n't" or
// "'s".
func isClitic(tok string) bool {
	if strings.HasPrefix(tok, "'") || strings.HasPrefix(tok, "’") {
		return true
	}
	lower := strings.ToLower(tok)
	return lower == "n't" || lower == "n’t"
}

// PennToPOS maps a Penn Treebank tag to a coarse part of speech:
// NN* -> noun, VB* -> verb, JJ* -> adjective, RB*/RP -> adverb.
// Every other tag maps to POSNone.
func PennToPOS(tag string) lexicon.POS {
	switch {
	case strings.HasPrefix(tag, "NN"):
		return lexicon.POSNoun
	case strings.HasPrefix(tag, "VB"):
		return lexicon.POSVerb
	case strings.HasPrefix(tag, "JJ"):
		return lexicon.POSAdjective
	case strings.HasPrefix(tag, "RB"), tag == "RP":
		return lexicon.POSAdverb
	default:
		return lexicon.POSNone
	}
}
