// Package normalize maps tokens to a canonical root form with one of two
// interchangeable strategies: Snowball stemming or lemma lookup.
package normalize

import (
	"fmt"
	"strings"

	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/lexicon"
)

// Strategy selects how tokens are normalized.
type Strategy int

const (
	// Stem strips suffixes by rule.
	Stem Strategy = iota
	// Lemmatize looks tokens up in a lemma map.
	Lemmatize
)

func (s Strategy) String() string {
	switch s {
	case Stem:
		return "stem"
	case Lemmatize:
		return "lemmatize"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a config value to a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stem", "stemming":
		return Stem, nil
	case "lemmatize", "lemmatization", "lemma":
		return Lemmatize, nil
	default:
		return 0, fmt.Errorf("%w: unknown normalization strategy %q", internalerr.ErrInvalidConfig, s)
	}
}

// Config configures a Normalizer.
type Config struct {
	Strategy Strategy
	Language string             // stemming language, defaults to english
	Lemmas   *lexicon.LemmaMap // required for Lemmatize
}

// Normalizer applies the configured strategy to token sequences.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	strategy Strategy
	apply    func(token string, pos lexicon.POS) string
}

// New creates a Normalizer for the given strategy.
func New(cfg Config) (*Normalizer, error) {
	switch cfg.Strategy {
	case Stem:
		lang := cfg.Language
		if lang == "" {
			lang = "english"
		}
		stemmer, err := NewStemmer(lang)
		if err != nil {
			return nil, err
		}
		return &Normalizer{
			strategy: Stem,
			apply: func(token string, _ lexicon.POS) string {
				return stemmer.Stem(token)
			},
		}, nil

	case Lemmatize:
		if cfg.Lemmas == nil {
			return nil, fmt.Errorf("%w: lemmatization requires a lemma map", internalerr.ErrInvalidConfig)
		}
		lemmas := cfg.Lemmas
		return &Normalizer{
			strategy: Lemmatize,
			apply:    lemmas.Lemma,
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown normalization strategy %v", internalerr.ErrInvalidConfig, cfg.Strategy)
	}
}

// Strategy returns the strategy the normalizer applies.
func (n *Normalizer) Strategy() Strategy {
	return n.strategy
}

// Token normalizes a single token with an optional part-of-speech hint.
// The stemming strategy ignores the hint.
func (n *Normalizer) Token(token string, pos lexicon.POS) string {
	return n.apply(token, pos)
}

// Normalize returns a new slice of the same length and order holding the
// normalized form of each token.
func (n *Normalizer) Normalize(tokens []string) []string {
	return n.NormalizeTagged(tokens, nil)
}

// NormalizeTagged is Normalize with per-token part-of-speech hints aligned to
// tokens. Tokens past the end of hints are normalized without a hint.
func (n *Normalizer) NormalizeTagged(tokens []string, hints []lexicon.POS) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		pos := lexicon.POSNone
		if i < len(hints) {
			pos = hints[i]
		}
		out[i] = n.apply(tok, pos)
	}
	return out
}
