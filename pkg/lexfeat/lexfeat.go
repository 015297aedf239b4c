// Package lexfeat composes the feature pipeline: tokenize, filter stop
// words, normalize, then extract and score n-grams.
package lexfeat

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/lexfeat/pkg/lexfeat/config"
	"github.com/cognicore/lexfeat/pkg/lexfeat/freq"
	"github.com/cognicore/lexfeat/pkg/lexfeat/ingest"
	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/lexicon"
	"github.com/cognicore/lexfeat/pkg/lexfeat/ngram"
	"github.com/cognicore/lexfeat/pkg/lexfeat/normalize"
	"github.com/cognicore/lexfeat/pkg/lexfeat/pmi"
	"github.com/cognicore/lexfeat/pkg/lexfeat/stoplist"
)

// Options configures a Pipeline
type Options struct {
	Stopwords  stoplist.Set
	Normalizer *normalize.Normalizer
	N          int // n-gram size, defaults to 2
	MinCount   int // n-grams seen fewer times are not scored
	TopK       int // collocations to keep, 0 keeps all
	Measure    pmi.Measure
	// Tagging takes tokens from the part-of-speech tagger and passes the
	// tags to the normalizer as hints.
	Tagging bool
}

// Pipeline runs text through every feature stage. It is safe for
// concurrent use.
type Pipeline struct {
	opts Options

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// New creates a Pipeline with the given options
func New(opts Options) (*Pipeline, error) {
	if opts.Normalizer == nil {
		return nil, fmt.Errorf("%w: normalizer is required", internalerr.ErrInvalidConfig)
	}
	if opts.N == 0 {
		opts.N = 2
	}
	if opts.N < 1 {
		return nil, fmt.Errorf("%w: n-gram size %d, must be >= 1", internalerr.ErrInvalidParameter, opts.N)
	}
	if opts.MinCount < 0 || opts.TopK < 0 {
		return nil, fmt.Errorf("%w: min count and top k must not be negative", internalerr.ErrInvalidParameter)
	}

	return &Pipeline{
		opts:    opts,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// FromComponents creates a Pipeline from loaded configuration.
func FromComponents(c *config.Components) (*Pipeline, error) {
	return New(Options{
		Stopwords:  c.Stopwords,
		Normalizer: c.Normalizer,
		N:          c.NGram.N,
		MinCount:   c.NGram.MinCount,
		TopK:       c.NGram.TopK,
		Measure:    c.Measure,
		Tagging:    c.Tagging,
	})
}

// Analysis is the snapshot produced by one pipeline run.
type Analysis struct {
	ID         string
	Tokens     []string // as produced by the tokenizer, case preserved
	Filtered   []string // lower-cased, stopwords and punctuation removed
	Normalized []string // stems or lemmas, aligned with Filtered
	NGrams     []ngram.NGram
	// Words counts the normalized tokens.
	Words *freq.Table[string]
	// Frequencies counts NGrams, restricted to those seen MinCount times.
	Frequencies  *ngram.FrequencyTable
	Collocations []pmi.Scored
}

// Analyze runs text through the pipeline.
func (p *Pipeline) Analyze(text string) (Analysis, error) {
	a := Analysis{ID: p.nextID()}

	var hints []lexicon.POS
	if p.opts.Tagging {
		tagged, err := ingest.Tag(text)
		if err != nil {
			return Analysis{}, err
		}
		a.Tokens = make([]string, len(tagged))
		for i, tok := range tagged {
			a.Tokens[i] = tok.Text
		}
		a.Filtered, hints = filterTagged(tagged, p.opts.Stopwords)
	} else {
		tokens, err := ingest.Tokenize(text)
		if err != nil {
			return Analysis{}, err
		}
		a.Tokens = tokens
		a.Filtered = stoplist.Filter(tokens, p.opts.Stopwords)
	}

	a.Normalized = p.opts.Normalizer.NormalizeTagged(a.Filtered, hints)

	finder, err := pmi.NewFinder(a.Normalized, p.opts.N)
	if err != nil {
		return Analysis{}, err
	}
	a.NGrams = finder.Windows()
	if p.opts.MinCount > 0 {
		finder = finder.ApplyFreqFilter(p.opts.MinCount)
	}
	a.Words = finder.Words()
	a.Frequencies = finder.NGrams()

	scored := finder.ScoreNGrams(p.opts.Measure)
	if p.opts.TopK > 0 && len(scored) > p.opts.TopK {
		scored = scored[:p.opts.TopK]
	}
	a.Collocations = scored

	slog.Debug("Analysis completed",
		"id", a.ID,
		"tokens", len(a.Tokens),
		"filtered", len(a.Filtered),
		"ngrams", len(a.NGrams),
		"distinctNgrams", a.Frequencies.Len(),
		"strategy", p.opts.Normalizer.Strategy().String(),
		"measure", p.opts.Measure.String())

	return a, nil
}

// AnalyzeHTML extracts the visible text of an HTML document and analyzes it.
func (p *Pipeline) AnalyzeHTML(doc string) (Analysis, error) {
	text, err := ingest.ExtractText(doc)
	if err != nil {
		return Analysis{}, err
	}
	return p.Analyze(text)
}

// filterTagged applies the stopword filter to tagged tokens, keeping the
// part-of-speech hints aligned with the surviving tokens.
func filterTagged(tagged []ingest.TaggedToken, stops stoplist.Set) ([]string, []lexicon.POS) {
	tokens := make([]string, 0, len(tagged))
	hints := make([]lexicon.POS, 0, len(tagged))
	for _, tok := range tagged {
		if !stops.Keep(tok.Text) {
			continue
		}
		tokens = append(tokens, strings.ToLower(tok.Text))
		hints = append(hints, tok.POS)
	}
	return tokens, hints
}

// nextID returns a ULID; the monotonic entropy source is not safe for
// concurrent use.
func (p *Pipeline) nextID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Now(), p.entropy).String()
}
