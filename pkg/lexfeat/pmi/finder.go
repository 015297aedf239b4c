package pmi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/lexfeat/pkg/lexfeat/freq"
	"github.com/cognicore/lexfeat/pkg/lexfeat/internalerr"
	"github.com/cognicore/lexfeat/pkg/lexfeat/ngram"
)

// Measure selects the association measure used to rank n-grams.
type Measure int

const (
	MeasurePMI Measure = iota
	MeasureNPMI
	// MeasureRawFreq is the n-gram count divided by corpus size.
	MeasureRawFreq
)

func (m Measure) String() string {
	switch m {
	case MeasurePMI:
		return "pmi"
	case MeasureNPMI:
		return "npmi"
	case MeasureRawFreq:
		return "raw_freq"
	default:
		return fmt.Sprintf("Measure(%d)", int(m))
	}
}

// ParseMeasure converts a config value to a Measure.
func ParseMeasure(s string) (Measure, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pmi", "":
		return MeasurePMI, nil
	case "npmi":
		return MeasureNPMI, nil
	case "raw_freq", "freq":
		return MeasureRawFreq, nil
	default:
		return 0, fmt.Errorf("%w: unknown association measure %q", internalerr.ErrInvalidConfig, s)
	}
}

// Scored is an n-gram with its count and association score.
type Scored struct {
	Gram  ngram.NGram
	Count int
	Score Score
}

// Finder finds collocations in a token sequence. It holds unigram counts for
// the whole sequence and counts of its n-grams. A Finder is never modified;
// ApplyFreqFilter returns a new one.
type Finder struct {
	n       int
	words   *freq.Table[string]
	grams   *ngram.FrequencyTable
	windows []ngram.NGram // every n-gram of the sequence, in order
}

// NewFinder counts the unigrams and n-grams of tokens.
func NewFinder(tokens []string, n int) (*Finder, error) {
	grams, err := ngram.Build(tokens, n)
	if err != nil {
		return nil, err
	}
	return &Finder{
		n:       n,
		words:   freq.New(tokens),
		grams:   ngram.Count(grams),
		windows: grams,
	}, nil
}

// Size returns the n-gram size.
func (f *Finder) Size() int {
	return f.n
}

// Words returns the unigram frequency table.
func (f *Finder) Words() *freq.Table[string] {
	return f.words
}

// Windows returns every n-gram of the token sequence in order, duplicates
// included. The frequency filter does not apply to it.
func (f *Finder) Windows() []ngram.NGram {
	out := make([]ngram.NGram, len(f.windows))
	for i, g := range f.windows {
		out[i] = append(ngram.NGram(nil), g...)
	}
	return out
}

// NGrams returns the n-gram frequency table.
func (f *Finder) NGrams() *ngram.FrequencyTable {
	return f.grams
}

// ApplyFreqFilter returns a finder that only considers n-grams seen at least
// min times. Unigram counts and corpus size are unchanged, so scores of the
// surviving n-grams do not move.
func (f *Finder) ApplyFreqFilter(min int) *Finder {
	return &Finder{
		n:       f.n,
		words:   f.words,
		grams:   f.grams.Filter(min),
		windows: f.windows,
	}
}

// Score computes the association score of g under measure m using the
// finder's counts. Grams the finder has never seen score Undefined.
func (f *Finder) Score(g ngram.NGram, m Measure) Score {
	total := int64(f.words.Total())
	count := int64(f.grams.Count(g))

	switch m {
	case MeasureRawFreq:
		if total == 0 || count == 0 {
			return Undefined
		}
		return Defined(float64(count) / float64(total))
	case MeasureNPMI:
		return JointNPMI(total, count, f.unigramCounts(g)...)
	default:
		return JointPMI(total, count, f.unigramCounts(g)...)
	}
}

func (f *Finder) unigramCounts(g ngram.NGram) []int64 {
	counts := make([]int64, len(g))
	for i, w := range g {
		counts[i] = int64(f.words.Count(w))
	}
	return counts
}

// ScoreNGrams scores every n-gram and returns them best first. Ties keep
// first-seen order; undefined scores sort last.
func (f *Finder) ScoreNGrams(m Measure) []Scored {
	grams := f.grams.Grams()
	scored := make([]Scored, len(grams))
	for i, g := range grams {
		scored[i] = Scored{
			Gram:  g,
			Count: f.grams.Count(g),
			Score: f.Score(g, m),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		vi, oki := scored[i].Score.Value()
		vj, okj := scored[j].Score.Value()
		if oki != okj {
			return oki
		}
		return vi > vj
	})
	return scored
}

// NBest returns the k highest scoring n-grams. k <= 0 returns all of them.
func (f *Finder) NBest(m Measure, k int) []ngram.NGram {
	scored := f.ScoreNGrams(m)
	if k > 0 && len(scored) > k {
		scored = scored[:k]
	}
	out := make([]ngram.NGram, len(scored))
	for i, s := range scored {
		out[i] = s.Gram
	}
	return out
}
