package pmi

import (
	"math"
	"strconv"
)

// Score is an association score that may be undefined. The zero value is
// Undefined.
type Score struct {
	value   float64
	defined bool
}

// Undefined is returned when a score cannot be computed because a count it
// divides by or takes the log of is zero.
var Undefined = Score{}

// Defined wraps a computed value.
func Defined(v float64) Score {
	return Score{value: v, defined: true}
}

// Value returns the score and whether it is defined.
func (s Score) Value() (float64, bool) {
	return s.value, s.defined
}

// IsUndefined reports whether the score could not be computed.
func (s Score) IsUndefined() bool {
	return !s.defined
}

func (s Score) String() string {
	if !s.defined {
		return "undefined"
	}
	return strconv.FormatFloat(s.value, 'f', 4, 64)
}

// PMI calculates the pointwise mutual information of a bigram (a, b)
//
// PMI(a,b) = log2( (N_ab/N) / ((N_a/N)(N_b/N)) ) = log2(N * N_ab / (N_a * N_b))
//
// Where:
//   - N = corpus size in tokens
//   - N_a, N_b = unigram counts of a and b
//   - N_ab = count of the bigram
//
// The score is Undefined when any of the counts is zero.
func PMI(n, nA, nB, nAB int64) Score {
	return JointPMI(n, nAB, nA, nB)
}

// JointPMI generalizes PMI to an n-gram by comparing the joint probability of
// the gram with the product of its unigram probabilities:
//
// PMI(w1..wk) = log2( N^(k-1) * N_g / (N_w1 * ... * N_wk) )
//
// Undefined when N, N_g or any unigram count is zero, or no unigram counts
// are given.
func JointPMI(n, nGram int64, unigrams ...int64) Score {
	if n <= 0 || nGram <= 0 || len(unigrams) == 0 {
		return Undefined
	}

	// Work in log space; N^(k-1) overflows quickly for long grams.
	v := math.Log2(float64(nGram)) + float64(len(unigrams)-1)*math.Log2(float64(n))
	for _, c := range unigrams {
		if c <= 0 {
			return Undefined
		}
		v -= math.Log2(float64(c))
	}
	return Defined(v)
}

// NPMI calculates normalized PMI (range: -1 to 1)
// NPMI(a,b) = PMI(a,b) / -log2(P(a,b))
//
// Undefined when PMI is undefined or when P(a,b) = 1.
func NPMI(n, nA, nB, nAB int64) Score {
	return JointNPMI(n, nAB, nA, nB)
}

// JointNPMI is NPMI for a k-gram. Joint PMI is bounded above by
// (k-1) * -log2 P(g), so that is the normalizer; the result stays in [-1, 1]
// for any k >= 2. A unigram has no association and is Undefined.
func JointNPMI(n, nGram int64, unigrams ...int64) Score {
	if len(unigrams) < 2 {
		return Undefined
	}
	p := JointPMI(n, nGram, unigrams...)
	if p.IsUndefined() {
		return Undefined
	}

	logP := math.Log2(float64(nGram) / float64(n))
	if logP == 0 {
		return Undefined
	}

	v, _ := p.Value()
	return Defined(v / (float64(len(unigrams)-1) * -logP))
}
