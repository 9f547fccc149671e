// Package similarity scores how alike two strings are as character sequences.
//
// The score is the Ratcliff/Obershelp ratio 2*M/T, where M is the number of
// characters in the matching blocks found by a longest-common-substring
// decomposition and T is the combined length of both strings. Characters are
// Unicode code points.
package similarity

import (
	"github.com/pmezard/go-difflib/difflib"
)

// Seq is a string split into code points, the unit the sequence matcher compares.
type Seq struct {
	text  string
	runes []string
}

// Split prepares s for repeated comparisons.
func Split(s string) Seq {
	runes := make([]string, 0, len(s))
	for _, r := range s {
		runes = append(runes, string(r))
	}
	return Seq{text: s, runes: runes}
}

// Len returns the number of code points.
func (s Seq) Len() int {
	return len(s.runes)
}

// String returns the original text.
func (s Seq) String() string {
	return s.text
}

// Ratio returns the similarity of a and b in [0, 1].
func Ratio(a, b string) float64 {
	return RatioSeq(Split(a), Split(b))
}

// RatioSeq is Ratio over prepared sequences.
// Two empty sequences are identical and score 1.
func RatioSeq(a, b Seq) float64 {
	a, b = ordered(a, b)
	return difflib.NewMatcher(a.runes, b.runes).Ratio()
}

// Exceeds computes the ratio of a and b only when it could be strictly greater
// than floor. The cheap upper bounds of the matcher rule out most candidates
// without computing matching blocks. It reports false when the ratio is
// certainly <= floor.
func Exceeds(a, b Seq, floor float64) (float64, bool) {
	a, b = ordered(a, b)
	m := difflib.NewMatcher(a.runes, b.runes)
	if m.RealQuickRatio() <= floor {
		return 0, false
	}
	if m.QuickRatio() <= floor {
		return 0, false
	}
	ratio := m.Ratio()
	return ratio, ratio > floor
}

// ordered fixes the argument order so the score does not depend on it.
// The greedy block search can pick different blocks for (a, b) and (b, a).
func ordered(a, b Seq) (Seq, Seq) {
	if b.text < a.text {
		return b, a
	}
	return a, b
}
