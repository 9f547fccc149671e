// Package matcher links source records to the most similar reference record.
package matcher

import (
	"github.com/Veraticus/waybill-match/internal/model"
	"github.com/Veraticus/waybill-match/internal/normalize"
	"github.com/Veraticus/waybill-match/internal/similarity"
)

// DefaultThreshold is the minimum similarity a best candidate needs to be accepted.
const DefaultThreshold = 0.6

// Matcher finds the best reference record for a normalized key.
type Matcher interface {
	FindBestMatch(key string, threshold float64) model.MatchResult
}

type entry struct {
	record *model.ReferenceRecord
	seq    similarity.Seq
}

// Index is an immutable, pre-normalized view of a reference set.
// It is safe for concurrent use.
type Index struct {
	entries []entry
}

var _ Matcher = (*Index)(nil)

// NewIndex normalizes every recipient once. Iteration order follows refs.
func NewIndex(refs []model.ReferenceRecord) *Index {
	idx := &Index{entries: make([]entry, len(refs))}
	for i := range refs {
		idx.entries[i] = entry{
			record: &refs[i],
			seq:    similarity.Split(normalize.Key(refs[i].Recipient)),
		}
	}
	return idx
}

// Len returns the number of reference records.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// FindBestMatch scans every reference record in order and keeps the highest
// score. A later record with an equal score never replaces an earlier one.
// The best candidate is accepted when its score is >= threshold.
func (idx *Index) FindBestMatch(key string, threshold float64) model.MatchResult {
	keySeq := similarity.Split(key)

	var best *entry
	bestScore := 0.0
	for i := range idx.entries {
		e := &idx.entries[i]
		score, ok := similarity.Exceeds(keySeq, e.seq, bestScore)
		if !ok {
			continue
		}
		best = e
		bestScore = score
	}

	if best == nil || bestScore < threshold {
		return model.Unmatched()
	}
	return model.MatchResult{
		Reference:           best.record,
		NormalizedRecipient: best.seq.String(),
		Score:               bestScore,
	}
}

// FindBestMatch matches a single key against refs. Callers matching many keys
// should build an Index once instead.
func FindBestMatch(key string, refs []model.ReferenceRecord, threshold float64) model.MatchResult {
	return NewIndex(refs).FindBestMatch(key, threshold)
}
