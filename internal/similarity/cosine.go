// Package similarity provides pure vector similarity functions used by the
// recommendation engine. Nothing in this package holds state: every function
// is a deterministic function of its inputs, so results for a fixed corpus
// are reproducible across calls.
package similarity

import (
	"math"
	"sort"
)

// Match pairs a candidate's position in the input matrix with its similarity
// score against the query vector.
type Match struct {
	Index int
	Score float64
}

// Cosine returns the cosine similarity between a and b: the dot product over
// the product of L2 norms, in [-1, 1]. If either vector has zero norm (for
// example the TF-IDF transform of empty text), the similarity is 0 rather
// than NaN. Vectors of different lengths also score 0.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// TopK scores every candidate row against the query vector and returns up to
// k matches sorted by score descending. Candidates scoring below threshold
// are excluded even when the top-k window is not full. Ties keep the
// candidates' original order (first-seen wins).
//
// k <= 0 returns no matches.
func TopK(query []float64, candidates [][]float64, k int, threshold float64) []Match {
	if k <= 0 || len(candidates) == 0 {
		return nil
	}

	matches := make([]Match, 0, len(candidates))
	for i, candidate := range candidates {
		score := Cosine(query, candidate)
		if score < threshold {
			continue
		}
		matches = append(matches, Match{Index: i, Score: score})
	}

	// Stable sort preserves first-seen order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// RoundScore rounds a similarity score to two decimal places for display
// stability in responses.
func RoundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
