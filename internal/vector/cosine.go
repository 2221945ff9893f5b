// Package vector holds the similarity kernel used by retrieval.
package vector

import (
	"errors"
	"math"
)

// ErrDimensionMismatch indicates the two vectors come from different
// embedding spaces. This is a systemic misconfiguration (corpus built
// with a different model), not a per-query problem.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Cosine returns the cosine similarity of a and b, in [-1, 1].
// A zero-norm vector scores 0.0 rather than producing NaN; a healthy
// embedding provider never emits one, but a degenerate input must not
// poison the ranking.
func Cosine(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
