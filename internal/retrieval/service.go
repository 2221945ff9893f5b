// Package retrieval ranks corpus chunks against a query embedding and
// labels how confident the best match is.
package retrieval

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fsebot/internal/corpus"
	"fsebot/internal/query"
	"fsebot/internal/vector"
)

const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// ScoredChunk references a corpus entry by index together with its
// cosine score against the query.
type ScoredChunk struct {
	Index int
	Score float64
}

// Result is the ranked, thresholded outcome of one retrieval. An empty
// Chunks slice is a valid terminal outcome ("no relevant context"), not
// an error.
type Result struct {
	Chunks     []ScoredChunk
	Confidence string
}

func (r *Result) Empty() bool {
	return len(r.Chunks) == 0
}

// Embedder turns text into a fixed-dimension vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// TopK scans every corpus vector, keeps the k best scores at or above
// threshold, and returns them in descending score order. Ties break by
// ascending corpus index so identical inputs always rank identically.
func TopK(queryVec []float64, snap *corpus.Snapshot, k int, threshold float64) ([]ScoredChunk, error) {
	if snap.Len() == 0 || k <= 0 {
		return nil, nil
	}
	if len(queryVec) != snap.Dimension() {
		return nil, fmt.Errorf("query dimension %d vs corpus dimension %d: %w",
			len(queryVec), snap.Dimension(), vector.ErrDimensionMismatch)
	}

	scored := make([]ScoredChunk, snap.Len())
	for i, v := range snap.Vectors {
		s, err := vector.Cosine(queryVec, v)
		if err != nil {
			return nil, err
		}
		scored[i] = ScoredChunk{Index: i, Score: s}
	}

	// Stable sort over index-ordered input keeps ties in corpus order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if k > len(scored) {
		k = len(scored)
	}

	kept := make([]ScoredChunk, 0, k)
	for _, sc := range scored[:k] {
		if sc.Score >= threshold {
			kept = append(kept, sc)
		}
	}
	return kept, nil
}

// Service orchestrates one retrieval: expand the query, embed it, rank
// the corpus, derive a confidence label. Stateless per call; safe for
// concurrent use over an immutable snapshot.
type Service struct {
	embedder  Embedder
	k         int
	threshold float64
	high      float64
	medium    float64
	logger    *QueryLogger
}

func NewService(embedder Embedder, k int, threshold, high, medium float64, logger *QueryLogger) *Service {
	return &Service{
		embedder:  embedder,
		k:         k,
		threshold: threshold,
		high:      high,
		medium:    medium,
		logger:    logger,
	}
}

func (s *Service) Search(ctx context.Context, rawQuery string, snap *corpus.Snapshot) (*Result, error) {
	start := time.Now()

	expanded := query.Expand(rawQuery)
	vec, err := s.embedder.Embed(ctx, expanded)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	chunks, err := TopK(vec, snap, s.k, s.threshold)
	if err != nil {
		return nil, err
	}

	res := &Result{Chunks: chunks, Confidence: s.confidence(chunks)}

	if s.logger != nil {
		entry := QueryLogEntry{
			Query:      rawQuery,
			NumResults: len(chunks),
			Confidence: res.Confidence,
			Duration:   time.Since(start),
		}
		if len(chunks) > 0 {
			entry.TopScore = chunks[0].Score
		}
		s.logger.Log(entry)
	}

	return res, nil
}

func (s *Service) confidence(chunks []ScoredChunk) string {
	if len(chunks) == 0 {
		return ConfidenceLow
	}
	top := chunks[0].Score
	switch {
	case top > s.high:
		return ConfidenceHigh
	case top > s.medium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}
