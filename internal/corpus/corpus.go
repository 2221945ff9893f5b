// Package corpus manages the in-memory snapshot of precomputed chunk
// embeddings that retrieval scans.
package corpus

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Chunk is one row of the durable embeddings store.
type Chunk struct {
	Source    string
	Content   string
	Embedding []float64
}

// Snapshot holds the corpus as three parallel slices of equal length.
// A snapshot is immutable after construction; reload builds a new one
// and swaps it in wholesale.
type Snapshot struct {
	Vectors [][]float64
	Texts   []string
	Sources []string
}

func (s *Snapshot) Len() int {
	return len(s.Vectors)
}

// Dimension returns the embedding dimension, or 0 for an empty corpus.
func (s *Snapshot) Dimension() int {
	if len(s.Vectors) == 0 {
		return 0
	}
	return len(s.Vectors[0])
}

// NewSnapshot validates chunks and lays them out as parallel slices.
// Mixed embedding dimensions mean the store holds rows produced by
// different models, which would make every similarity score meaningless.
func NewSnapshot(chunks []Chunk) (*Snapshot, error) {
	s := &Snapshot{
		Vectors: make([][]float64, 0, len(chunks)),
		Texts:   make([]string, 0, len(chunks)),
		Sources: make([]string, 0, len(chunks)),
	}

	dim := -1
	for i, c := range chunks {
		if len(c.Embedding) == 0 {
			return nil, fmt.Errorf("chunk %d (%s): empty embedding", i, c.Source)
		}
		if dim == -1 {
			dim = len(c.Embedding)
		} else if len(c.Embedding) != dim {
			return nil, fmt.Errorf("chunk %d (%s): dimension %d, expected %d", i, c.Source, len(c.Embedding), dim)
		}
		s.Vectors = append(s.Vectors, c.Embedding)
		s.Texts = append(s.Texts, c.Content)
		s.Sources = append(s.Sources, c.Source)
	}

	return s, nil
}

// Store lists every chunk of the durable embeddings table.
type Store interface {
	ListAllChunks(ctx context.Context) ([]Chunk, error)
}

// Holder publishes the current snapshot to concurrent readers. Readers
// always observe a fully consistent snapshot: either entirely old or
// entirely new, never a mix of the two.
type Holder struct {
	ptr atomic.Pointer[Snapshot]
}

func NewHolder() *Holder {
	h := &Holder{}
	h.ptr.Store(&Snapshot{})
	return h
}

func (h *Holder) Load() *Snapshot {
	return h.ptr.Load()
}

func (h *Holder) Replace(s *Snapshot) {
	h.ptr.Store(s)
}
