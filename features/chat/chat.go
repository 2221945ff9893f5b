// Package chat answers user questions from the retrieved corpus context.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fsebot/internal/corpus"
	"fsebot/internal/prompt"
	"fsebot/internal/retrieval"
	"fsebot/internal/sources"
	"fsebot/internal/vector"
)

var ErrEmptyMessage = errors.New("message is required")

type Request struct {
	Message   string
	SessionID string
}

type Response struct {
	Answer     string
	Source     string
	URL        string
	MessageID  string
	Confidence string
	ChunksUsed int
}

// Record is the persisted transcript row. Written once per answered
// request, never read back by this service.
type Record struct {
	SessionID        string
	UserMessage      string
	AssistantMessage string
	RetrievedSource  string
	RetrievedURL     string
}

type Repository interface {
	Insert(ctx context.Context, rec *Record) (string, error)
}

type Retriever interface {
	Search(ctx context.Context, rawQuery string, snap *corpus.Snapshot) (*retrieval.Result, error)
}

type Generator interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type Service struct {
	retriever Retriever
	generator Generator
	repo      Repository
	holder    *corpus.Holder
	mapping   *sources.URLMapping
}

func NewService(retriever Retriever, generator Generator, repo Repository, holder *corpus.Holder, mapping *sources.URLMapping) *Service {
	return &Service{
		retriever: retriever,
		generator: generator,
		repo:      repo,
		holder:    holder,
		mapping:   mapping,
	}
}

// Ask runs the full pipeline: retrieve context for the question, compose
// the prompt, generate an answer, persist the transcript best-effort.
func (s *Service) Ask(ctx context.Context, req Request) (*Response, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	// One snapshot for the whole request. A concurrent reload never
	// mixes old vectors with new texts here.
	snap := s.holder.Load()

	res, err := s.retriever.Search(ctx, req.Message, snap)
	if err != nil {
		if errors.Is(err, vector.ErrDimensionMismatch) {
			// Systemic: the corpus was built with a different embedding
			// model than the one serving queries.
			slog.ErrorContext(ctx, "corpus dimension drift detected", "error", err)
			return nil, err
		}
		return nil, fmt.Errorf("retrieving context: %w", err)
	}

	if res.Empty() {
		// Defined terminal outcome, not a failure: answer with the
		// canned fallback and skip the generation provider entirely.
		return &Response{
			Answer:     prompt.NoContextReply,
			Confidence: retrieval.ConfidenceLow,
		}, nil
	}

	block := prompt.Compose(res, snap, s.mapping)

	answer, err := s.generator.Complete(ctx, prompt.System, block.UserPrompt(req.Message))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	resp := &Response{
		Answer:     answer,
		Source:     block.Primary.Source,
		URL:        block.Primary.URL,
		Confidence: res.Confidence,
		ChunksUsed: len(res.Chunks),
	}

	// Best-effort transcript write. The answer is already computed; a
	// storage hiccup must not turn it into an error.
	id, err := s.repo.Insert(ctx, &Record{
		SessionID:        req.SessionID,
		UserMessage:      req.Message,
		AssistantMessage: answer,
		RetrievedSource:  block.Primary.Source,
		RetrievedURL:     block.Primary.URL,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to store chat record", "error", err, "session_id", req.SessionID)
	} else {
		resp.MessageID = id
	}

	return resp, nil
}
