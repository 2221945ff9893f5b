package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fsebot/features/chat"
	"fsebot/internal/corpus"
	"fsebot/internal/prompt"
	"fsebot/internal/retrieval"
	"fsebot/internal/sources"
	"fsebot/internal/vector"
)

type MockRetriever struct{ mock.Mock }

func (m *MockRetriever) Search(ctx context.Context, rawQuery string, snap *corpus.Snapshot) (*retrieval.Result, error) {
	args := m.Called(ctx, rawQuery, snap)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*retrieval.Result), args.Error(1)
}

type MockGenerator struct{ mock.Mock }

func (m *MockGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	args := m.Called(ctx, systemPrompt, userPrompt)
	return args.String(0), args.Error(1)
}

type MockRepo struct{ mock.Mock }

func (m *MockRepo) Insert(ctx context.Context, rec *chat.Record) (string, error) {
	args := m.Called(ctx, rec)
	return args.String(0), args.Error(1)
}

func seededHolder(t *testing.T) *corpus.Holder {
	t.Helper()
	holder := corpus.NewHolder()
	snap, err := corpus.NewSnapshot([]corpus.Chunk{
		{Source: "calendar.txt", Content: "Exam session starts Jan 26", Embedding: []float64{1, 0}},
		{Source: "camine.txt", Content: "Dorm capacity is 200", Embedding: []float64{0, 1}},
	})
	require.NoError(t, err)
	holder.Replace(snap)
	return holder
}

func testMapping() *sources.URLMapping {
	return &sources.URLMapping{
		SourceToURL: map[string]string{
			"calendar.txt": "https://economice.ulbsibiu.ro/calendar",
		},
		FallbackURL: "https://economice.ulbsibiu.ro/",
	}
}

func TestService_Ask(t *testing.T) {
	match := &retrieval.Result{
		Chunks:     []retrieval.ScoredChunk{{Index: 0, Score: 0.9}},
		Confidence: retrieval.ConfidenceHigh,
	}

	tests := []struct {
		name    string
		req     chat.Request
		setup   func(*MockRetriever, *MockGenerator, *MockRepo)
		check   func(*testing.T, *chat.Response)
		wantErr error
	}{
		{
			name: "Answered With Context",
			req:  chat.Request{Message: "cand incepe sesiunea", SessionID: "s1"},
			setup: func(r *MockRetriever, g *MockGenerator, repo *MockRepo) {
				r.On("Search", mock.Anything, "cand incepe sesiunea", mock.Anything).Return(match, nil)
				g.On("Complete", mock.Anything, prompt.System, mock.MatchedBy(func(p string) bool {
					return strings.Contains(p, "Exam session starts Jan 26")
				})).Return("Sesiunea incepe pe 26 ianuarie.", nil)
				repo.On("Insert", mock.Anything, mock.MatchedBy(func(rec *chat.Record) bool {
					return rec.SessionID == "s1" &&
						rec.RetrievedSource == "calendar.txt" &&
						rec.AssistantMessage == "Sesiunea incepe pe 26 ianuarie."
				})).Return("msg-1", nil)
			},
			check: func(t *testing.T, resp *chat.Response) {
				assert.Equal(t, "Sesiunea incepe pe 26 ianuarie.", resp.Answer)
				assert.Equal(t, "calendar.txt", resp.Source)
				assert.Equal(t, "https://economice.ulbsibiu.ro/calendar", resp.URL)
				assert.Equal(t, "msg-1", resp.MessageID)
				assert.Equal(t, retrieval.ConfidenceHigh, resp.Confidence)
				assert.Equal(t, 1, resp.ChunksUsed)
			},
		},
		{
			name:    "Empty Message",
			req:     chat.Request{Message: "   "},
			setup:   func(r *MockRetriever, g *MockGenerator, repo *MockRepo) {},
			wantErr: chat.ErrEmptyMessage,
		},
		{
			name: "No Relevant Context Skips Generation",
			req:  chat.Request{Message: "something unrelated"},
			setup: func(r *MockRetriever, g *MockGenerator, repo *MockRepo) {
				r.On("Search", mock.Anything, mock.Anything, mock.Anything).
					Return(&retrieval.Result{Confidence: retrieval.ConfidenceLow}, nil)
			},
			check: func(t *testing.T, resp *chat.Response) {
				assert.Equal(t, prompt.NoContextReply, resp.Answer)
				assert.Equal(t, retrieval.ConfidenceLow, resp.Confidence)
				assert.Empty(t, resp.Source)
				assert.Empty(t, resp.URL)
				assert.Zero(t, resp.ChunksUsed)
			},
		},
		{
			name: "Persistence Failure Does Not Fail Response",
			req:  chat.Request{Message: "cand incepe sesiunea", SessionID: "s2"},
			setup: func(r *MockRetriever, g *MockGenerator, repo *MockRepo) {
				r.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(match, nil)
				g.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("answer", nil)
				repo.On("Insert", mock.Anything, mock.Anything).Return("", errors.New("db down"))
			},
			check: func(t *testing.T, resp *chat.Response) {
				assert.Equal(t, "answer", resp.Answer)
				assert.Empty(t, resp.MessageID)
			},
		},
		{
			name: "Dimension Mismatch Propagates",
			req:  chat.Request{Message: "q"},
			setup: func(r *MockRetriever, g *MockGenerator, repo *MockRepo) {
				r.On("Search", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, vector.ErrDimensionMismatch)
			},
			wantErr: vector.ErrDimensionMismatch,
		},
		{
			name: "Generator Failure Propagates",
			req:  chat.Request{Message: "q"},
			setup: func(r *MockRetriever, g *MockGenerator, repo *MockRepo) {
				r.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(match, nil)
				g.On("Complete", mock.Anything, mock.Anything, mock.Anything).
					Return("", errors.New("quota exceeded"))
			},
			wantErr: nil, // wrapped, checked via assert.Error below
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retriever := new(MockRetriever)
			generator := new(MockGenerator)
			repo := new(MockRepo)
			tt.setup(retriever, generator, repo)

			svc := chat.NewService(retriever, generator, repo, seededHolder(t), testMapping())
			resp, err := svc.Ask(context.Background(), tt.req)

			if tt.check != nil {
				require.NoError(t, err)
				tt.check(t, resp)
			} else if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.Error(t, err)
			}

			retriever.AssertExpectations(t)
			generator.AssertExpectations(t)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Ask_UsesOriginalQuestionInPrompt(t *testing.T) {
	retriever := new(MockRetriever)
	generator := new(MockGenerator)
	repo := new(MockRepo)

	match := &retrieval.Result{
		Chunks:     []retrieval.ScoredChunk{{Index: 1, Score: 0.7}},
		Confidence: retrieval.ConfidenceMedium,
	}
	retriever.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(match, nil)
	generator.On("Complete", mock.Anything, prompt.System, mock.MatchedBy(func(p string) bool {
		return strings.Contains(p, "USER QUESTION:\ncamin?") && strings.Contains(p, "Dorm capacity is 200")
	})).Return("answer", nil)
	repo.On("Insert", mock.Anything, mock.Anything).Return("id", nil)

	svc := chat.NewService(retriever, generator, repo, seededHolder(t), testMapping())
	_, err := svc.Ask(context.Background(), chat.Request{Message: "camin?"})
	require.NoError(t, err)
	generator.AssertExpectations(t)
}
