package corpus

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

// ListAllChunks reads the whole embeddings table in insertion order.
// Corpus index order must be stable across reloads so that tie-breaking
// in retrieval stays deterministic.
func (r *PostgresRepo) ListAllChunks(ctx context.Context) ([]Chunk, error) {
	query := `SELECT source, content, embedding FROM embeddings ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		var embedding pq.Float64Array
		if err := rows.Scan(&c.Source, &c.Content, &embedding); err != nil {
			return nil, err
		}
		c.Embedding = []float64(embedding)
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}
