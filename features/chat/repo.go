package chat

import (
	"context"
	"database/sql"
)

type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Insert(ctx context.Context, rec *Record) (string, error) {
	query := `INSERT INTO messages (session_id, user_message, assistant_message, retrieved_source, retrieved_url)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`
	var id string
	err := r.db.QueryRowContext(ctx, query,
		rec.SessionID, rec.UserMessage, rec.AssistantMessage, rec.RetrievedSource, rec.RetrievedURL,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
