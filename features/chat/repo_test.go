package chat_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fsebot/features/chat"
)

func TestPostgresRepo_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rec := &chat.Record{
		SessionID:        "s1",
		UserMessage:      "cand incepe sesiunea",
		AssistantMessage: "Pe 26 ianuarie.",
		RetrievedSource:  "calendar.txt",
		RetrievedURL:     "https://economice.ulbsibiu.ro/calendar",
	}

	mock.ExpectQuery("INSERT INTO messages").
		WithArgs(rec.SessionID, rec.UserMessage, rec.AssistantMessage, rec.RetrievedSource, rec.RetrievedURL).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("msg-42"))

	repo := chat.NewPostgresRepo(db)
	id, err := repo.Insert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, "msg-42", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_Insert_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO messages").WillReturnError(assert.AnError)

	repo := chat.NewPostgresRepo(db)
	id, err := repo.Insert(context.Background(), &chat.Record{})
	assert.Error(t, err)
	assert.Empty(t, id)
}
