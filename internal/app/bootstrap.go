package app

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"fsebot/internal/config"
	"fsebot/internal/corpus"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/nsqio/go-nsq"
)

// Bootstrap opens the database, waits for it to come up, and applies
// migrations. Returns a ready *sql.DB.
func Bootstrap(cfg *config.Config) (*sql.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	retryDelay := time.Duration(cfg.BootstrapRetryDelaySeconds) * time.Second
	for i := 0; i < cfg.BootstrapRetryAttempts; i++ {
		if err := db.Ping(); err == nil {
			break
		}
		slog.Warn("failed to ping db, retrying...", "attempt", i+1)
		time.Sleep(retryDelay)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("migration driver error: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationPath, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migration instance error: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return nil, fmt.Errorf("migration up error: %w", err)
	}
	slog.Info("migrations applied successfully")

	return db, nil
}

// StartReloadConsumer subscribes to corpus.reload so the embedding
// pipeline can trigger a refresh on every running instance. Returns the
// consumer so the caller can Stop() it on shutdown.
func StartReloadConsumer(cfg *config.Config, reloader *corpus.Reloader) (*nsq.Consumer, error) {
	consumer, err := nsq.NewConsumer(config.TopicCorpusReload, config.ChannelCorpusReload, nsq.NewConfig())
	if err != nil {
		return nil, fmt.Errorf("nsq consumer error: %w", err)
	}

	handler := corpus.NewReloadConsumer(reloader)
	consumer.AddHandler(nsq.HandlerFunc(func(m *nsq.Message) error {
		return handler.HandleMessage(m)
	}))

	if err := consumer.ConnectToNSQLookupd(cfg.NSQLookupd); err != nil {
		return nil, fmt.Errorf("nsqlookupd connect error: %w", err)
	}
	slog.Info("corpus reload consumer connected", "topic", config.TopicCorpusReload)
	return consumer, nil
}
