package corpus

import (
	"context"
	"log/slog"

	"github.com/nsqio/go-nsq"
)

// Reloader rebuilds the snapshot from the durable store and publishes it.
// On failure the previous snapshot keeps serving; a half-loaded corpus is
// never visible.
type Reloader struct {
	store  Store
	holder *Holder
}

func NewReloader(store Store, holder *Holder) *Reloader {
	return &Reloader{store: store, holder: holder}
}

// Reload fetches all chunks and swaps the snapshot atomically. Returns
// the number of embeddings loaded.
func (r *Reloader) Reload(ctx context.Context) (int, error) {
	chunks, err := r.store.ListAllChunks(ctx)
	if err != nil {
		return 0, err
	}

	snap, err := NewSnapshot(chunks)
	if err != nil {
		return 0, err
	}

	r.holder.Replace(snap)
	slog.InfoContext(ctx, "corpus reloaded", "embeddings_loaded", snap.Len(), "dimension", snap.Dimension())
	return snap.Len(), nil
}

// ReloadConsumer handles corpus.reload messages published by the
// embedding regeneration pipeline, so every running instance refreshes
// without being addressed individually.
type ReloadConsumer struct {
	reloader *Reloader
}

func NewReloadConsumer(r *Reloader) *ReloadConsumer {
	return &ReloadConsumer{reloader: r}
}

func (c *ReloadConsumer) HandleMessage(m *nsq.Message) error {
	if _, err := c.reloader.Reload(context.Background()); err != nil {
		slog.Error("corpus reload via nsq failed", "error", err)
		// Returning the error lets NSQ requeue; a transient DB outage
		// should not drop the reload on the floor.
		return err
	}
	return nil
}
