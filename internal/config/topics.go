package config

// NSQ topic and channel names shared between this service and the
// embedding regeneration pipeline.
const (
	TopicCorpusReload   = "corpus.reload"
	ChannelCorpusReload = "backend"
)
