// Package sources resolves corpus source tags to public faculty URLs.
package sources

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// URLMapping is a static lookup from source tag (e.g. "camine.txt") to the
// page the chunk was extracted from. Loaded once at startup; read-only
// while serving.
type URLMapping struct {
	SourceToURL map[string]string `json:"source_to_url"`
	FallbackURL string            `json:"fallback_url"`
}

// Load reads the mapping artifact from disk.
func Load(path string) (*URLMapping, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- path comes from application config, not user input
	if err != nil {
		return nil, fmt.Errorf("failed to read url mappings: %w", err)
	}

	var m URLMapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse url mappings: %w", err)
	}
	if m.SourceToURL == nil {
		m.SourceToURL = map[string]string{}
	}
	return &m, nil
}

// Resolve returns the URL for a source tag, or the fallback when the tag
// is unknown. Always returns a string; an empty fallback yields "".
func (m *URLMapping) Resolve(source string) string {
	if url, ok := m.SourceToURL[source]; ok {
		return url
	}
	return m.FallbackURL
}
