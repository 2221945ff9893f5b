// Package prompt assembles retrieved chunks into the context block fed
// to the generation provider.
package prompt

import (
	"fmt"
	"strings"

	"fsebot/internal/corpus"
	"fsebot/internal/retrieval"
	"fsebot/internal/sources"
)

// ContextEntry is one retrieved chunk with its provenance.
type ContextEntry struct {
	Text   string
	Source string
	URL    string
}

// ContextBlock is everything the generation step needs besides the raw
// question. Entries keep retrieval order; Primary is the highest-scored
// entry; URLs is deduplicated in first-seen order.
type ContextBlock struct {
	Entries []ContextEntry
	Primary ContextEntry
	URLs    []string
}

// Compose resolves every kept chunk to its text, source tag and URL.
// Must only be called with a non-empty retrieval result.
func Compose(res *retrieval.Result, snap *corpus.Snapshot, mapping *sources.URLMapping) *ContextBlock {
	block := &ContextBlock{
		Entries: make([]ContextEntry, 0, len(res.Chunks)),
	}

	seen := make(map[string]bool, len(res.Chunks))
	for _, sc := range res.Chunks {
		entry := ContextEntry{
			Text:   snap.Texts[sc.Index],
			Source: snap.Sources[sc.Index],
			URL:    mapping.Resolve(snap.Sources[sc.Index]),
		}
		block.Entries = append(block.Entries, entry)

		if !seen[entry.URL] {
			seen[entry.URL] = true
			block.URLs = append(block.URLs, entry.URL)
		}
	}

	if len(block.Entries) > 0 {
		block.Primary = block.Entries[0]
	}
	return block
}

// UserPrompt renders the block plus the original question into the user
// prompt for the generation call. The verbatim question goes in, not the
// expanded one; expansion only helps embedding recall.
func (b *ContextBlock) UserPrompt(question string) string {
	chunks := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		chunks[i] = e.Text
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "RETRIEVED CONTEXT (Top %d most relevant chunks):\n\n", len(b.Entries))
	sb.WriteString(strings.Join(chunks, "\n\n---\n\n"))
	fmt.Fprintf(&sb, "\n\nPRIMARY SOURCE: %s\n", b.Primary.Source)
	fmt.Fprintf(&sb, "RELATED URLS: %s\n", strings.Join(b.URLs, ", "))
	fmt.Fprintf(&sb, "\nUSER QUESTION:\n%s\n", question)
	sb.WriteString(`
INSTRUCTIONS:
- Use ALL the provided context chunks to form a complete answer
- Cross-reference information across chunks when relevant
- If the context partially answers the question, provide what you know and acknowledge gaps
- Include specific details: dates, numbers, names, requirements, deadlines
- Add relevant URLs from the context`)
	return sb.String()
}
