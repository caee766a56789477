package search

import (
	"strings"

	"github.com/edgard/cogisbot/internal/catalog"
	"github.com/edgard/cogisbot/internal/settings"
)

const inlineResultLimit = 50

// InlineEntry is one type-ahead result. ID is the leaf's canonical URL so a
// chosen-result notification can be attributed back to the leaf for click
// counting.
type InlineEntry struct {
	ID          string
	Title       string
	Description string
	MessageHTML string
	URL         string
	ThumbURL    string
}

// InlineBuilder turns inline (type-ahead) queries into capped result lists
// straight from the catalog, bypassing the conversation state machine.
type InlineBuilder struct {
	catalog  *catalog.Service
	settings *settings.Store
}

// NewInlineBuilder creates an inline result builder.
func NewInlineBuilder(cat *catalog.Service, st *settings.Store) *InlineBuilder {
	return &InlineBuilder{catalog: cat, settings: st}
}

// Build resolves an inline query: blank queries browse the catalog, anything
// else searches it with caption dedup. The list is capped before returning.
func (b *InlineBuilder) Build(query string) []InlineEntry {
	cfg := b.settings.Get()
	query = strings.TrimSpace(query)

	var leaves []catalog.Leaf
	if query == "" {
		leaves = b.catalog.Browse(inlineResultLimit)
	} else {
		leaves = b.catalog.Search(query)
	}
	if len(leaves) > inlineResultLimit {
		leaves = leaves[:inlineResultLimit]
	}

	entries := make([]InlineEntry, 0, len(leaves))
	for _, leaf := range leaves {
		entries = append(entries, InlineEntry{
			ID:          leaf.URL(),
			Title:       leaf.Caption,
			Description: leaf.DescriptionText(),
			MessageHTML: ShareText(leaf, cfg),
			URL:         leaf.URL(),
			ThumbURL:    leaf.ImageURL(),
		})
	}
	return entries
}
