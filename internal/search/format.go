package search

import (
	"fmt"
	"html"
	"strings"

	"github.com/edgard/cogisbot/internal/catalog"
	"github.com/edgard/cogisbot/internal/geodata"
	"github.com/edgard/cogisbot/internal/settings"
)

// MapsMessage is the rendered maps channel. Single is set when exactly one
// leaf matched, so the transport layer can attach the expanded two-button
// action row for it.
type MapsMessage struct {
	Text   string
	Single *catalog.Leaf
}

// FormatMaps renders the maps channel. One result gets an expanded
// single-item view with its description line; two or more get a compact
// bulleted list with per-item description lines.
func FormatMaps(query string, cfg settings.Settings, leaves []catalog.Leaf) MapsMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "Maps matching %q on <a href=\"%s\">%s</a>:\n",
		query, cfg.URL, html.EscapeString(cfg.Name))

	if len(leaves) == 1 {
		leaf := leaves[0]
		fmt.Fprintf(&b, "- <a href=\"%s\">%s</a>\n", leaf.URL(), html.EscapeString(leaf.Caption))
		if desc := leaf.DescriptionText(); desc != "" {
			b.WriteString(" - - " + html.EscapeString(desc) + "\n")
		}
		return MapsMessage{Text: b.String(), Single: &leaf}
	}

	for _, leaf := range leaves {
		fmt.Fprintf(&b, "- <a href=\"%s\">%s</a>\n", leaf.URL(), html.EscapeString(leaf.Caption))
		if desc := leaf.DescriptionText(); desc != "" {
			b.WriteString("  - " + html.EscapeString(desc) + "\n")
		}
		b.WriteString("\n")
	}
	return MapsMessage{Text: b.String()}
}

// FormatAddresses renders the address channel as a bulleted list.
func FormatAddresses(query string, cfg settings.Settings, candidates []geodata.AddressCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Addresses matching %q on <a href=\"%s\">%s</a>:\n",
		query, cfg.URL, html.EscapeString(cfg.Name))
	for _, c := range candidates {
		b.WriteString("- " + html.EscapeString(c.Address) + "\n")
	}
	return b.String()
}

// FormatParcels renders the cadastre channel as a bulleted list.
func FormatParcels(query string, cfg settings.Settings, parcels []geodata.Parcel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Parcels matching %q on <a href=\"%s\">%s</a>:\n",
		query, cfg.URL, html.EscapeString(cfg.Name))
	for _, p := range parcels {
		fmt.Fprintf(&b, "- %s (%s)\n", html.EscapeString(p.Address), html.EscapeString(p.Number))
	}
	return b.String()
}

// ShareText renders the message body sent when a catalog leaf is shared from
// an inline query.
func ShareText(leaf catalog.Leaf, cfg settings.Settings) string {
	return fmt.Sprintf("Check out <a href=\"%s\">%s</a> on <a href=\"%s\">%s</a>!",
		leaf.URL(), html.EscapeString(leaf.Caption), cfg.URL, html.EscapeString(cfg.Name))
}
