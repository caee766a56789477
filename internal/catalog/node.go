// Package catalog implements the map catalog tree: fetching, decoding,
// flattening, and searching the hierarchical catalog exposed by the portal.
package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// defaultPortalBase is the URL template applied to leaves that carry only a
// slug and no explicit link URL.
const defaultPortalBase = "https://cogisdemo.dataeast.com/portal"

// Node is a single entry of the catalog tree: either a Container grouping
// further nodes, or a Leaf representing an openable map. Containers are never
// shown to users directly.
type Node interface {
	node()
}

// Container groups an ordered sequence of child nodes.
type Container struct {
	Caption  string
	Children []Node
}

func (Container) node() {}

// Leaf is a terminal catalog entry describing one map.
type Leaf struct {
	Caption            string
	Slug               string
	FullURL            string
	Keywords           []string
	ImageID            string
	DescriptionCaption string
	DescriptionLink    string
}

func (Leaf) node() {}

// URL returns the canonical URL of the leaf: the explicit link URL when the
// catalog provides one, otherwise a portal URL derived from the slug.
func (l Leaf) URL() string {
	if strings.TrimSpace(l.FullURL) != "" {
		return l.FullURL
	}
	return fmt.Sprintf("%s/%s/", defaultPortalBase, l.Slug)
}

// DescriptionText renders the secondary description line shown under a
// result, or an empty string when the leaf has no description link.
func (l Leaf) DescriptionText() string {
	if l.DescriptionCaption == "" || l.DescriptionLink == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s", l.DescriptionCaption, l.DescriptionLink)
}

// ImageURL returns the preview image URL, or empty when the leaf has none.
func (l Leaf) ImageURL() string {
	if l.ImageID == "" {
		return ""
	}
	return fmt.Sprintf("%s/Images/%s.png", defaultPortalBase, l.ImageID)
}

// Matches reports whether the leaf matches a free-text query: the caption,
// slug, or any keyword contains the query, case-insensitively.
func (l Leaf) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return false
	}
	if strings.Contains(strings.ToLower(l.Caption), q) {
		return true
	}
	if strings.Contains(strings.ToLower(l.Slug), q) {
		return true
	}
	for _, kw := range l.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			return true
		}
	}
	return false
}

// Wire types matching the portal's GetCatalogNodes JSON document. The tree is
// freshly deserialized on every fetch, so it is acyclic by construction.
type rawResponse struct {
	CatalogNodes []rawNode `json:"CatalogNodes"`
}

type rawNode struct {
	Items []rawCategory `json:"Items"`
}

type rawCategory struct {
	Caption string    `json:"Caption"`
	Items   []rawItem `json:"Items"`
}

type rawItem struct {
	Caption string    `json:"Caption"`
	Name    string    `json:"Name"`
	LinkURL string    `json:"LinkUrl"`
	Info    rawInfo   `json:"Info"`
	Items   []rawItem `json:"Items"`
}

type rawInfo struct {
	Keywords           []string `json:"Keywords"`
	PreviewImage       string   `json:"PreviewImage"`
	LinkControlCaption string   `json:"LinkControlCaption"`
	LinkControlUrl     string   `json:"LinkControlUrl"`
}

// DecodeTree parses a catalog document into a Tree. An item with a non-empty
// child list becomes a Container, everything else a Leaf.
func DecodeTree(data []byte) (*Tree, error) {
	var raw rawResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog document: %w", err)
	}

	tree := &Tree{}
	for _, node := range raw.CatalogNodes {
		for _, category := range node.Items {
			tree.Roots = append(tree.Roots, Container{
				Caption:  category.Caption,
				Children: convertItems(category.Items),
			})
		}
	}
	return tree, nil
}

func convertItems(items []rawItem) []Node {
	nodes := make([]Node, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, convertItem(item))
	}
	return nodes
}

func convertItem(item rawItem) Node {
	if len(item.Items) > 0 {
		return Container{
			Caption:  item.Caption,
			Children: convertItems(item.Items),
		}
	}
	return Leaf{
		Caption:            item.Caption,
		Slug:               item.Name,
		FullURL:            item.LinkURL,
		Keywords:           item.Info.Keywords,
		ImageID:            item.Info.PreviewImage,
		DescriptionCaption: item.Info.LinkControlCaption,
		DescriptionLink:    item.Info.LinkControlUrl,
	}
}
