package catalog

// Tree is a rooted forest of catalog nodes, rebuilt wholesale on every fetch
// and immutable in between.
type Tree struct {
	Roots []Node
}

// Flatten yields the leaves reachable from n in depth-first, left-to-right
// order. Containers are descended into but never yielded.
func Flatten(n Node) []Leaf {
	switch v := n.(type) {
	case Leaf:
		return []Leaf{v}
	case Container:
		var leaves []Leaf
		for _, child := range v.Children {
			leaves = append(leaves, Flatten(child)...)
		}
		return leaves
	default:
		return nil
	}
}

// Leaves returns every leaf of the tree in document order.
func (t *Tree) Leaves() []Leaf {
	if t == nil {
		return nil
	}
	var leaves []Leaf
	for _, root := range t.Roots {
		leaves = append(leaves, Flatten(root)...)
	}
	return leaves
}

// Browse returns the first limit leaves of the tree in document order,
// deduplicated by canonical URL (first occurrence wins).
func (t *Tree) Browse(limit int) []Leaf {
	if t == nil || limit <= 0 {
		return nil
	}
	seen := make(map[string]struct{})
	var out []Leaf
	for _, leaf := range t.Leaves() {
		url := leaf.URL()
		if _, dup := seen[url]; dup {
			continue
		}
		seen[url] = struct{}{}
		out = append(out, leaf)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Search returns the leaves matching query in document order, deduplicated by
// caption. Two distinct leaves sharing a caption collapse to the first one.
// An empty query matches nothing; use Browse for the empty-query case.
func (t *Tree) Search(query string) []Leaf {
	if t == nil || query == "" {
		return nil
	}
	var matched []Leaf
	for _, leaf := range t.Leaves() {
		if leaf.Matches(query) {
			matched = append(matched, leaf)
		}
	}
	return DedupByCaption(matched)
}

// LeafByURL returns the first leaf whose canonical URL equals url.
func (t *Tree) LeafByURL(url string) (Leaf, bool) {
	if t == nil {
		return Leaf{}, false
	}
	for _, leaf := range t.Leaves() {
		if leaf.URL() == url {
			return leaf, true
		}
	}
	return Leaf{}, false
}

// DedupByCaption collapses leaves sharing a caption to the first occurrence,
// preserving order.
func DedupByCaption(leaves []Leaf) []Leaf {
	if len(leaves) == 0 {
		return leaves
	}
	seen := make(map[string]struct{}, len(leaves))
	out := leaves[:0:0]
	for _, leaf := range leaves {
		if _, dup := seen[leaf.Caption]; dup {
			continue
		}
		seen[leaf.Caption] = struct{}{}
		out = append(out, leaf)
	}
	return out
}
