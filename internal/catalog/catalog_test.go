package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/edgard/cogisbot/internal/catalog"
)

func leafCaptions(leaves []catalog.Leaf) []string {
	out := make([]string, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, l.Caption)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sampleTree() *catalog.Tree {
	return &catalog.Tree{
		Roots: []catalog.Node{
			catalog.Container{
				Caption: "Region",
				Children: []catalog.Node{
					catalog.Leaf{Caption: "City Map", Slug: "city", Keywords: []string{"downtown", "streets"}},
					catalog.Container{
						Caption: "Utilities",
						Children: []catalog.Node{
							catalog.Leaf{Caption: "Water Network", Slug: "water"},
							catalog.Leaf{Caption: "Power Grid", Slug: "power", Keywords: []string{"electricity"}},
						},
					},
					catalog.Leaf{Caption: "Transit", Slug: "transit"},
				},
			},
			catalog.Container{
				Caption: "Archive",
				Children: []catalog.Node{
					catalog.Leaf{Caption: "City Map", Slug: "city-old"},
				},
			},
		},
	}
}

func TestFlatten_DepthFirstOrder(t *testing.T) {
	t.Parallel()

	leaves := sampleTree().Leaves()
	want := []string{"City Map", "Water Network", "Power Grid", "Transit", "City Map"}
	if got := leafCaptions(leaves); !equalStrings(got, want) {
		t.Errorf("Leaves() order = %v, want %v", got, want)
	}
}

func TestLeaf_Matches(t *testing.T) {
	t.Parallel()

	leaf := catalog.Leaf{
		Caption:  "City Map",
		Slug:     "city",
		Keywords: []string{"downtown", "Streets"},
	}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{name: "Caption substring", query: "city m", want: true},
		{name: "Caption case-insensitive", query: "CITY MAP", want: true},
		{name: "Slug match", query: "city", want: true},
		{name: "Keyword match", query: "downtown", want: true},
		{name: "Keyword case-insensitive", query: "streets", want: true},
		{name: "No match", query: "forest", want: false},
		{name: "Empty query never matches", query: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := leaf.Matches(tt.query); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestLeaf_URL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		leaf catalog.Leaf
		want string
	}{
		{
			name: "Explicit link URL wins",
			leaf: catalog.Leaf{Slug: "city", FullURL: "https://example.com/map"},
			want: "https://example.com/map",
		},
		{
			name: "Slug-derived portal URL",
			leaf: catalog.Leaf{Slug: "city"},
			want: "https://cogisdemo.dataeast.com/portal/city/",
		},
		{
			name: "Blank link URL falls back to slug",
			leaf: catalog.Leaf{Slug: "city", FullURL: "   "},
			want: "https://cogisdemo.dataeast.com/portal/city/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.leaf.URL(); got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTree_Search(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "Keyword hit",
			query: "downtown",
			want:  []string{"City Map"},
		},
		{
			name:  "Duplicate captions collapse to first occurrence",
			query: "city",
			want:  []string{"City Map"},
		},
		{
			name:  "Multiple matches keep document order",
			query: "w",
			want:  []string{"City Map", "Water Network", "Power Grid"},
		},
		{
			name:  "Empty query matches nothing",
			query: "",
			want:  nil,
		},
		{
			name:  "No matches",
			query: "xyzzy",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := leafCaptions(tree.Search(tt.query))
			if !equalStrings(got, tt.want) {
				t.Errorf("Search(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestTree_Browse(t *testing.T) {
	t.Parallel()

	tree := &catalog.Tree{
		Roots: []catalog.Node{
			catalog.Container{
				Caption: "Root",
				Children: []catalog.Node{
					catalog.Leaf{Caption: "A", Slug: "a"},
					catalog.Leaf{Caption: "B", FullURL: "https://example.com/shared"},
					catalog.Leaf{Caption: "C", FullURL: "https://example.com/shared"},
					catalog.Leaf{Caption: "D", Slug: "d"},
				},
			},
		},
	}

	t.Run("Deduplicates by URL keeping first", func(t *testing.T) {
		t.Parallel()
		got := leafCaptions(tree.Browse(10))
		want := []string{"A", "B", "D"}
		if !equalStrings(got, want) {
			t.Errorf("Browse(10) = %v, want %v", got, want)
		}
	})

	t.Run("Respects limit", func(t *testing.T) {
		t.Parallel()
		if got := tree.Browse(2); len(got) != 2 {
			t.Errorf("Browse(2) returned %d leaves, want 2", len(got))
		}
	})

	t.Run("Zero limit returns nothing", func(t *testing.T) {
		t.Parallel()
		if got := tree.Browse(0); got != nil {
			t.Errorf("Browse(0) = %v, want nil", got)
		}
	})
}

func TestTree_LeafByURL(t *testing.T) {
	t.Parallel()

	tree := sampleTree()

	leaf, ok := tree.LeafByURL("https://cogisdemo.dataeast.com/portal/water/")
	if !ok {
		t.Fatal("LeafByURL returned ok=false for existing leaf")
	}
	if leaf.Caption != "Water Network" {
		t.Errorf("LeafByURL caption = %q, want %q", leaf.Caption, "Water Network")
	}

	if _, ok := tree.LeafByURL("https://example.com/missing"); ok {
		t.Error("LeafByURL returned ok=true for unknown URL")
	}
}

func TestNilTree_SafeOperations(t *testing.T) {
	t.Parallel()

	var tree *catalog.Tree
	if got := tree.Search("anything"); got != nil {
		t.Errorf("nil tree Search = %v, want nil", got)
	}
	if got := tree.Browse(5); got != nil {
		t.Errorf("nil tree Browse = %v, want nil", got)
	}
	if _, ok := tree.LeafByURL("x"); ok {
		t.Error("nil tree LeafByURL returned ok=true")
	}
}

const catalogDocument = `{
  "CatalogNodes": [
    {
      "Items": [
        {
          "Caption": "Municipal",
          "Items": [
            {
              "Caption": "City Map",
              "Name": "city",
              "LinkUrl": "",
              "Info": {
                "Keywords": ["downtown"],
                "PreviewImage": "city_preview",
                "LinkControlCaption": "Open site",
                "LinkControlUrl": "https://example.com/city"
              }
            },
            {
              "Caption": "Networks",
              "Name": "networks",
              "Items": [
                {"Caption": "Water", "Name": "water", "Info": {}}
              ]
            }
          ]
        }
      ]
    }
  ]
}`

func TestDecodeTree(t *testing.T) {
	t.Parallel()

	tree, err := catalog.DecodeTree([]byte(catalogDocument))
	if err != nil {
		t.Fatalf("DecodeTree returned error: %v", err)
	}

	leaves := tree.Leaves()
	want := []string{"City Map", "Water"}
	if got := leafCaptions(leaves); !equalStrings(got, want) {
		t.Fatalf("decoded leaves = %v, want %v", got, want)
	}

	city := leaves[0]
	if got := city.URL(); got != "https://cogisdemo.dataeast.com/portal/city/" {
		t.Errorf("city URL = %q", got)
	}
	if got := city.ImageURL(); got != "https://cogisdemo.dataeast.com/portal/Images/city_preview.png" {
		t.Errorf("city ImageURL = %q", got)
	}
	if got := city.DescriptionText(); got != "Open site: https://example.com/city" {
		t.Errorf("city DescriptionText = %q", got)
	}
	if got := leaves[1].DescriptionText(); got != "" {
		t.Errorf("water DescriptionText = %q, want empty", got)
	}
}

func TestDecodeTree_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := catalog.DecodeTree([]byte("not json")); err == nil {
		t.Error("DecodeTree accepted malformed document")
	}
}

func TestService_Refresh(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(catalogDocument))
	}))
	defer srv.Close()

	svc := catalog.NewService(nil, srv.Client(), func() string { return srv.URL })

	if got := svc.Search("city"); got != nil {
		t.Errorf("Search before first refresh = %v, want nil", got)
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if got := leafCaptions(svc.Search("city")); !equalStrings(got, []string{"City Map"}) {
		t.Errorf("Search after refresh = %v", got)
	}
}

func TestService_RefreshFailureRetainsTree(t *testing.T) {
	t.Parallel()

	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(catalogDocument))
	}))
	defer srv.Close()

	svc := catalog.NewService(nil, srv.Client(), func() string { return srv.URL })
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("initial Refresh returned error: %v", err)
	}

	fail = true
	err := svc.Refresh(context.Background())
	if !errors.Is(err, catalog.ErrFetch) {
		t.Fatalf("Refresh error = %v, want ErrFetch", err)
	}
	if got := leafCaptions(svc.Browse(5)); !equalStrings(got, []string{"City Map", "Water"}) {
		t.Errorf("tree after failed refresh = %v, want previous tree retained", got)
	}
}
