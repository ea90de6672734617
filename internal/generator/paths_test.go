package generator

import "testing"

func TestRouteForDocument(t *testing.T) {
	cases := []struct {
		rel  string
		want string
	}{
		{"index.md", "/"},
		{"getting-started.md", "/getting-started/"},
		{"guides/index.md", "/guides/"},
		{"guides/divergence.md", "/guides/divergence/"},
		{"guides/deep/leaf.md", "/guides/deep/leaf/"},
		{"./guides/intro.md", "/guides/intro/"},
	}

	for _, tc := range cases {
		t.Run(tc.rel, func(t *testing.T) {
			if got := routeForDocument(tc.rel, "index.md"); got != tc.want {
				t.Fatalf("routeForDocument(%q) = %q, want %q", tc.rel, got, tc.want)
			}
		})
	}
}

func TestRouteForDocumentCustomIndex(t *testing.T) {
	if got := routeForDocument("guides/README.md", "README.md"); got != "/guides/" {
		t.Fatalf("expected custom index collapse, got %q", got)
	}
	if got := routeForDocument("guides/index.md", "README.md"); got != "/guides/index/" {
		t.Fatalf("expected index.md to stay a page, got %q", got)
	}
}
