package generator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestManifestRoundTrip(t *testing.T) {
	runID := uuid.New()
	manifest := newBuildManifest(runID, time.Now(), 1500*time.Millisecond)
	manifest.addDocument(manifestDocument{
		Path:     "guides/intro.md",
		Route:    "/guides/intro/",
		Checksum: "abc123",
		Includes: 2,
		Tables:   1,
	})
	manifest.addDocument(manifestDocument{
		Path:  "index.md",
		Route: "/",
		Links: 4,
	})

	dir := t.TempDir()
	target, err := manifest.write(dir)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if filepath.Base(target) != manifestFileName {
		t.Fatalf("unexpected manifest name %q", target)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}

	parsed, err := parseManifest(data)
	if err != nil {
		t.Fatalf("parseManifest: %v", err)
	}
	if parsed.Version != manifestFileVersion {
		t.Fatalf("version mismatch: %d", parsed.Version)
	}
	if parsed.RunID != runID.String() {
		t.Fatalf("run id mismatch: %q", parsed.RunID)
	}
	if len(parsed.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(parsed.Documents))
	}
	// Marshal sorts by path for deterministic output.
	if parsed.Documents[0].Path != "guides/intro.md" || parsed.Documents[1].Path != "index.md" {
		t.Fatalf("unexpected document order: %q, %q", parsed.Documents[0].Path, parsed.Documents[1].Path)
	}
	if parsed.Documents[0].Includes != 2 || parsed.Documents[0].Tables != 1 {
		t.Fatalf("pass counters lost: %+v", parsed.Documents[0])
	}
}

func TestParseManifestRejectsGarbage(t *testing.T) {
	if _, err := parseManifest([]byte("not json")); err == nil {
		t.Fatalf("expected a parse error")
	}
}
