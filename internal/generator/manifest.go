package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	manifestFileName    = ".docpipe-manifest.json"
	manifestFileVersion = 1
)

// buildManifest records the outcome of a build run so hosts and follow-up
// tooling can inspect what was processed without re-running the pipeline.
type buildManifest struct {
	Version     int                `json:"version"`
	RunID       string             `json:"run_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Duration    string             `json:"duration"`
	Documents   []manifestDocument `json:"documents"`
}

type manifestDocument struct {
	Path     string `json:"path"`
	Route    string `json:"route"`
	Checksum string `json:"checksum"`
	Includes int    `json:"includes"`
	Tables   int    `json:"tables"`
	Links    int    `json:"links"`
}

func newBuildManifest(runID uuid.UUID, generatedAt time.Time, duration time.Duration) *buildManifest {
	return &buildManifest{
		Version:     manifestFileVersion,
		RunID:       runID.String(),
		GeneratedAt: generatedAt.UTC(),
		Duration:    duration.String(),
		Documents:   []manifestDocument{},
	}
}

func (m *buildManifest) addDocument(entry manifestDocument) {
	m.Documents = append(m.Documents, entry)
}

// marshal emits deterministic JSON: documents sorted by path.
func (m *buildManifest) marshal() ([]byte, error) {
	sort.Slice(m.Documents, func(i, j int) bool {
		return m.Documents[i].Path < m.Documents[j].Path
	})
	return json.MarshalIndent(m, "", "  ")
}

func (m *buildManifest) write(outputDir string) (string, error) {
	data, err := m.marshal()
	if err != nil {
		return "", fmt.Errorf("generator: marshal manifest: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("generator: prepare output dir: %w", err)
	}

	target := filepath.Join(outputDir, manifestFileName)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("generator: write manifest: %w", err)
	}
	return target, nil
}

func parseManifest(data []byte) (*buildManifest, error) {
	var manifest buildManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("generator: parse manifest: %w", err)
	}
	if manifest.Version == 0 {
		manifest.Version = manifestFileVersion
	}
	if manifest.Documents == nil {
		manifest.Documents = []manifestDocument{}
	}
	return &manifest, nil
}
