package io

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ManifestRepository writes the scene manifests on a local directory.
type ManifestRepository struct {
	dir string
}

// NewManifestRepository creates a new manifest repository writing on dir.
func NewManifestRepository(dir string) *ManifestRepository {
	return &ManifestRepository{dir: dir}
}

// WriteManifest writes one ID per line on the manifest file and returns its path.
// The file is written on a temporary file first and renamed so readers never see partial content.
func (r *ManifestRepository) WriteManifest(ctx context.Context, name string, ids []string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create manifest directory: %w", err)
	}

	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteString("\n")
	}

	path := filepath.Join(r.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("could not write manifest: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", fmt.Errorf("could not write manifest: %w", err)
	}

	return path, nil
}
