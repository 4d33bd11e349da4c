package io

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/rossyndicate/srst/internal/model"
)

// TileRepository reads the WRS-2 tile an acquisition runs on.
type TileRepository struct {
	fs fs.FS
}

// NewTileRepository creates a new tile repository.
func NewTileRepository(filesystem fs.FS) *TileRepository {
	return &TileRepository{fs: filesystem}
}

// GetTile reads the tile on the first line of the file.
func (r *TileRepository) GetTile(ctx context.Context, path string) (model.Tile, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.Tile{}, fmt.Errorf("tile file %q: %w", path, model.ErrNotFound)
		}
		return model.Tile{}, fmt.Errorf("could not read tile file: %w", err)
	}

	if ctx.Err() != nil {
		return model.Tile{}, ctx.Err()
	}

	line, _, _ := strings.Cut(string(data), "\n")
	tile, err := model.ParseTile(line)
	if err != nil {
		return model.Tile{}, fmt.Errorf("could not parse tile: %w", err)
	}

	return tile, nil
}
