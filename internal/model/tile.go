package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Tile is a WRS-2 path/row partition of Landsat coverage.
type Tile struct {
	Path int
	Row  int
}

// ParseTile parses a `PPPRRR` token (e.g. `026028`) into a tile.
func ParseTile(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	if len(s) != 6 {
		return Tile{}, fmt.Errorf("tile %q must have 6 digits (PPPRRR): %w", s, ErrNotValid)
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return Tile{}, fmt.Errorf("tile %q must have 6 digits (PPPRRR): %w", s, ErrNotValid)
		}
	}

	path, err := strconv.Atoi(s[:3])
	if err != nil {
		return Tile{}, fmt.Errorf("tile %q has an invalid path: %w", s, ErrNotValid)
	}
	row, err := strconv.Atoi(s[3:])
	if err != nil {
		return Tile{}, fmt.Errorf("tile %q has an invalid row: %w", s, ErrNotValid)
	}

	t := Tile{Path: path, Row: row}
	if err := t.Validate(); err != nil {
		return Tile{}, err
	}

	return t, nil
}

// Validate validates the tile.
func (t Tile) Validate() error {
	if t.Path < 1 || t.Path > 233 {
		return fmt.Errorf("wrs path must be in [1, 233], got %d: %w", t.Path, ErrNotValid)
	}
	if t.Row < 1 || t.Row > 248 {
		return fmt.Errorf("wrs row must be in [1, 248], got %d: %w", t.Row, ErrNotValid)
	}
	return nil
}

// String returns the `PPPRRR` token of the tile.
func (t Tile) String() string { return fmt.Sprintf("%03d%03d", t.Path, t.Row) }
