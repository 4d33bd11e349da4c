package io

import (
	"fmt"
	"path/filepath"

	"github.com/rossyndicate/srst/internal/model"
)

// RootedPath returns p as a path of the root filesystem (`os.DirFS("/")`),
// relative paths are resolved against base.
func RootedPath(base, p string) (string, error) {
	if p == "" {
		return "", nil
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("could not resolve path %q: %w", p, err)
	}

	rel, err := filepath.Rel("/", abs)
	if err != nil {
		return "", fmt.Errorf("could not resolve path %q: %w", p, err)
	}

	return filepath.ToSlash(rel), nil
}

// ResolveInputs rewrites the input file paths as root filesystem paths.
// The output directory is kept as an OS path.
func ResolveInputs(base string, in model.InputsConfig) (model.InputsConfig, error) {
	var err error
	out := in
	for _, p := range []*string{&out.LocationsPath, &out.UserPolygonsPath, &out.NHDPolygonsPath, &out.UserCentersPath, &out.NHDCentersPath} {
		*p, err = RootedPath(base, *p)
		if err != nil {
			return model.InputsConfig{}, err
		}
	}

	if out.OutDir != "" && !filepath.IsAbs(out.OutDir) {
		out.OutDir = filepath.Join(base, out.OutDir)
	}

	return out, nil
}
