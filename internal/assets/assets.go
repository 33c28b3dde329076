// Package assets loads reference models and derives their display geometry.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"refsketch/internal/logger"
	"refsketch/internal/refs"
	"refsketch/pkg/formats"
	"refsketch/pkg/lineart"
	gomath "refsketch/pkg/math"
	"refsketch/pkg/outline"
)

// Options controls how display geometry is derived from loaded models.
type Options struct {
	Thickness float32 // outline shell offset
	SharpLow  float32 // lower dihedral bound, radians
	SharpHigh float32 // upper dihedral bound, radians
}

// DefaultOptions returns the standard derivation settings.
func DefaultOptions() Options {
	return Options{
		Thickness: outline.DefaultThickness,
		SharpLow:  lineart.DefaultLowAngle,
		SharpHigh: lineart.DefaultHighAngle,
	}
}

// LoadReferences scans dir for .obj models, derives the outline shell and
// sharp edge lines for each, and returns them as a reference set ordered
// by file name. Models that fail to load or derive are logged and skipped
// rather than aborting the whole scan.
func LoadReferences(dir string, opts Options) (*refs.Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading reference folder %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".obj") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	// Derivation is CPU-bound, so build each reference concurrently and
	// reassemble in name order.
	built := make([]*refs.Reference, len(paths))
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			ref, err := buildReference(path, opts)
			if err != nil {
				logger.Warn("skipping reference",
					zap.String("path", path), zap.Error(err))
				return
			}
			built[i] = ref
		}(i, path)
	}
	wg.Wait()

	set := refs.NewSet()
	for _, ref := range built {
		if ref != nil {
			set.Add(ref)
		}
	}
	return set, nil
}

// buildReference loads one model and derives its outline and edge lines.
func buildReference(path string, opts Options) (*refs.Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := formats.ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	shell, err := outline.GenerateOutlineMesh(m, opts.Thickness)
	if err != nil {
		return nil, fmt.Errorf("deriving outline: %w", err)
	}

	segments, err := lineart.SharpEdgeLines(m, opts.SharpLow, opts.SharpHigh)
	if err != nil {
		// Non-manifold models still yield usable lines for the manifold
		// part of the surface, so keep them.
		if !errors.Is(err, lineart.ErrNonManifoldEdge) {
			return nil, fmt.Errorf("deriving edge lines: %w", err)
		}
		logger.Warn("model has non-manifold edges",
			zap.String("path", path), zap.Error(err))
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &refs.Reference{
		Name:     name,
		Mesh:     m,
		Outline:  shell,
		Edges:    segments,
		Rotation: gomath.QuatIdentity(),
	}, nil
}
