// Package identify orchestrates the detector chain over byte windows, single
// paths, and batches.
package identify

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/lcalzada-xor/filesig/core/domain"
	"github.com/lcalzada-xor/filesig/internal/core/ports"
	"github.com/lcalzada-xor/filesig/internal/telemetry"
)

// sourceDefault labels identifications where every chain layer declined and
// the engine fell back to the default description.
const sourceDefault = "default"

// Engine runs an ordered chain of detectors over byte windows. The first
// layer to make a claim wins; if every layer declines, the result carries
// the default description, so every input yields a usable FileInfo.
type Engine struct {
	source ports.SignatureSource
	chain  []ports.Detector
}

// NewEngine creates an engine over the given signature source and chain.
// The source bounds the lazy prefix read; detectors are consulted in the
// order given, cheapest first.
func NewEngine(source ports.SignatureSource, chain ...ports.Detector) *Engine {
	return &Engine{source: source, chain: chain}
}

// FromBytes identifies an in-memory buffer. The returned FileInfo has no
// path and no size; its description is never empty.
func (e *Engine) FromBytes(buf []byte) domain.FileInfo {
	desc, source := e.describe(buf)
	telemetry.FilesIdentified.WithLabelValues(source).Inc()
	return domain.NewBufferInfo(desc)
}

// FromPath identifies a single file or directory on disk. Directories are
// classified from metadata alone; no content is read for them. Errors are
// *domain.FileError values scoped to the path.
func (e *Engine) FromPath(ctx context.Context, path string) (domain.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			telemetry.IdentifyErrors.WithLabelValues(string(domain.KindPathNotFound)).Inc()
			return domain.FileInfo{}, domain.NewPathNotFoundError(path)
		}
		telemetry.IdentifyErrors.WithLabelValues(string(domain.KindIO)).Inc()
		return domain.FileInfo{}, domain.NewIOError(path, err)
	}
	if fi.IsDir() {
		return domain.NewDirectoryInfo(path), nil
	}
	return e.identifyFile(ctx, path, fi.Size())
}

// identifyFile runs the lazy read and the chain for one regular file whose
// size is already known.
func (e *Engine) identifyFile(_ context.Context, path string, size int64) (domain.FileInfo, error) {
	prefix, err := newFileSource(path, e.source.MaxPrefix()).Prefix()
	if err != nil {
		telemetry.IdentifyErrors.WithLabelValues(string(domain.KindIO)).Inc()
		return domain.FileInfo{}, domain.NewIOError(path, err)
	}
	desc, source := e.describe(prefix)
	telemetry.FilesIdentified.WithLabelValues(source).Inc()
	return domain.NewRegularFileInfo(path, desc, size), nil
}

// describe walks the chain and returns the winning description together with
// the name of the layer that produced it.
func (e *Engine) describe(buf []byte) (string, string) {
	for _, d := range e.chain {
		if desc, ok := d.Detect(buf); ok {
			return desc, d.Name()
		}
	}
	return domain.DescriptionUnknown, sourceDefault
}
