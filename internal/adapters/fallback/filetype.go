// Package fallback provides the secondary detector layers consulted when the
// signature database finds no match.
package fallback

import (
	"fmt"

	"github.com/h2non/filetype"

	"github.com/lcalzada-xor/filesig/internal/core/ports"
)

var (
	_ ports.Detector = (*FiletypeDetector)(nil)
	_ ports.Detector = (*Heuristic)(nil)
)

// FiletypeDetector wraps the generic filetype library as a chain layer. It
// is coarser than the signature table but covers formats the table does not
// carry, at the cost of a heavier match pass.
type FiletypeDetector struct{}

// NewFiletypeDetector creates the generic detector layer.
func NewFiletypeDetector() *FiletypeDetector {
	return &FiletypeDetector{}
}

// Name implements ports.Detector.
func (d *FiletypeDetector) Name() string {
	return "filetype"
}

// Detect implements ports.Detector. The description is formatted
// "mime (kind)", e.g. "image/png (image)", and is indistinguishable to
// callers from a primary match.
func (d *FiletypeDetector) Detect(buf []byte) (string, bool) {
	kind, err := filetype.Match(buf)
	if err != nil || kind == filetype.Unknown {
		return "", false
	}
	return fmt.Sprintf("%s (%s)", kind.MIME.Value, kind.MIME.Type), true
}
