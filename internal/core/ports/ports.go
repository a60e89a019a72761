// Package ports defines the interfaces between the identification engine and
// its adapters.
package ports

import "github.com/lcalzada-xor/filesig/core/domain"

// Detector is one layer of the identification chain. Layers are consulted in
// order, cheapest first; the first layer to make a claim wins.
type Detector interface {
	// Name identifies the layer in metrics and traces.
	Name() string

	// Detect inspects buf and returns a human-readable description, or
	// ok=false when this layer makes no claim. Detect must be a pure
	// function of buf: no hidden state, no panics, no reads past the slice.
	Detect(buf []byte) (description string, ok bool)
}

// SignatureSource exposes the ordered, read-only signature table and the
// bounds derived from it. Implementations are safe for concurrent use
// without locking.
type SignatureSource interface {
	// Signatures returns the table in declaration order. Callers must not
	// mutate the returned slice.
	Signatures() []domain.Signature

	// MaxPrefix returns the number of leading bytes sufficient to test
	// every signature in the table, subject to a defensive cap.
	MaxPrefix() int
}

// PrefixSource supplies the byte window the matcher operates on. The second
// read exists so a signature can declare a verification beyond the initial
// prefix; it is always bounded and never amounts to a full-file read.
type PrefixSource interface {
	// Prefix returns up to the source's limit in leading bytes. Sources
	// shorter than the limit yield fewer bytes, not an error.
	Prefix() ([]byte, error)

	// ReadRange performs one additional bounded read at the given offset.
	ReadRange(offset int64, n int) ([]byte, error)
}

// ReportExporter renders a batch run summary to a document format.
type ReportExporter interface {
	Export(report *domain.BatchReport) ([]byte, error)
}
