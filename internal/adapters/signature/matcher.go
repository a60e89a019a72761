package signature

import (
	"github.com/lcalzada-xor/filesig/core/domain"
	"github.com/lcalzada-xor/filesig/internal/core/ports"
)

var (
	_ ports.Detector        = (*Matcher)(nil)
	_ ports.SignatureSource = (*Database)(nil)
)

// Matcher resolves the best signature for a byte window. It is a pure
// function of its input over a read-only database, so one Matcher is safe
// for any number of concurrent callers.
type Matcher struct {
	db *Database
}

// NewMatcher creates a matcher over db.
func NewMatcher(db *Database) *Matcher {
	return &Matcher{db: db}
}

// Match scans the table in order, keeping the best candidate so far: higher
// specificity wins, and on equal specificity the earlier entry is kept.
// Signatures the buffer is too short to cover are simply not candidates.
// Once the held candidate reaches the table's maximum rank the scan stops
// early; no later entry can improve the result, so the early exit cannot
// change the chosen signature.
func (m *Matcher) Match(buf []byte) (domain.Signature, bool) {
	var best domain.Signature
	found := false
	for _, sig := range m.db.Signatures() {
		if !sig.Matches(buf) {
			continue
		}
		if !found || sig.Specificity > best.Specificity {
			best = sig
			found = true
			if best.Specificity == m.db.MaxSpecificity() {
				break
			}
		}
	}
	return best, found
}

// Name implements ports.Detector.
func (m *Matcher) Name() string {
	return "signature"
}

// Detect implements ports.Detector, exposing the matcher as the first layer
// of the identification chain.
func (m *Matcher) Detect(buf []byte) (string, bool) {
	sig, ok := m.Match(buf)
	if !ok {
		return "", false
	}
	return sig.Description, true
}
