package fallback

import (
	"bytes"
	"math"
	"unicode/utf8"

	"github.com/montanaflynn/stats"
)

// Descriptions produced by the heuristic layer.
const (
	descEmpty       = "empty"
	descASCII       = "ASCII text"
	descUTF8        = "UTF-8 Unicode text"
	descUTF8BOM     = "UTF-8 Unicode (with BOM) text"
	descHighEntropy = "high-entropy data (possibly encrypted or compressed)"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Heuristic is the last chain layer before the default description. It makes
// coarse claims only: text probes first, then a byte-distribution test that
// flags encrypted or compressed payloads no signature covers.
type Heuristic struct {
	// sampleLimit bounds the bytes inspected; statistics over the prefix
	// are representative enough and keep the layer cheap.
	sampleLimit int

	// minEntropySample is the smallest buffer the entropy test applies to.
	// Short buffers have too few observations for the test to mean much.
	minEntropySample int
}

// NewHeuristic creates the heuristic layer with default bounds.
func NewHeuristic() *Heuristic {
	return &Heuristic{sampleLimit: 8192, minEntropySample: 256}
}

// Name implements ports.Detector.
func (h *Heuristic) Name() string {
	return "heuristic"
}

// Detect implements ports.Detector.
func (h *Heuristic) Detect(buf []byte) (string, bool) {
	if len(buf) == 0 {
		return descEmpty, true
	}
	sample := buf
	if len(sample) > h.sampleLimit {
		sample = sample[:h.sampleLimit]
	}
	if desc, ok := classifyText(sample); ok {
		return desc, true
	}
	if len(sample) >= h.minEntropySample && looksRandom(sample) {
		return descHighEntropy, true
	}
	return "", false
}

// classifyText reports printable text, distinguishing plain ASCII from wider
// UTF-8 and noting a leading BOM.
func classifyText(sample []byte) (string, bool) {
	bom := bytes.HasPrefix(sample, utf8BOM)
	if bom {
		sample = sample[len(utf8BOM):]
	}
	ascii := true
	for _, b := range sample {
		if b < 32 && b != '\t' && b != '\n' && b != '\r' && b != '\f' {
			return "", false
		}
		if b == 0x7F {
			return "", false
		}
		if b >= 0x80 {
			ascii = false
		}
	}
	switch {
	case bom:
		return descUTF8BOM, true
	case ascii:
		return descASCII, true
	case utf8.Valid(sample):
		return descUTF8, true
	}
	return "", false
}

// looksRandom flags near-uniform byte distributions. Two conditions must
// hold: Shannon entropy close to the 8-bit maximum, and a per-byte count
// spread (relative standard deviation) small enough to rule out structured
// binary data that merely uses many byte values.
func looksRandom(sample []byte) bool {
	var counts [256]int
	for _, b := range sample {
		counts[b]++
	}

	total := float64(len(sample))
	entropy := 0.0
	freqs := make([]float64, 256)
	for i, c := range counts {
		freqs[i] = float64(c)
		if c == 0 {
			continue
		}
		p := float64(c) / total
		entropy -= p * math.Log2(p)
	}
	if entropy < 7.5 {
		return false
	}

	sd, err := stats.StandardDeviation(freqs)
	if err != nil {
		return false
	}
	mean := total / 256
	return sd <= mean
}
