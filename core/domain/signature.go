package domain

import "bytes"

// Signature is one magic-number rule: a byte pattern that must appear at a
// fixed offset, the human-readable type it identifies, and a specificity rank
// used to break ties between overlapping patterns.
type Signature struct {
	// Pattern is the byte sequence to compare. Never empty.
	Pattern []byte

	// Mask selects which pattern positions must match. Nil means every
	// position is compared exactly; otherwise Mask has the same length as
	// Pattern and a zero mask byte marks a wildcard position.
	Mask []byte

	// Offset is the position in the input where Pattern must appear.
	Offset int

	// Description is the human-readable type name.
	Description string

	// Specificity ranks this signature against others matching the same
	// bytes; higher wins. Zero means "derive from the pattern": the count of
	// non-wildcard bytes.
	Specificity int
}

// PrefixLen returns the minimum input length required to test the signature.
func (s Signature) PrefixLen() int {
	return s.Offset + len(s.Pattern)
}

// EffectiveSpecificity resolves the rank used for tie-breaking: the declared
// Specificity, or the count of non-wildcard pattern bytes when unset.
func (s Signature) EffectiveSpecificity() int {
	if s.Specificity != 0 {
		return s.Specificity
	}
	if s.Mask == nil {
		return len(s.Pattern)
	}
	n := 0
	for _, m := range s.Mask {
		if m != 0 {
			n++
		}
	}
	return n
}

// Matches reports whether buf carries the signature. Inputs too short to
// cover Offset+len(Pattern) simply do not match; Matches never panics and
// never reads past buf.
func (s Signature) Matches(buf []byte) bool {
	if len(s.Pattern) == 0 || len(buf) < s.PrefixLen() {
		return false
	}
	window := buf[s.Offset : s.Offset+len(s.Pattern)]
	if s.Mask == nil {
		return bytes.Equal(window, s.Pattern)
	}
	for i, m := range s.Mask {
		if m != 0 && window[i] != s.Pattern[i] {
			return false
		}
	}
	return true
}
