package signature

import (
	"testing"

	"github.com/lcalzada-xor/filesig/core/domain"
)

func TestDefaultDatabase(t *testing.T) {
	db := Default()

	if db.Len() == 0 {
		t.Fatalf("default database must not be empty")
	}
	if db != Default() {
		t.Errorf("Default must return the same instance on every call")
	}

	t.Run("EntriesAreWellFormed", func(t *testing.T) {
		for i, sig := range db.Signatures() {
			if len(sig.Pattern) == 0 {
				t.Errorf("entry %d (%q): empty pattern", i, sig.Description)
			}
			if sig.Mask != nil && len(sig.Mask) != len(sig.Pattern) {
				t.Errorf("entry %d (%q): mask length %d != pattern length %d",
					i, sig.Description, len(sig.Mask), len(sig.Pattern))
			}
			if sig.Description == "" {
				t.Errorf("entry %d: empty description", i)
			}
			if sig.Specificity <= 0 {
				t.Errorf("entry %d (%q): specificity not resolved", i, sig.Description)
			}
		}
	})

	t.Run("MaxPrefixCoversDeepestEntry", func(t *testing.T) {
		// ISO 9660 at offset 32769 is the deepest current entry.
		want := 32769 + len("CD001")
		if db.MaxPrefix() != want {
			t.Errorf("MaxPrefix() = %d, want %d", db.MaxPrefix(), want)
		}
	})
}

func TestNewDatabaseBounds(t *testing.T) {
	t.Run("PrefixCapped", func(t *testing.T) {
		db := NewDatabase([]domain.Signature{
			{Pattern: []byte{1}, Offset: 10 * 1024 * 1024, Description: "pathological"},
		})
		if db.MaxPrefix() != maxPrefixCap {
			t.Errorf("MaxPrefix() = %d, want cap %d", db.MaxPrefix(), maxPrefixCap)
		}
	})

	t.Run("SpecificityNormalized", func(t *testing.T) {
		db := NewDatabase([]domain.Signature{
			{Pattern: []byte{1, 2, 3}, Description: "derived"},
			{Pattern: []byte{1}, Specificity: 7, Description: "declared"},
		})
		sigs := db.Signatures()
		if sigs[0].Specificity != 3 {
			t.Errorf("derived specificity = %d, want 3", sigs[0].Specificity)
		}
		if sigs[1].Specificity != 7 {
			t.Errorf("declared specificity = %d, want 7", sigs[1].Specificity)
		}
		if db.MaxSpecificity() != 7 {
			t.Errorf("MaxSpecificity() = %d, want 7", db.MaxSpecificity())
		}
	})

	t.Run("SourceSliceNotAliased", func(t *testing.T) {
		src := []domain.Signature{{Pattern: []byte{1}, Description: "one"}}
		db := NewDatabase(src)
		src[0].Description = "mutated"
		if db.Signatures()[0].Description != "one" {
			t.Errorf("database must copy its entries at construction")
		}
	})
}

func TestDatabaseOrderIsStable(t *testing.T) {
	db := Default()
	first := db.Signatures()
	second := db.Signatures()
	for i := range first {
		if first[i].Description != second[i].Description {
			t.Fatalf("iteration order changed at %d", i)
		}
	}
}
