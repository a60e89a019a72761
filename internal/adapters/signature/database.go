// Package signature holds the static magic-number table and the matcher that
// resolves the best signature for a byte window.
package signature

import (
	"sync"

	"github.com/lcalzada-xor/filesig/core/domain"
)

// maxPrefixCap bounds the prefix read regardless of table contents, as a
// defense against pathological offsets in custom signatures.
const maxPrefixCap = 64 * 1024

// table is the static magic-number registry. Declaration order matters: it is
// the secondary tie-break when two entries share a specificity rank, so more
// constrained variants of a family come first. Entries with Specificity 0
// rank by their count of non-wildcard pattern bytes.
var table = []domain.Signature{
	// Images
	{Pattern: []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, Description: "PNG image data"},
	{Pattern: []byte{0xFF, 0xD8, 0xFF, 0xE0}, Description: "JPEG image data (JFIF)"},
	{Pattern: []byte{0xFF, 0xD8, 0xFF, 0xE1}, Description: "JPEG image data (EXIF)"},
	{Pattern: []byte{0xFF, 0xD8, 0xFF, 0xDB}, Description: "JPEG image data"},
	{Pattern: []byte{0xFF, 0xD8, 0xFF}, Description: "JPEG image data"},
	{Pattern: []byte("GIF87a"), Description: "GIF image data, version 87a"},
	{Pattern: []byte("GIF89a"), Description: "GIF image data, version 89a"},
	{Pattern: []byte{0x42, 0x4D}, Description: "PC bitmap data"},
	{Pattern: []byte{0x49, 0x49, 0x2A, 0x00}, Description: "TIFF image data, little-endian"},
	{Pattern: []byte{0x4D, 0x4D, 0x00, 0x2A}, Description: "TIFF image data, big-endian"},
	{
		Pattern: []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'E', 'B', 'P'},
		Mask:    []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF},
		Description: "WebP image data",
	},
	{Pattern: []byte{0x00, 0x00, 0x01, 0x00}, Description: "MS Windows icon resource"},
	{Pattern: []byte{0x00, 0x00, 0x02, 0x00}, Description: "MS Windows cursor resource"},
	{Pattern: []byte("8BPS"), Description: "Adobe Photoshop image data"},
	{Pattern: []byte("ftypheic"), Offset: 4, Description: "HEIC image data"},
	{Pattern: []byte("ftypavif"), Offset: 4, Description: "AVIF image data"},

	// Archives and compression
	{Pattern: []byte{0x50, 0x4B, 0x03, 0x04}, Description: "Zip archive data"},
	{Pattern: []byte{0x50, 0x4B, 0x05, 0x06}, Description: "Zip archive data (empty)"},
	{Pattern: []byte{0x50, 0x4B, 0x07, 0x08}, Description: "Zip archive data (spanned)"},
	{Pattern: []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x01, 0x00}, Description: "RAR archive data, v5"},
	{Pattern: []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07, 0x00}, Description: "RAR archive data, v4"},
	{Pattern: []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, Description: "7-zip archive data"},
	{Pattern: []byte{0x1F, 0x8B}, Description: "gzip compressed data"},
	{Pattern: []byte("BZh"), Description: "bzip2 compressed data"},
	{Pattern: []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}, Description: "XZ compressed data"},
	{Pattern: []byte{0x28, 0xB5, 0x2F, 0xFD}, Description: "Zstandard compressed data"},
	{Pattern: []byte{0x04, 0x22, 0x4D, 0x18}, Description: "LZ4 compressed data"},
	{Pattern: []byte("MSCF"), Description: "Microsoft Cabinet archive data"},
	{Pattern: []byte("!<arch>\n"), Description: "current ar archive"},
	{Pattern: []byte{0xED, 0xAB, 0xEE, 0xDB}, Description: "RPM package"},
	{Pattern: []byte("hsqs"), Description: "Squashfs filesystem, little-endian"},

	// Documents
	{Pattern: []byte("%PDF-"), Description: "PDF document"},
	{Pattern: []byte("%!PS"), Description: "PostScript document text"},
	{Pattern: []byte(`{\rtf`), Description: "Rich Text Format data"},
	{Pattern: []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, Description: "Composite Document File V2 (Microsoft Office)"},

	// Executables and bytecode
	{Pattern: []byte{0x7F, 0x45, 0x4C, 0x46}, Description: "ELF executable"},
	{Pattern: []byte{0x4D, 0x5A}, Description: "PE/DOS executable"},
	// The Java class pattern extends the Mach-O fat magic by two version
	// bytes, so it outranks the 4-byte entry on specificity when both match.
	{Pattern: []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00, 0x00}, Description: "Java class file"},
	{Pattern: []byte{0xCA, 0xFE, 0xBA, 0xBE}, Description: "Mach-O universal binary"},
	{Pattern: []byte{0xCE, 0xFA, 0xED, 0xFE}, Description: "Mach-O executable, 32-bit"},
	{Pattern: []byte{0xCF, 0xFA, 0xED, 0xFE}, Description: "Mach-O executable, 64-bit"},
	{Pattern: []byte{0xFE, 0xED, 0xFA, 0xCE}, Description: "Mach-O executable, 32-bit (big-endian)"},
	{Pattern: []byte{0xFE, 0xED, 0xFA, 0xCF}, Description: "Mach-O executable, 64-bit (big-endian)"},
	{Pattern: []byte{0x00, 0x61, 0x73, 0x6D}, Description: "WebAssembly binary module"},
	{Pattern: []byte("dex\n"), Description: "Dalvik executable"},
	{Pattern: []byte{0x1B, 0x4C, 0x75, 0x61}, Description: "Lua bytecode"},

	// Audio and video
	{Pattern: []byte("fLaC"), Description: "FLAC audio"},
	{Pattern: []byte("OggS"), Description: "Ogg data"},
	{Pattern: []byte("ID3"), Description: "Audio file with ID3"},
	{Pattern: []byte{0xFF, 0xFB}, Description: "MPEG ADTS, layer III"},
	{
		Pattern: []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 'W', 'A', 'V', 'E'},
		Mask:    []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF},
		Description: "WAVE audio",
	},
	{
		Pattern: []byte{'R', 'I', 'F', 'F', 0, 0, 0, 0, 'A', 'V', 'I', ' '},
		Mask:    []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF},
		Description: "RIFF AVI video",
	},
	{
		Pattern: []byte{'F', 'O', 'R', 'M', 0, 0, 0, 0, 'A', 'I', 'F', 'F'},
		Mask:    []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF},
		Description: "AIFF audio",
	},
	{Pattern: []byte("ftypisom"), Offset: 4, Description: "ISO Media, MP4 Base Media v1"},
	{Pattern: []byte("ftypmp42"), Offset: 4, Description: "ISO Media, MP4 v2"},
	{Pattern: []byte("ftypqt  "), Offset: 4, Description: "Apple QuickTime movie"},
	{Pattern: []byte("ftyp"), Offset: 4, Description: "ISO Media file"},
	{Pattern: []byte{0x1A, 0x45, 0xDF, 0xA3}, Description: "EBML data (Matroska/WebM)"},
	{Pattern: []byte{0x46, 0x4C, 0x56, 0x01}, Description: "Macromedia Flash Video"},
	{Pattern: []byte("MThd"), Description: "Standard MIDI data"},

	// Databases, filesystems, captures
	{Pattern: []byte("SQLite format 3\x00"), Description: "SQLite 3.x database"},
	{Pattern: []byte{0x4C, 0x55, 0x4B, 0x53, 0xBA, 0xBE}, Description: "LUKS encrypted file"},
	{Pattern: []byte("ustar"), Offset: 257, Description: "POSIX tar archive"},
	{Pattern: []byte("CD001"), Offset: 32769, Description: "ISO 9660 CD-ROM filesystem data"},
	{Pattern: []byte("EFI PART"), Offset: 512, Description: "GPT partition table"},
	{Pattern: []byte{0xA1, 0xB2, 0xC3, 0xD4}, Description: "pcap capture file, big-endian"},
	{Pattern: []byte{0xD4, 0xC3, 0xB2, 0xA1}, Description: "pcap capture file, little-endian"},
	{Pattern: []byte{0x0A, 0x0D, 0x0D, 0x0A}, Description: "pcapng capture file"},
	{Pattern: []byte("DICM"), Offset: 128, Description: "DICOM medical imaging data"},
	{Pattern: []byte("KDMV"), Description: "VMware4 disk image"},
	{Pattern: []byte("QFI\xFB"), Description: "QEMU QCOW2 image"},
	{Pattern: []byte("PAR1"), Description: "Apache Parquet data"},
	{Pattern: []byte("OBJ\x01"), Description: "Apache Avro object container"},
	{Pattern: []byte{0x47, 0x4C, 0x54, 0x46}, Description: "glTF binary model"},
	{Pattern: []byte("wOF2"), Description: "Web Open Font Format 2.0"},
	{Pattern: []byte("wOFF"), Description: "Web Open Font Format"},
	{Pattern: []byte{0x00, 0x01, 0x00, 0x00, 0x00}, Description: "TrueType font data"},
	{Pattern: []byte("OTTO"), Description: "OpenType font data"},
}

// Database is the immutable, ordered collection of known signatures, with
// precomputed bounds for the matcher and the reader. Construction never
// fails: the table is static in-source data, so the matcher has no
// "database unavailable" case to handle.
type Database struct {
	sigs           []domain.Signature
	maxPrefix      int
	maxSpecificity int
}

var (
	defaultDB   *Database
	defaultOnce sync.Once
)

// Default returns the process-wide database, built on first use and shared
// read-only afterwards.
func Default() *Database {
	defaultOnce.Do(func() {
		defaultDB = NewDatabase(table)
	})
	return defaultDB
}

// NewDatabase copies entries, resolves derived specificity ranks, and
// precomputes the prefix and specificity bounds.
func NewDatabase(sigs []domain.Signature) *Database {
	db := &Database{sigs: make([]domain.Signature, len(sigs))}
	copy(db.sigs, sigs)
	for i := range db.sigs {
		db.sigs[i].Specificity = db.sigs[i].EffectiveSpecificity()
		if s := db.sigs[i].Specificity; s > db.maxSpecificity {
			db.maxSpecificity = s
		}
		if p := db.sigs[i].PrefixLen(); p > db.maxPrefix {
			db.maxPrefix = p
		}
	}
	if db.maxPrefix > maxPrefixCap {
		db.maxPrefix = maxPrefixCap
	}
	return db
}

// Signatures returns the table in declaration order. The slice is shared;
// callers must not mutate it.
func (db *Database) Signatures() []domain.Signature {
	return db.sigs
}

// MaxPrefix returns the number of leading bytes sufficient to test every
// signature, capped defensively.
func (db *Database) MaxPrefix() int {
	return db.maxPrefix
}

// MaxSpecificity returns the highest rank in the table. A matcher holding a
// candidate at this rank can stop scanning: no later entry can improve on it.
func (db *Database) MaxSpecificity() int {
	return db.maxSpecificity
}

// Len returns the number of signatures in the table.
func (db *Database) Len() int {
	return len(db.sigs)
}
