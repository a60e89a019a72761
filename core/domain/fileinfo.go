package domain

// Descriptions returned when no detector makes a more specific claim.
const (
	DescriptionDirectory = "directory"
	DescriptionUnknown   = "data"
)

// FileInfo describes one identified file, directory, or in-memory buffer.
// It is constructed once per identified entity and never mutated.
type FileInfo struct {
	// Path of the inspected entry. Empty for in-memory buffers.
	Path string `json:"path,omitempty"`

	// Description is the human-readable type name. Never empty: inputs no
	// detector recognizes still carry a default description.
	Description string `json:"description"`

	// IsDir reports whether the entry is a directory. Directories are never
	// content-inspected.
	IsDir bool `json:"is_dir"`

	// Size in bytes. Only meaningful when HasSize is true.
	Size int64 `json:"size"`

	// HasSize is false for in-memory buffers and directories.
	HasSize bool `json:"has_size"`
}

// NewBufferInfo builds the result for an in-memory buffer.
func NewBufferInfo(description string) FileInfo {
	return FileInfo{Description: description}
}

// NewRegularFileInfo builds the result for a regular file on disk.
func NewRegularFileInfo(path, description string, size int64) FileInfo {
	return FileInfo{
		Path:        path,
		Description: description,
		Size:        size,
		HasSize:     true,
	}
}

// NewDirectoryInfo builds the result for a directory entry.
func NewDirectoryInfo(path string) FileInfo {
	return FileInfo{
		Path:        path,
		Description: DescriptionDirectory,
		IsDir:       true,
	}
}
