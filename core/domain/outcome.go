package domain

// Outcome is the per-entry result of a batch identification: either a
// populated FileInfo or a FileError, always attributed to its own path.
type Outcome struct {
	// Path of the discovered entry, as produced by traversal.
	Path string `json:"path"`

	// Info is valid only when Err is nil.
	Info FileInfo `json:"info,omitempty"`

	// Err is a *FileError scoped to Path, or nil.
	Err error `json:"-"`
}

// Failed reports whether this entry produced an error instead of a FileInfo.
func (o Outcome) Failed() bool {
	return o.Err != nil
}
