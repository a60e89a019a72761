package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a per-path identification failure.
type ErrorKind string

const (
	// KindIO marks an underlying read or stat failure.
	KindIO ErrorKind = "io"

	// KindPathNotFound marks a path that did not exist at call time.
	KindPathNotFound ErrorKind = "path_not_found"

	// KindWalkDir marks a directory enumeration failure for a subtree.
	KindWalkDir ErrorKind = "walk_dir"
)

// Sentinel errors for matching with errors.Is.
var (
	// ErrPathNotFound indicates the requested path does not exist.
	ErrPathNotFound = errors.New("path does not exist")

	// ErrWalkDir indicates directory traversal failed for a subtree.
	ErrWalkDir = errors.New("directory traversal failed")
)

// FileError attaches a failure kind to the specific path it occurred on.
// Batch processing surfaces one FileError per failed entry; a FileError for
// one path never aborts sibling work.
type FileError struct {
	Path string    // Path the failure is scoped to
	Kind ErrorKind // Closed classification of the failure
	Err  error     // Underlying error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Path, e.Kind, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Is maps the failure kind onto the package sentinels so callers can use
// errors.Is without inspecting Kind directly.
func (e *FileError) Is(target error) bool {
	switch target {
	case ErrPathNotFound:
		return e.Kind == KindPathNotFound
	case ErrWalkDir:
		return e.Kind == KindWalkDir
	}
	return false
}

// NewIOError wraps a read or stat failure scoped to path.
func NewIOError(path string, err error) *FileError {
	return &FileError{Path: path, Kind: KindIO, Err: err}
}

// NewPathNotFoundError reports that path did not exist at call time.
func NewPathNotFoundError(path string) *FileError {
	return &FileError{Path: path, Kind: KindPathNotFound, Err: ErrPathNotFound}
}

// NewWalkDirError wraps a traversal failure scoped to the subtree at path.
func NewWalkDirError(path string, err error) *FileError {
	return &FileError{Path: path, Kind: KindWalkDir, Err: err}
}
