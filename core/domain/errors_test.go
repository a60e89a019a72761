package domain

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestFileErrorSentinels(t *testing.T) {
	t.Run("PathNotFound", func(t *testing.T) {
		err := NewPathNotFoundError("/no/such/file")
		if !errors.Is(err, ErrPathNotFound) {
			t.Errorf("expected errors.Is(err, ErrPathNotFound)")
		}
		if errors.Is(err, ErrWalkDir) {
			t.Errorf("a path-not-found error must not match ErrWalkDir")
		}
		if err.Kind != KindPathNotFound {
			t.Errorf("Kind = %q, want %q", err.Kind, KindPathNotFound)
		}
	})

	t.Run("WalkDir", func(t *testing.T) {
		underlying := fs.ErrPermission
		err := NewWalkDirError("/root/locked", underlying)
		if !errors.Is(err, ErrWalkDir) {
			t.Errorf("expected errors.Is(err, ErrWalkDir)")
		}
		if !errors.Is(err, fs.ErrPermission) {
			t.Errorf("wrapped cause must remain reachable via errors.Is")
		}
	})

	t.Run("IO", func(t *testing.T) {
		underlying := errors.New("read failed")
		err := NewIOError("/tmp/f", underlying)
		if err.Kind != KindIO {
			t.Errorf("Kind = %q, want %q", err.Kind, KindIO)
		}
		if !errors.Is(err, underlying) {
			t.Errorf("Unwrap must expose the underlying error")
		}
	})
}

func TestFileErrorAs(t *testing.T) {
	var fe *FileError
	err := error(NewIOError("/tmp/f", errors.New("boom")))
	if !errors.As(err, &fe) {
		t.Fatalf("errors.As must recover the *FileError")
	}
	if fe.Path != "/tmp/f" {
		t.Errorf("Path = %q, want /tmp/f", fe.Path)
	}
}

func TestFileErrorMessageIncludesPathAndKind(t *testing.T) {
	err := NewPathNotFoundError("/missing")
	msg := err.Error()
	for _, want := range []string{"/missing", string(KindPathNotFound)} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}
