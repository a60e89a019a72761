package identify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalzada-xor/filesig/core/domain"
)

var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func newTestProcessor(workers int) *Processor {
	return NewProcessor(newTestEngine(), workers)
}

func TestProcessorFileAndMissingPath(t *testing.T) {
	p := newTestProcessor(2)

	valid := writeTemp(t, "a.png", append(pngHeader, 0x00))
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	outcomes := p.Process(context.Background(), []string{valid, missing})
	require.Len(t, outcomes, 2, "one outcome per input entry")

	// First entry: valid FileInfo.
	assert.Equal(t, valid, outcomes[0].Path)
	require.False(t, outcomes[0].Failed())
	assert.Equal(t, "PNG image data", outcomes[0].Info.Description)

	// Second entry: PathNotFound, batch not aborted.
	assert.Equal(t, missing, outcomes[1].Path)
	require.True(t, outcomes[1].Failed())
	assert.True(t, errors.Is(outcomes[1].Err, domain.ErrPathNotFound))
}

func TestProcessorDirectory(t *testing.T) {
	p := newTestProcessor(4)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.png"), append(pngHeader, 1), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.pdf"), []byte("%PDF-1.7\n"), 0644))

	outcomes := p.Process(context.Background(), []string{dir})
	require.Len(t, outcomes, 3, "the directory itself plus its two files")

	// The directory argument is emitted first, classified without any read.
	assert.Equal(t, dir, outcomes[0].Path)
	assert.True(t, outcomes[0].Info.IsDir)
	assert.Equal(t, domain.DescriptionDirectory, outcomes[0].Info.Description)
	assert.False(t, outcomes[0].Info.HasSize)

	// Each file is attributed to its own path.
	byPath := map[string]domain.Outcome{}
	for _, o := range outcomes[1:] {
		byPath[o.Path] = o
	}
	png := byPath[filepath.Join(dir, "one.png")]
	require.False(t, png.Failed())
	assert.Equal(t, "PNG image data", png.Info.Description)

	pdf := byPath[filepath.Join(dir, "two.pdf")]
	require.False(t, pdf.Failed())
	assert.Equal(t, "PDF document", pdf.Info.Description)
}

func TestProcessorNestedDirectories(t *testing.T) {
	p := newTestProcessor(0) // default worker count

	root := t.TempDir()
	sub := filepath.Join(root, "nested")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "deep.gif"), []byte("GIF89a\x01\x00"), 0644))

	outcomes := p.Process(context.Background(), []string{root})
	require.Len(t, outcomes, 3) // root, nested, deep.gif

	assert.True(t, outcomes[0].Info.IsDir)
	assert.True(t, outcomes[1].Info.IsDir)
	assert.Equal(t, filepath.Join(sub, "deep.gif"), outcomes[2].Path)
	assert.Equal(t, "GIF image data, version 89a", outcomes[2].Info.Description)
}

func TestProcessorOrderStableUnderConcurrency(t *testing.T) {
	p := newTestProcessor(8)

	dir := t.TempDir()
	var paths []string
	for i := 0; i < 50; i++ {
		path := filepath.Join(dir, "f"+string(rune('a'+i%26))+"-"+string(rune('0'+i%10)))
		// Alternate recognizable and unrecognizable content.
		data := append([]byte{}, pngHeader...)
		if i%2 == 1 {
			data = []byte("just some text content\n")
		}
		require.NoError(t, os.WriteFile(path, data, 0644))
		paths = append(paths, path)
	}

	outcomes := p.Process(context.Background(), paths)
	require.Len(t, outcomes, len(paths))
	for i, o := range outcomes {
		assert.Equal(t, paths[i], o.Path, "outcome %d must keep its input position", i)
		require.False(t, o.Failed())
		if i%2 == 0 {
			assert.Equal(t, "PNG image data", o.Info.Description)
		} else {
			assert.Equal(t, "ASCII text", o.Info.Description)
		}
	}
}

func TestProcessorIsolatesFailures(t *testing.T) {
	p := newTestProcessor(2)

	good := writeTemp(t, "ok.png", append(pngHeader, 0))
	missing1 := filepath.Join(t.TempDir(), "gone1")
	missing2 := filepath.Join(t.TempDir(), "gone2")

	outcomes := p.Process(context.Background(), []string{missing1, good, missing2})
	require.Len(t, outcomes, 3)
	assert.True(t, outcomes[0].Failed())
	assert.False(t, outcomes[1].Failed())
	assert.True(t, outcomes[2].Failed())
	assert.Equal(t, "PNG image data", outcomes[1].Info.Description)
}

func TestProcessorEmptyInput(t *testing.T) {
	p := newTestProcessor(1)
	outcomes := p.Process(context.Background(), nil)
	assert.Empty(t, outcomes)
}

func TestRunReport(t *testing.T) {
	p := newTestProcessor(2)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), append(pngHeader, 0), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.png"), append(pngHeader, 1), 0644))
	missing := filepath.Join(t.TempDir(), "gone")

	run := p.Run(context.Background(), []string{dir, missing})
	require.NotEmpty(t, run.ID)

	report := run.Report()
	assert.Equal(t, run.ID, report.RunID)
	assert.Equal(t, 4, report.Total) // dir + 2 files + missing
	assert.Equal(t, 1, report.Directories)
	assert.Equal(t, 2, report.Identified)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.ByDescription, 1)
	assert.Equal(t, "PNG image data", report.ByDescription[0].Description)
	assert.Equal(t, 2, report.ByDescription[0].Count)
}

func TestSpecialDescription(t *testing.T) {
	cases := []struct {
		name string
		mode os.FileMode
		want string
	}{
		{"Symlink", os.ModeSymlink, "symbolic link"},
		{"Fifo", os.ModeNamedPipe, "fifo (named pipe)"},
		{"Socket", os.ModeSocket, "socket"},
		{"Device", os.ModeDevice, "device special file"},
		{"Regular", 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, specialDescription(tc.mode))
		})
	}
}

func TestProcessorSymlinkNotFollowed(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "target.png")
	require.NoError(t, os.WriteFile(target, append(pngHeader, 0), 0644))
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	p := newTestProcessor(2)
	outcomes := p.Process(context.Background(), []string{dir})

	byPath := map[string]domain.Outcome{}
	for _, o := range outcomes {
		byPath[o.Path] = o
	}
	require.Contains(t, byPath, link)
	assert.Equal(t, "symbolic link", byPath[link].Info.Description)
}
