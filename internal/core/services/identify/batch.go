package identify

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lcalzada-xor/filesig/core/domain"
	"github.com/lcalzada-xor/filesig/internal/telemetry"
)

const tracerName = "filesig/identify"

// Processor applies the engine to many paths, expanding directories and
// isolating per-entry failures: one file's error never discards results
// already computed for its siblings.
type Processor struct {
	engine  *Engine
	workers int
}

// NewProcessor creates a batch processor fanning identification out over the
// given number of workers. Zero or negative means one worker per CPU.
func NewProcessor(engine *Engine, workers int) *Processor {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Processor{engine: engine, workers: workers}
}

// Run is one batch invocation: a stable entry list with one outcome per
// discovered entry, plus the metadata the report exporter needs.
type Run struct {
	ID       string
	Started  time.Time
	Duration time.Duration
	Outcomes []domain.Outcome
}

// Report summarizes the run for export.
func (r *Run) Report() *domain.BatchReport {
	return domain.NewBatchReport(r.ID, r.Started, r.Duration, r.Outcomes)
}

// Process identifies every entry reachable from paths and returns one
// outcome per entry, in discovery order.
func (p *Processor) Process(ctx context.Context, paths []string) []domain.Outcome {
	return p.Run(ctx, paths).Outcomes
}

// Run performs discovery sequentially (so entry order is stable), then fans
// file identification out over the worker pool. Workers share the read-only
// signature database without locking and write results into an
// index-addressed slice, so the input-to-output association survives any
// internal reordering.
func (p *Processor) Run(ctx context.Context, paths []string) *Run {
	run := &Run{ID: uuid.NewString(), Started: time.Now()}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "filesig.batch",
		trace.WithAttributes(
			attribute.String("run.id", run.ID),
			attribute.Int("batch.args", len(paths)),
		))
	defer span.End()

	telemetry.BatchRuns.Inc()

	entries := discover(paths)
	telemetry.BatchEntries.Observe(float64(len(entries)))
	span.SetAttributes(attribute.Int("batch.entries", len(entries)))

	outcomes := make([]domain.Outcome, len(entries))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e := entries[i]
				info, err := p.engine.identifyFile(ctx, e.path, e.size)
				outcomes[i] = domain.Outcome{Path: e.path, Info: info, Err: err}
			}
		}()
	}

	for i, e := range entries {
		switch {
		case e.err != nil:
			telemetry.IdentifyErrors.WithLabelValues(string(e.err.Kind)).Inc()
			outcomes[i] = domain.Outcome{Path: e.path, Err: e.err}
		case e.isDir:
			outcomes[i] = domain.Outcome{Path: e.path, Info: domain.NewDirectoryInfo(e.path)}
		case e.special != "":
			outcomes[i] = domain.Outcome{Path: e.path, Info: domain.FileInfo{Path: e.path, Description: e.special}}
		default:
			jobs <- i
		}
	}
	close(jobs)
	wg.Wait()

	run.Duration = time.Since(run.Started)
	run.Outcomes = outcomes
	return run
}

// entry is one discovered path awaiting its outcome.
type entry struct {
	path    string
	isDir   bool
	size    int64
	special string // non-empty for sockets, fifos, symlinks, devices
	err     *domain.FileError
}

// discover expands the argument list into a stable entry sequence. A missing
// argument becomes a path-not-found entry; a traversal failure becomes a
// walk-dir entry for that subtree. Neither aborts the rest of the batch.
func discover(paths []string) []entry {
	var entries []entry
	for _, p := range paths {
		fi, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				entries = append(entries, entry{path: p, err: domain.NewPathNotFoundError(p)})
			} else {
				entries = append(entries, entry{path: p, err: domain.NewIOError(p, err)})
			}
			continue
		}
		if !fi.IsDir() {
			// Stat has already resolved symlinks; fifos, sockets and
			// devices must still never be opened.
			if special := specialDescription(fi.Mode()); special != "" {
				entries = append(entries, entry{path: p, special: special})
			} else {
				entries = append(entries, entry{path: p, size: fi.Size()})
			}
			continue
		}
		// WalkDir visits the root first, so the directory argument itself
		// is emitted as an entry ahead of its contents.
		filepath.WalkDir(p, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				entries = append(entries, entry{path: path, err: domain.NewWalkDirError(path, walkErr)})
				return nil
			}
			if d.IsDir() {
				entries = append(entries, entry{path: path, isDir: true})
				return nil
			}
			if special := specialDescription(d.Type()); special != "" {
				entries = append(entries, entry{path: path, special: special})
				return nil
			}
			info, infoErr := d.Info()
			if infoErr != nil {
				entries = append(entries, entry{path: path, err: domain.NewIOError(path, infoErr)})
				return nil
			}
			entries = append(entries, entry{path: path, size: info.Size()})
			return nil
		})
	}
	return entries
}

// specialDescription classifies non-regular files from their mode alone.
// Their content is never read.
func specialDescription(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return "symbolic link"
	case mode&fs.ModeNamedPipe != 0:
		return "fifo (named pipe)"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device special file"
	case mode&fs.ModeIrregular != 0:
		return "irregular file"
	}
	return ""
}
