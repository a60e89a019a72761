// Package filesig identifies the type of a file or in-memory byte buffer by
// recognizing binary signatures at known offsets, returning a human-readable
// description without relying on file extensions.
//
// Identification runs a cost-ordered detector chain: the static signature
// database first, then a generic content detector, then a coarse heuristic
// classifier. Every input yields a description; "no match" is a normal
// outcome resolved by the chain's default, never an error. The package-level
// functions share a default engine built on first use; New configures a
// dedicated one.
package filesig

import (
	"context"
	"sync"

	"github.com/lcalzada-xor/filesig/core/domain"
	"github.com/lcalzada-xor/filesig/internal/adapters/fallback"
	"github.com/lcalzada-xor/filesig/internal/adapters/reporting"
	"github.com/lcalzada-xor/filesig/internal/adapters/signature"
	"github.com/lcalzada-xor/filesig/internal/core/services/identify"
	"github.com/lcalzada-xor/filesig/internal/telemetry"
)

// Engine is a configured identification pipeline. All methods are safe for
// concurrent use: the signature database is read-only and each call's state
// is local.
type Engine struct {
	service   *identify.Engine
	processor *identify.Processor
}

// Option configures an Engine created by New.
type Option func(*settings)

type settings struct {
	workers int
}

// WithWorkers sets the batch worker pool size. Zero or negative means one
// worker per CPU.
func WithWorkers(n int) Option {
	return func(s *settings) {
		s.workers = n
	}
}

// New creates an identification engine. The signature database is built once
// per process and shared between engines.
func New(opts ...Option) *Engine {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	telemetry.InitMetrics()

	db := signature.Default()
	service := identify.NewEngine(db,
		signature.NewMatcher(db),
		fallback.NewFiletypeDetector(),
		fallback.NewHeuristic(),
	)
	return &Engine{
		service:   service,
		processor: identify.NewProcessor(service, s.workers),
	}
}

// IdentifyBytes identifies an in-memory buffer. The result always carries a
// description; its Path is empty and it has no size.
func (e *Engine) IdentifyBytes(buf []byte) domain.FileInfo {
	return e.service.FromBytes(buf)
}

// IdentifyManyBytes identifies a sequence of in-memory buffers, preserving
// input order.
func (e *Engine) IdentifyManyBytes(bufs [][]byte) []domain.FileInfo {
	infos := make([]domain.FileInfo, len(bufs))
	for i, buf := range bufs {
		infos[i] = e.service.FromBytes(buf)
	}
	return infos
}

// IdentifyPath identifies a single file or directory on disk. Errors are
// *domain.FileError values; directories are classified from metadata alone.
func (e *Engine) IdentifyPath(ctx context.Context, path string) (domain.FileInfo, error) {
	return e.service.FromPath(ctx, path)
}

// IdentifyPaths identifies every entry reachable from paths, expanding
// directories recursively. It returns one outcome per discovered entry, in
// discovery order; a failure on one entry never aborts the rest.
func (e *Engine) IdentifyPaths(ctx context.Context, paths []string) []domain.Outcome {
	return e.processor.Process(ctx, paths)
}

// IdentifyPathsWithReport runs the batch and also returns its summary
// report, ready for export.
func (e *Engine) IdentifyPathsWithReport(ctx context.Context, paths []string) ([]domain.Outcome, *domain.BatchReport) {
	run := e.processor.Run(ctx, paths)
	return run.Outcomes, run.Report()
}

// ExportReportPDF renders a batch report as a PDF document.
func (e *Engine) ExportReportPDF(report *domain.BatchReport) ([]byte, error) {
	return reporting.NewPDFExporter().Export(report)
}

var (
	defaultEngine *Engine
	defaultOnce   sync.Once
)

func defaultEng() *Engine {
	defaultOnce.Do(func() {
		defaultEngine = New()
	})
	return defaultEngine
}

// IdentifyBytes identifies an in-memory buffer with the default engine.
func IdentifyBytes(buf []byte) domain.FileInfo {
	return defaultEng().IdentifyBytes(buf)
}

// IdentifyManyBytes identifies a sequence of buffers with the default engine.
func IdentifyManyBytes(bufs [][]byte) []domain.FileInfo {
	return defaultEng().IdentifyManyBytes(bufs)
}

// IdentifyPath identifies a single path with the default engine.
func IdentifyPath(ctx context.Context, path string) (domain.FileInfo, error) {
	return defaultEng().IdentifyPath(ctx, path)
}

// IdentifyPaths identifies a batch of paths with the default engine.
func IdentifyPaths(ctx context.Context, paths []string) []domain.Outcome {
	return defaultEng().IdentifyPaths(ctx, paths)
}
