package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/lcalzada-xor/filesig"
	"github.com/lcalzada-xor/filesig/core/domain"
	"github.com/lcalzada-xor/filesig/internal/config"
	"github.com/lcalzada-xor/filesig/internal/telemetry"
)

// jsonOutcome flattens an outcome for line-oriented JSON output.
type jsonOutcome struct {
	Path  string           `json:"path"`
	Info  *domain.FileInfo `json:"info,omitempty"`
	Error string           `json:"error,omitempty"`
}

func main() {
	cfg := config.Load()
	if len(cfg.Paths) == 0 {
		log.Fatalf("usage: filesig [flags] path [path ...]")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Trace {
		shutdown, err := telemetry.InitTracer()
		if err != nil {
			log.Fatalf("failed to initialize tracer: %v", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Printf("tracer shutdown error: %v", err)
			}
		}()
	}

	eng := filesig.New(filesig.WithWorkers(cfg.Workers))
	outcomes, report := eng.IdentifyPathsWithReport(ctx, cfg.Paths)

	pathColor := color.New(color.FgCyan).SprintFunc()
	dirColor := color.New(color.FgBlue).SprintFunc()
	errColor := color.New(color.FgRed).SprintFunc()

	failed := 0
	enc := json.NewEncoder(os.Stdout)
	for _, o := range outcomes {
		if o.Failed() {
			failed++
		}
		if cfg.Quiet {
			continue
		}
		if cfg.JSONOutput {
			jo := jsonOutcome{Path: o.Path}
			if o.Failed() {
				jo.Error = o.Err.Error()
			} else {
				info := o.Info
				jo.Info = &info
			}
			if err := enc.Encode(jo); err != nil {
				log.Printf("encode error for %s: %v", o.Path, err)
			}
			continue
		}
		switch {
		case o.Failed():
			fmt.Printf("%s: %s\n", pathColor(o.Path), errColor(o.Err))
		case o.Info.IsDir:
			fmt.Printf("%s: %s\n", pathColor(o.Path), dirColor(o.Info.Description))
		default:
			fmt.Printf("%s: %s\n", pathColor(o.Path), o.Info.Description)
		}
	}

	if cfg.ReportPath != "" {
		data, err := eng.ExportReportPDF(report)
		if err != nil {
			log.Fatalf("failed to generate report: %v", err)
		}
		if err := os.WriteFile(cfg.ReportPath, data, 0644); err != nil {
			log.Fatalf("failed to write report: %v", err)
		}
		log.Printf("Report written to %s (run %s)", cfg.ReportPath, report.RunID)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
