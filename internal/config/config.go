package config

import (
	"flag"
	"os"
	"strconv"
)

// Config holds all CLI configuration.
type Config struct {
	Workers    int
	ReportPath string
	JSONOutput bool
	Trace      bool
	Quiet      bool

	// Paths are the positional arguments left after flag parsing.
	Paths []string
}

// Load parses command line flags and environment variables to populate
// Config. Flags take precedence over environment variables.
func Load() *Config {
	cfg := &Config{}

	// Defaults and Environment Variables
	cfg.Workers = getEnvInt("FILESIG_WORKERS", 0)
	cfg.ReportPath = getEnv("FILESIG_REPORT", "")
	cfg.Trace = getEnvBool("FILESIG_TRACE", false)

	// Command Line Flags (Override Env)
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Worker pool size (0 = one per CPU)")
	flag.StringVar(&cfg.ReportPath, "report", cfg.ReportPath, "Write a PDF batch report to this path (empty to disable)")
	flag.BoolVar(&cfg.JSONOutput, "json", false, "Emit one JSON object per outcome")
	flag.BoolVar(&cfg.Trace, "trace", cfg.Trace, "Enable OpenTelemetry tracing to stdout")
	flag.BoolVar(&cfg.Quiet, "q", false, "Suppress per-file output (useful with -report)")

	flag.Parse()

	cfg.Paths = flag.Args()
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
