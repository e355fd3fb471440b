package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	slogmulti "github.com/samber/slog-multi"

	"github.com/opalcas/opal/internal/config"
)

func main() {
	configPath := flag.String("config", "opal.yaml", "path to the configuration file")
	eval := flag.String("e", "", "evaluate a single expression and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opal: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opal: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	r := &repl{
		cfg:    cfg,
		logger: logger,
		color:  useColor(cfg.Color),
		out:    os.Stdout,
	}
	if err := r.init(); err != nil {
		fmt.Fprintf(os.Stderr, "opal: %v\n", err)
		os.Exit(1)
	}
	defer r.close()

	if *eval != "" {
		if err := r.evalAndPrint(*eval); err != nil {
			fmt.Fprintf(os.Stderr, "opal: %v\n", err)
			os.Exit(1)
		}
		return
	}

	r.loop(bufio.NewScanner(os.Stdin))
}

// newLogger builds the CLI logger: a text handler on stderr, fanned out to
// a JSON file handler when one is configured.
func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level := parseLevel(cfg.Level)
	stderrHandler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	if cfg.File == "" {
		return slog.New(stderrHandler), func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	fileHandler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	logger := slog.New(slogmulti.Fanout(stderrHandler, fileHandler))
	return logger, func() { f.Close() }, nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
