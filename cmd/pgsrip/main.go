/*
DESCRIPTION
  pgsrip is the command-line entry point: it turns CLI flags into a
  ripconfig.Options, scans the given paths for .sup files and Matroska
  PGS tracks, and drives the orchestrator to rip each one to an .srt,
  logging to both stderr and a rotated file the way cmd/rv and
  cmd/looper do.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Command pgsrip extracts Blu-ray PGS bitmap subtitles from .sup files
// and Matroska containers and converts them to time-coded .srt files.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ausocean/utils/logging"
	"golang.org/x/text/language"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pgsrip/pgsrip-go/internal/postprocess"
	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
	"github.com/pgsrip/pgsrip-go/media"
	"github.com/pgsrip/pgsrip-go/ocrengine"
	"github.com/pgsrip/pgsrip-go/orchestrator"
)

// Logging configuration, mirroring cmd/rv and cmd/looper's fixed
// rotation policy.
const (
	logPath      = "pgsrip.log"
	logMaxSize   = 100 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

// configError marks a problem with the CLI invocation itself (bad
// flags, no paths given): the only class this program exits non-zero
// for. Per-source failures are logged and never reach main's exit code.
type configError struct{ err error }

func (c configError) Error() string { return c.err.Error() }

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "pgsrip:", err)
		if _, ok := err.(configError); ok {
			os.Exit(1)
		}
		os.Exit(0)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pgsrip", flag.ContinueOnError)

	var languages repeatedFlag
	var tags repeatedFlag
	fs.Var(&languages, "language", "restrict to this language (IETF tag, repeatable)")
	fs.Var(&tags, "tag", "post-processing rule tag to apply (repeatable)")

	config := fs.String("config", "", "path to an external post-processing rule configuration (forwarded, not read by this module)")
	subtitleType := fs.String("subtitle-type", "", "Matroska track filter: all, full-only, forced-included, forced-only, sdh-included, sdh-only, all-included")
	encoding := fs.String("encoding", "", "output .srt text encoding (IANA name, default UTF-8)")
	age := fs.String("age", "", `only rip media younger than this (^(\d+w)?(\d+d)?(\d+h)?$)`)
	srtAge := fs.String("srt-age", "", "re-rip when the existing .srt is older than this")
	force := fs.Bool("force", false, "overwrite an existing .srt")
	all := fs.Bool("all", false, "keep every matching track per language, not just the first")
	maxWorkers := fs.Int("max-workers", 1, "maximum concurrent source workers (1..50)")
	keepTemp := fs.Bool("keep-temp-files", false, "keep per-source temp directories and debug artifacts")
	debug := fs.Bool("debug", false, "enable debug logging and progress output")
	watch := fs.Bool("watch", false, "keep running, ripping newly created files as they appear")
	v := fs.Bool("v", false, "verbose logging")
	vv := fs.Bool("vv", false, "more verbose logging")
	vvv := fs.Bool("vvv", false, "most verbose logging")
	tesseractPath := fs.String("tesseract", "", "path to the tesseract binary (default: PATH lookup)")

	if err := fs.Parse(args); err != nil {
		return configError{err}
	}
	paths := fs.Args()
	if len(paths) == 0 {
		return configError{fmt.Errorf("no paths given")}
	}

	opts := ripconfig.Options{
		Tags:          []string(tags),
		ConfigPath:    *config,
		Encoding:      *encoding,
		Overwrite:     *force,
		OnePerLang:    !*all,
		KeepTempFiles: *keepTemp,
		MaxWorkers:    *maxWorkers,
		Debug:         *debug,
		Watch:         *watch,
	}
	if *maxWorkers < 1 || *maxWorkers > 50 {
		return configError{fmt.Errorf("--max-workers must be between 1 and 50, got %d", *maxWorkers)}
	}
	if *config != "" {
		if info, err := os.Stat(*config); err != nil || info.IsDir() {
			return configError{fmt.Errorf("--config %q is not a file", *config)}
		}
	}
	if *subtitleType != "" {
		f, err := ripconfig.ParseSubtitleTypeFilter(*subtitleType)
		if err != nil {
			return configError{err}
		}
		opts.SubtitleType = f
	}
	for _, l := range languages {
		tag, err := language.Parse(l)
		if err != nil {
			return configError{fmt.Errorf("--language %q: %w", l, err)}
		}
		opts.Languages = append(opts.Languages, tag)
	}
	if *age != "" {
		d, err := ripconfig.ParseAge(*age)
		if err != nil {
			return configError{err}
		}
		opts.Age = d
	}
	if *srtAge != "" {
		d, err := ripconfig.ParseAge(*srtAge)
		if err != nil {
			return configError{err}
		}
		opts.SrtAge = d
	}
	switch {
	case *vvv:
		opts.Verbosity = 3
	case *vv:
		opts.Verbosity = 2
	case *v:
		opts.Verbosity = 1
	}
	opts = opts.WithDefaults()

	log := newLogger(opts)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	engine := ocrengine.New(*tesseractPath)
	orch := orchestrator.New(engine, opts, postprocess.Identity, log)
	if opts.Debug || opts.Verbosity >= 2 {
		orch.Progress = progressBar(os.Stderr)
	}

	if opts.Watch {
		return orchestrator.Watch(ctx, paths, opts, func(sources []*media.Source) {
			reportResults(orch.Run(ctx, sources), log)
		})
	}

	sources, err := orchestrator.Scan(ctx, paths, opts)
	if err != nil {
		return configError{err}
	}
	reportResults(orch.Run(ctx, sources), log)
	return nil
}

// progressBar returns an orchestrator.Progress callback that prints a
// single overwriting "done/total" line to w, mirroring the original
// CLI's DebugProgressBar. Only active under --debug/-vv.
func progressBar(w io.Writer) func(done, total int) {
	return func(done, total int) {
		fmt.Fprintf(w, "\rripping: %d/%d", done, total)
		if done == total {
			fmt.Fprintln(w)
		}
	}
}

func reportResults(results []orchestrator.Result, log logging.Logger) {
	for _, r := range results {
		if r.Err != nil {
			log.Error(fmt.Sprintf("failed to rip %s", r.Source.MediaPath.String()), "error", r.Err)
		}
	}
}

// newLogger builds a logging.Logger writing to both stderr and a
// rotated log file, at a verbosity derived from opts.Verbosity/Debug.
func newLogger(opts ripconfig.Options) logging.Logger {
	level := logging.Warning
	switch {
	case opts.Debug, opts.Verbosity >= 3:
		level = logging.Debug
	case opts.Verbosity == 2:
		level = logging.Info
	case opts.Verbosity == 1:
		level = logging.Warning
	}

	fileLog := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}
	return logging.New(level, io.MultiWriter(os.Stderr, fileLog), true)
}
