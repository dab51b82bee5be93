/*
DESCRIPTION
  orchestrator.go drives one batch of subtitle sources end to end: scoped
  temp directory lifecycle, the skip/overwrite check, decoding, ripping,
  SRT writing and debug-artifact dumping, with per-source failure
  containment and bounded worker concurrency.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package orchestrator schedules per-source ripping runs: scanning paths
// for subtitle sources, running each through the ripper with its own
// temp directory, and optionally watching for newly created files.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ausocean/utils/logging"

	"github.com/pgsrip/pgsrip-go/imageio"
	"github.com/pgsrip/pgsrip-go/internal/postprocess"
	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
	"github.com/pgsrip/pgsrip-go/media"
	"github.com/pgsrip/pgsrip-go/mosaic"
	"github.com/pgsrip/pgsrip-go/ocrengine"
	"github.com/pgsrip/pgsrip-go/ripper"
)

// Result is one source's outcome: a nil Err when the source was ripped
// or skipped, or an error that was contained rather than allowed to
// abort the batch.
type Result struct {
	Source *media.Source
	Err    error
}

// Orchestrator runs the ripping pipeline over a batch of sources.
type Orchestrator struct {
	Engine  *ocrengine.Engine
	Options ripconfig.Options
	Post    postprocess.Func
	Log     logging.Logger

	// Progress, if set, is called after each source finishes with the
	// number of sources completed so far and the batch total. Mirrors
	// the original CLI's DebugProgressBar; nil is a no-op.
	Progress func(done, total int)
}

// New builds an Orchestrator from opts.
func New(engine *ocrengine.Engine, opts ripconfig.Options, post postprocess.Func, log logging.Logger) *Orchestrator {
	return &Orchestrator{Engine: engine, Options: opts.WithDefaults(), Post: post, Log: log}
}

// Run processes every source, bounded by Options.MaxWorkers concurrent
// workers (1 when unset), and returns one Result per source in the
// order of sources. A source-level failure never aborts the batch: it
// is logged and carried in its Result.
func (o *Orchestrator) Run(ctx context.Context, sources []*media.Source) []Result {
	workers := o.Options.MaxWorkers
	if workers <= 0 {
		workers = 1
	}

	sem := make(chan struct{}, workers)
	results := make([]Result, len(sources))
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i, src := range sources {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, src *media.Source) {
			defer wg.Done()
			defer func() { <-sem }()
			err := o.runOne(ctx, src)
			if err != nil && o.Log != nil {
				o.Log.Warning(fmt.Sprintf("orchestrator: %s: %v", src.MediaPath.String(), err))
			}
			results[i] = Result{Source: src, Err: err}

			if o.Progress != nil {
				mu.Lock()
				done++
				o.Progress(done, len(sources))
				mu.Unlock()
			}
		}(i, src)
	}
	wg.Wait()
	return results
}

// runOne executes the per-source pipeline: skip check, temp directory
// acquisition, decode, rip, write, optional debug-artifact dump, temp
// directory release.
func (o *Orchestrator) runOne(ctx context.Context, src *media.Source) error {
	if !src.Matches(o.Options) {
		return nil
	}

	tempDir, err := os.MkdirTemp("", "pgsrip-")
	if err != nil {
		return fmt.Errorf("orchestrator: creating temp directory: %w", err)
	}
	defer func() {
		if !o.Options.KeepTempFiles {
			os.RemoveAll(tempDir)
		}
	}()

	items, err := src.Items(o.Log)
	if err != nil {
		return fmt.Errorf("orchestrator: decoding %s: %w", src.MediaPath.String(), err)
	}
	if len(items) == 0 {
		return nil
	}

	language := ""
	if src.MediaPath.Language.String() != "und" {
		base, _ := src.MediaPath.Language.Base()
		language = base.ISO3()
	}

	r := ripper.New(o.Engine, o.Options, language, o.Log)
	if o.Options.KeepTempFiles {
		r.DumpArtifacts = debugDumper(tempDir)
	}

	gap := mosaic.GapsFor(items)
	records, err := r.Rip(ctx, items, gap, o.Post)
	if err != nil {
		return fmt.Errorf("orchestrator: ripping %s: %w", src.MediaPath.String(), err)
	}

	records = ripper.BuildSRT(records)
	srtPath := src.SrtPath()
	f, err := os.Create(srtPath.String())
	if err != nil {
		return fmt.Errorf("orchestrator: creating %s: %w", srtPath.String(), err)
	}
	defer f.Close()

	if err := ripper.WriteSRT(f, records, o.Options.Encoding); err != nil {
		return fmt.Errorf("orchestrator: writing %s: %w", srtPath.String(), err)
	}
	return nil
}

// debugDumper writes each OCR pass's mosaic PNG and recognized-row table
// into dir, named by pass number. Dump errors are swallowed: artifact
// dumping never turns a successful rip into a failure.
func debugDumper(dir string) func(pass int, img *mosaic.FullImage, table *ocrengine.Table) {
	return func(pass int, img *mosaic.FullImage, table *ocrengine.Table) {
		pngPath := filepath.Join(dir, fmt.Sprintf("pass-%02d.png", pass))
		if data, err := imageio.EncodeGrayPNG(img); err == nil {
			os.WriteFile(pngPath, data, 0o644)
		}

		jsonPath := filepath.Join(dir, fmt.Sprintf("pass-%02d.json", pass))
		if data, err := json.MarshalIndent(table.Rows, "", "  "); err == nil {
			os.WriteFile(jsonPath, data, 0o644)
		}
	}
}
