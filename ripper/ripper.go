/*
DESCRIPTION
  ripper.go is the result demuxer and adaptive retry policy: it turns a
  mosaic OCR pass into accepted (start, end, text) records, sending
  low-confidence, unrecognized items back through narrower, more
  lenient passes until resolved or given up on.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package ripper drives the OCR retry loop over a batch of subtitle
// items and demultiplexes OCR rows back onto the items that produced
// them.
package ripper

import (
	"context"
	"fmt"
	"strings"

	"github.com/ausocean/utils/logging"

	"github.com/pgsrip/pgsrip-go/internal/postprocess"
	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
	"github.com/pgsrip/pgsrip-go/mosaic"
	"github.com/pgsrip/pgsrip-go/ocrengine"
	"github.com/pgsrip/pgsrip-go/subtitle"
)

// Record is one accepted, OCR'd subtitle ready for SRT emission.
type Record struct {
	StartMillis, EndMillis int64
	Text                   string
}

// Ripper runs the OCR retry loop over one source's subtitle items.
type Ripper struct {
	Engine   *ocrengine.Engine
	Language string // ISO 639-2 alpha-3, or "" for the engine default.

	OEM        ripconfig.TesseractEngineMode
	PSM        ripconfig.TesseractPageSegMode
	Confidence int
	MaxWidth   int // Clamped tesseract width ceiling.
	MaxWorkers int

	Log logging.Logger

	// DumpArtifacts, when non-nil, is called with each pass's mosaic and
	// parsed OCR table for debug-artifact dumping. Never called in the
	// default configuration.
	DumpArtifacts func(pass int, img *mosaic.FullImage, table *ocrengine.Table)
}

// New returns a Ripper configured from opts. The gap later passed to Rip
// should be derived from the items about to be ripped via
// mosaic.GapsFor.
func New(engine *ocrengine.Engine, opts ripconfig.Options, language string, log logging.Logger) *Ripper {
	return &Ripper{
		Engine:     engine,
		Language:   language,
		OEM:        opts.OEM,
		PSM:        opts.PSM,
		Confidence: opts.Confidence,
		MaxWidth:   opts.TesseractWidth,
		MaxWorkers: opts.MaxWorkers,
		Log:        log,
	}
}

// Rip resolves as many items as it can, shrinking the mosaic and
// relaxing the confidence threshold between passes, and returns the
// accepted records. Items still unresolved after the final low-
// confidence rescue pass are warned about and omitted.
func (r *Ripper) Rip(ctx context.Context, items []*subtitle.Item, gap mosaic.Gaps, post postprocess.Func) ([]Record, error) {
	confidence := r.Confidence
	maxWidth := r.MaxWidth

	remaining := items
	previous := len(items)
	var accepted []Record
	pass := 0

	for previous > 0 {
		acc, rem, err := r.process(ctx, remaining, gap, confidence, maxWidth, post, &pass)
		if err != nil {
			return nil, err
		}
		accepted = append(accepted, acc...)
		if len(rem) == 0 {
			break
		}

		current := len(rem)
		if current < 20 {
			width := sumWidths(rem, gap.X)
			if width > r.MaxWidth {
				width = r.MaxWidth
			}
			acc2, rem2, err := r.process(ctx, rem, gap, 0, width, post, &pass)
			if err != nil {
				return nil, err
			}
			accepted = append(accepted, acc2...)
			if len(rem2) > 0 && r.Log != nil {
				r.Log.Warning(fmt.Sprintf("ripper: %d subtitles were not ripped", len(rem2)))
			}
			break
		} else if float64(current) > 0.8*float64(previous) {
			width := sumWidths(rem, gap.X)
			if width > r.MaxWidth {
				width = r.MaxWidth
			}
			maxWidth = width / 2
			confidence -= 5
			if confidence < 0 {
				confidence = 0
			}
		}
		previous = current
		remaining = rem
	}
	return accepted, nil
}

func sumWidths(items []*subtitle.Item, gapX int) int {
	total := 0
	for _, it := range items {
		total += it.Width() + gapX
	}
	return total
}

// process runs one OCR pass over items and splits them into accepted
// records and items still needing another pass.
func (r *Ripper) process(ctx context.Context, items []*subtitle.Item, gap mosaic.Gaps, confidence, maxWidth int, post postprocess.Func, pass *int) ([]Record, []*subtitle.Item, error) {
	full := mosaic.Layout(items, gap, maxWidth)

	table, err := r.Engine.Recognize(ctx, full, ocrengine.Options{
		Language:   r.Language,
		OEM:        r.OEM,
		PSM:        r.PSM,
		Confidence: confidence,
		MaxWorkers: r.MaxWorkers,
	})
	if err != nil {
		return nil, nil, err
	}

	*pass++
	if r.DumpArtifacts != nil {
		r.DumpArtifacts(*pass, full, table)
	}

	var accepted []Record
	var remaining []*subtitle.Item
	for _, it := range items {
		text, ok := accept(table, it, confidence)
		if !ok {
			remaining = append(remaining, it)
			continue
		}
		it.Text = text
		if post != nil {
			it.Text = post(it.Text)
		}
		if it.Text == "" || it.EndMillis == nil {
			continue
		}
		accepted = append(accepted, Record{StartMillis: it.StartMillis, EndMillis: *it.EndMillis, Text: it.Text})
	}
	return accepted, remaining, nil
}

// accept assembles item's recognized text from table, or reports false
// when any of its words falls below confidence and isn't otherwise a
// high-confidence word elsewhere in this pass.
func accept(table *ocrengine.Table, item *subtitle.Item, confidence int) (string, bool) {
	rows := table.Select(item.Place)

	var lines []string
	var words []string
	var last *ocrengine.Row
	for i := range rows {
		row := rows[i]
		if row.Confidence < confidence && !table.HasWord(row.Text) {
			return "", false
		}
		if last != nil && len(words) > 0 &&
			(last.Page < row.Page || last.Block < row.Block || last.Paragraph < row.Paragraph || last.Line < row.Line) {
			lines = append(lines, strings.Join(words, " "))
			words = words[:0]
		}
		words = append(words, row.Text)
		last = &rows[i]
	}
	if len(words) > 0 {
		lines = append(lines, strings.Join(words, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}
