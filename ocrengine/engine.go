/*
DESCRIPTION
  engine.go shells out to the tesseract binary, the only OCR engine this
  module targets, mirroring the way device/raspivid.go and
  cmd/looper/main.go drive external processes via os/exec rather than
  linking a recognition library.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package ocrengine

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/pgsrip/pgsrip-go/imageio"
	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
	"github.com/pgsrip/pgsrip-go/mosaic"
)

// Options carries the per-pass knobs the adaptive retry policy varies.
type Options struct {
	// Language is a 3-letter (ISO 639-2) code, or empty for tesseract's
	// default.
	Language string

	OEM ripconfig.TesseractEngineMode
	PSM ripconfig.TesseractPageSegMode

	Confidence int

	// MaxWorkers, when non-zero, is written to the process-wide
	// OMP_THREAD_LIMIT environment variable before invoking tesseract.
	// Advisory only, not relied on for correctness.
	MaxWorkers int
}

// Engine drives an external tesseract process.
type Engine struct {
	// Path is the tesseract executable; "tesseract" (resolved via PATH)
	// when empty.
	Path string
}

// New returns an Engine invoking the tesseract binary at path, or the
// one found on PATH when path is empty.
func New(path string) *Engine {
	if path == "" {
		path = "tesseract"
	}
	return &Engine{Path: path}
}

// Recognize runs one OCR pass over img and returns its parsed result
// table. The mosaic is written to a scratch PNG file, since tesseract
// only accepts image files or stdin, not in-memory buffers.
func (e *Engine) Recognize(ctx context.Context, img *mosaic.FullImage, opts Options) (*Table, error) {
	if opts.MaxWorkers > 0 {
		os.Setenv("OMP_THREAD_LIMIT", strconv.Itoa(opts.MaxWorkers))
	}

	dir, err := os.MkdirTemp("", "pgsrip-ocr-*")
	if err != nil {
		return nil, errors.Wrap(err, "ocrengine: creating scratch dir")
	}
	defer os.RemoveAll(dir)

	pngPath := filepath.Join(dir, "mosaic.png")
	if err := imageio.WriteGrayPNG(pngPath, img); err != nil {
		return nil, errors.Wrap(err, "ocrengine: writing mosaic")
	}

	outBase := filepath.Join(dir, "result")
	args := []string{pngPath, outBase, "--psm", strconv.Itoa(int(opts.PSM)), "--oem", strconv.Itoa(int(opts.OEM))}
	if opts.Language != "" {
		args = append(args, "-l", opts.Language)
	}
	args = append(args, "tsv")

	cmd := exec.CommandContext(ctx, e.Path, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("ocrengine: tesseract failed: %s", out))
	}

	raw, err := os.ReadFile(outBase + ".tsv")
	if err != nil {
		return nil, errors.Wrap(err, "ocrengine: reading tesseract output")
	}

	rows, err := ParseTSV(string(raw))
	if err != nil {
		return nil, err
	}
	return NewTable(rows, opts.Confidence), nil
}
