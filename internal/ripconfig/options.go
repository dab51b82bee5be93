/*
DESCRIPTION
  options.go defines Options, the configuration struct threaded through
  the scanner, media sources and ripper. Mirrors the shape of
  revid/config.Config: a plain struct with doc-commented exported fields
  and named consts for the enumerations.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package ripconfig holds the configuration surface for a ripping run.
package ripconfig

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"golang.org/x/text/language"
)

// TesseractEngineMode selects the OCR engine's recognition algorithm.
type TesseractEngineMode int

// Valid TesseractEngineMode values, matching Tesseract's --oem values.
const (
	EngineLegacy   TesseractEngineMode = 0
	EngineNeural   TesseractEngineMode = 1 // Default: LSTM neural net only.
	EngineCombined TesseractEngineMode = 2
	EngineDefault  TesseractEngineMode = 3
)

// TesseractPageSegMode selects how the OCR engine segments the input
// image into blocks of text before recognition.
type TesseractPageSegMode int

// Subset of Tesseract's --psm values relevant to a single dense mosaic.
const (
	PSMAuto                 TesseractPageSegMode = 3
	PSMSingleUniformBlock   TesseractPageSegMode = 6 // Default: one block of evenly spaced text.
	PSMSingleLine           TesseractPageSegMode = 7
	PSMSparseText          TesseractPageSegMode = 11
)

// SubtitleTypeFilter narrows which Matroska subtitle tracks are selected,
// based on whether they are forced, SDH (subtitles for the deaf and hard
// of hearing), or a regular "full" track. Supplements the baseline
// language/dedup rules with the distinction the original ripper made from
// track naming conventions.
type SubtitleTypeFilter string

// Valid SubtitleTypeFilter values.
const (
	FilterAll             SubtitleTypeFilter = "all"
	FilterFullOnly         SubtitleTypeFilter = "full-only"
	FilterForcedIncluded   SubtitleTypeFilter = "forced-included"
	FilterForcedOnly       SubtitleTypeFilter = "forced-only"
	FilterSDHIncluded      SubtitleTypeFilter = "sdh-included"
	FilterSDHOnly          SubtitleTypeFilter = "sdh-only"
	FilterAllIncluded      SubtitleTypeFilter = "all-included"
)

// ParseSubtitleTypeFilter validates s against the known
// SubtitleTypeFilter values, returning an error for anything else so
// the CLI can reject a bad --subtitle-type flag as a ConfigError rather
// than silently falling back to FilterAll.
func ParseSubtitleTypeFilter(s string) (SubtitleTypeFilter, error) {
	switch f := SubtitleTypeFilter(s); f {
	case FilterAll, FilterFullOnly, FilterForcedIncluded, FilterForcedOnly,
		FilterSDHIncluded, FilterSDHOnly, FilterAllIncluded:
		return f, nil
	default:
		return "", fmt.Errorf("ripconfig: %q is not a valid subtitle type", s)
	}
}

// Default values, used when an Options field is left at its zero value.
const (
	DefaultConfidence      = 65
	DefaultTesseractWidth  = 31 * 1024
	MinTesseractWidth      = 10 * 1024
	MaxTesseractWidth      = 31 * 1024
	DefaultOneOfLang       = true
	// RepairWindow is the maximum gap, in milliseconds, between one
	// item's start and the next item's start for which a missing end
	// timestamp is repaired rather than the item dropped. The source
	// project used 5000ms in one branch and 10000ms in another; we
	// standardize on the longer window.
	RepairWindow = 10_000
)

// Options carries every knob the CLI surface exposes, plus the
// subtitle-type filter and staleness checks the original implementation
// performs. Zero-valued Options is a legal, if permissive, configuration.
type Options struct {
	// Languages restricts media scanning and Matroska track selection.
	// Empty means no restriction.
	Languages []language.Tag

	// Tags selects which post-processing rule tags apply. Rule loading
	// itself lives outside this module; Tags is only forwarded.
	Tags []string

	// ConfigPath names an external post-processing rule configuration
	// file. Like Tags, this module never reads it: rule loading and
	// selection are the external collaborator's job; the field exists
	// only so the CLI layer has somewhere to forward the value.
	ConfigPath string

	// Encoding is the text encoding used to write the output .srt file.
	// Empty means UTF-8.
	Encoding string

	// Overwrite allows re-ripping and overwriting an existing .srt.
	Overwrite bool

	// OnePerLang keeps only the first matching track per language,
	// per the original ripper's default and --all flag semantics.
	OnePerLang bool

	// SubtitleType filters Matroska tracks by forced/SDH/full status.
	SubtitleType SubtitleTypeFilter

	// KeepTempFiles disables cleanup of the per-source temp directory
	// and causes debug artifacts (one mosaic PNG and one OCR result JSON
	// per OCR pass) to be written there. Decoded segments are not
	// dumped.
	KeepTempFiles bool

	// MaxWorkers bounds both per-source concurrency and the value
	// written to the OCR engine's thread-count environment variable.
	// Zero means unset (let the OCR engine decide).
	MaxWorkers int

	// Confidence is the OCR acceptance threshold, 0..100.
	Confidence int

	// TesseractWidth overrides the OCR engine's max mosaic width in
	// pixels. Zero means DefaultTesseractWidth.
	TesseractWidth int

	OEM TesseractEngineMode
	PSM TesseractPageSegMode

	// Age filters media files by modification time; zero means no
	// filter.
	Age time.Duration

	// SrtAge skips ripping when an existing .srt is newer than this.
	SrtAge time.Duration

	// Debug enables debug-level logging and progress output. Debug
	// artifacts are governed by KeepTempFiles, not by Debug.
	Debug bool

	// Verbosity is the repeated -v count from the CLI.
	Verbosity int

	// Watch keeps the orchestrator running, ripping newly discovered
	// files as they appear under the scanned paths.
	Watch bool
}

// WithDefaults returns a copy of o with zero-valued numeric fields
// replaced by their documented defaults, and an empty Tags list replaced
// by {"default"}.
func (o Options) WithDefaults() Options {
	out := o
	if out.Confidence == 0 {
		out.Confidence = DefaultConfidence
	}
	out.Confidence = clamp(out.Confidence, 0, 100)

	if out.TesseractWidth == 0 {
		out.TesseractWidth = DefaultTesseractWidth
	}
	out.TesseractWidth = clamp(out.TesseractWidth, MinTesseractWidth, MaxTesseractWidth)

	if out.OEM == 0 {
		out.OEM = EngineNeural
	}
	if out.PSM == 0 {
		out.PSM = PSMSingleUniformBlock
	}
	if len(out.Tags) == 0 {
		out.Tags = []string{"default"}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ageExpr matches the CLI age grammar: an optional week count, day count,
// and hour count, each suffixed by its unit letter, e.g. "1w2d", "12h".
var ageExpr = regexp.MustCompile(`^(?:(\d+)w)?(?:(\d+)d)?(?:(\d+)h)?$`)

// ParseAge parses a duration string in the grammar ^(\d+w)?(\d+d)?(\d+h)?$.
// An empty string parses to zero duration.
func ParseAge(s string) (time.Duration, error) {
	m := ageExpr.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("ripconfig: %q is not a valid age", s)
	}

	weeks, err := atoiOrZero(m[1])
	if err != nil {
		return 0, err
	}
	days, err := atoiOrZero(m[2])
	if err != nil {
		return 0, err
	}
	hours, err := atoiOrZero(m[3])
	if err != nil {
		return 0, err
	}

	return time.Duration(weeks)*7*24*time.Hour +
		time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
