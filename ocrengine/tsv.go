/*
DESCRIPTION
  tsv.go parses the tab-separated table an OCR engine emits (tesseract's
  `tsv` output format: one row per recognized page/block/paragraph/line/
  word element) and exposes a Table the result demuxer can query by
  mosaic placement.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package ocrengine invokes an external OCR engine over a mosaic image
// and parses its tabular output.
package ocrengine

import (
	"bufio"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// LevelWord is the TSV hierarchy level identifying a single recognized
// word, as opposed to a page/block/paragraph/line aggregate row.
const LevelWord = 5

// Row is one decoded TSV row.
type Row struct {
	Level                                 int
	Page, Block, Paragraph, Line, Word     int
	Left, Top, Width, Height               int
	Confidence                             int
	Text                                   string
}

// HCenter and WCenter are the row's bounding-box midpoints, used to test
// containment within an item's mosaic placement.
func (r Row) HCenter() int { return r.Top + r.Height/2 }
func (r Row) WCenter() int { return r.Left + r.Width/2 }

// Matches reports whether the row's center falls within place, a
// (top, left, bottom, right) rectangle, inclusive of its edges.
func (r Row) Matches(place [4]int) bool {
	top, left, bottom, right := place[0], place[1], place[2], place[3]
	h, w := r.HCenter(), r.WCenter()
	return top <= h && h <= bottom && left <= w && w <= right
}

// tsvHeader columns, in the order tesseract's --tsv output emits them.
var tsvHeader = []string{
	"level", "page_num", "block_num", "par_num", "line_num", "word_num",
	"left", "top", "width", "height", "conf", "text",
}

// ParseTSV decodes tesseract TSV output into Rows, skipping the header
// line. Malformed rows (wrong column count) are skipped rather than
// failing the whole parse, since a single stray line should never sink
// an OCR pass that otherwise succeeded.
func ParseTSV(raw string) ([]Row, error) {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var rows []Row
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			first = false
			continue // Header row.
		}
		if line == "" {
			continue
		}
		fields := strings.SplitN(line, "\t", len(tsvHeader))
		if len(fields) < len(tsvHeader) {
			continue
		}
		row, ok := parseRow(fields)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "ocrengine: reading tsv")
	}
	return rows, nil
}

func parseRow(fields []string) (Row, bool) {
	ints := make([]int, 11)
	for i := 0; i < 10; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(fields[i]))
		if err != nil {
			return Row{}, false
		}
		ints[i] = n
	}
	// conf is emitted as a float by some tesseract/pytesseract versions.
	confF, err := strconv.ParseFloat(strings.TrimSpace(fields[10]), 64)
	if err != nil {
		return Row{}, false
	}
	return Row{
		Level:      ints[0],
		Page:       ints[1],
		Block:      ints[2],
		Paragraph:  ints[3],
		Line:       ints[4],
		Word:       ints[5],
		Left:       ints[6],
		Top:        ints[7],
		Width:      ints[8],
		Height:     ints[9],
		Confidence: int(confF),
		Text:       fields[11],
	}, true
}

// Table is a parsed OCR pass, sorted by (page, block, paragraph, line,
// word) and indexed for fast high-confidence word lookups.
type Table struct {
	Rows       []Row
	confidence int
	words      map[string]bool
}

// NewTable builds a Table from rows, sorting them into table order and
// pre-building the cross-pass "seen at high confidence" word set that
// the result demuxer uses to rescue marginal reads.
func NewTable(rows []Row, confidence int) *Table {
	sorted := append([]Row(nil), rows...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Block != b.Block {
			return a.Block < b.Block
		}
		if a.Paragraph != b.Paragraph {
			return a.Paragraph < b.Paragraph
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Word < b.Word
	})

	words := make(map[string]bool)
	for _, r := range sorted {
		if r.Text != "" && r.Confidence >= confidence {
			words[r.Text] = true
		}
	}
	return &Table{Rows: sorted, confidence: confidence, words: words}
}

// Select returns the word-level rows whose center falls within place.
func (t *Table) Select(place [4]int) []Row {
	var out []Row
	for _, r := range t.Rows {
		if r.Level == LevelWord && r.Matches(place) {
			out = append(out, r)
		}
	}
	return out
}

// HasWord reports whether word was recognized anywhere in this pass at
// or above the pass's confidence threshold.
func (t *Table) HasWord(word string) bool {
	return t.words[word]
}
