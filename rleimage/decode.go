/*
DESCRIPTION
  decode.go implements the PGS run-length image codec: decoding indexed
  object data plus a Y'CbCr+alpha palette into plain pixel buffers. It is
  pure Go with no cgo dependency so that the core codec stays testable
  without OpenCV — only the mosaic/debug-dump boundary (package imageio)
  needs an actual image type.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package rleimage decodes PGS object data (run-length encoded indexed
// bitmap rows) into either a binarized, OCR-ready grayscale buffer or a
// full-color Y'CbCr+alpha buffer.
package rleimage

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/pgsrip/pgsrip-go/pgs"
)

// ErrCorruptImage classifies an object data stream that decoded to fewer
// pixels than its inferred row/column count implies. Decode never
// returns it as an error value — it is only ever wrapped into
// Decoded.Err, since a corrupt image is still padded and usable.
var ErrCorruptImage = errors.New("rleimage: corrupt image data")

// Decoded is the result of decoding one object's RLE data. Exactly one
// of Pix (binary mode) or YCrCb+Alpha (color mode) is populated,
// according to Binary.
type Decoded struct {
	Rows, Cols int
	Binary     bool

	// Pix holds one byte per pixel, row-major: 255 where the palette
	// entry is dark (Y <= 127), 0 where it is light. Populated only when
	// Binary is true.
	Pix []byte

	// YCrCb holds three bytes per pixel, row-major, raw palette
	// Y/Cr/Cb values (not yet converted to BGR). Populated only when
	// Binary is false.
	YCrCb []byte

	// Alpha holds one byte per pixel, row-major. Populated only when
	// Binary is false.
	Alpha []byte

	// Err is non-nil when the run-length stream decoded to fewer pixels
	// than Rows*Cols implies, describing the padding Decode applied. It
	// never prevents Decode from returning a usable image.
	Err error
}

// safeGet returns data[i], or 0 if i is out of range. Reads beyond the
// end of a truncated stream are tolerated, never panicking.
func safeGet(data []byte, i int) uint8 {
	if i < 0 || i >= len(data) {
		return 0
	}
	return data[i]
}

// decodeRun decodes one RLE run starting at data[i], returning its pixel
// length, the palette color index it repeats, and how many input bytes
// it consumed.
func decodeRun(data []byte, i int) (length int, color uint8, consumed int) {
	first := safeGet(data, i)
	if first != 0 {
		return 1, first, 1
	}

	second := safeGet(data, i+1)
	switch {
	case second == 0:
		return 0, 0, 2 // End of line.
	case second < 64:
		return int(second), 0, 2
	}

	third := safeGet(data, i+2)
	switch {
	case second < 128:
		return (int(second-64) << 8) | int(third), 0, 3
	case second < 192:
		return int(second - 128), third, 3
	}

	fourth := safeGet(data, i+3)
	return (int(second-192) << 8) | int(third), fourth, 4
}

// Decode reconstructs a 2-D pixel array from RLE-encoded object data and
// an in-scope 256-entry palette. It never fails: a truncated or
// corrupted stream is padded with palette[0] rather than erroring.
func Decode(data []byte, palette pgs.FullPalette, binary bool) *Decoded {
	dimension := 1
	if !binary {
		dimension = 3
	}

	var channels []uint8 // dimension values per pixel, row-major.
	var alpha []uint8    // 1 value per pixel, color mode only.

	cols := 1
	colsSet := false

	i := 0
	for i < len(data) {
		length, colorIdx, consumed := decodeRun(data, i)
		if length == 0 && !colsSet {
			cols = len(channels) / dimension
			colsSet = true
		}

		entry := palette[colorIdx]
		if binary {
			for n := 0; n < length; n++ {
				channels = append(channels, inkValue(entry)...)
			}
		} else {
			for n := 0; n < length; n++ {
				channels = append(channels, entry.Y, entry.Cr, entry.Cb)
				alpha = append(alpha, entry.Alpha)
			}
		}
		i += consumed
	}

	if cols == 0 {
		cols = 1
	}
	total := len(channels) / dimension
	rows := (total + cols - 1) / cols

	want := cols * rows * dimension
	var decodeErr error
	if want != len(channels) {
		decodeErr = errors.Wrap(ErrCorruptImage, fmt.Sprintf(
			"decoded %d pixels, want %d (%d cols x %d rows); padded with palette[0]",
			len(channels)/dimension, want/dimension, cols, rows))
		fill := inkValue(palette[0])
		if !binary {
			fill = []uint8{palette[0].Y, palette[0].Cr, palette[0].Cb}
		}
		for len(channels) < want {
			channels = append(channels, fill...)
			if !binary {
				alpha = append(alpha, palette[0].Alpha)
			}
		}
	}

	d := &Decoded{Rows: rows, Cols: cols, Binary: binary, Err: decodeErr}
	if binary {
		d.Pix = channels
	} else {
		d.YCrCb = channels
		d.Alpha = alpha
	}
	return d
}

// inkValue is the binary-mode pixel value for a palette entry: 255
// (white) when the entry's luma is dark (<=127), 0 (black) otherwise.
// Subtitle text is light on a dark or transparent backdrop in the source
// palette, so this turns it into the black-ink-on-white imagery that OCR
// engines expect.
func inkValue(e pgs.PaletteEntry) []uint8 {
	if e.Y <= 127 {
		return []uint8{255}
	}
	return []uint8{0}
}
