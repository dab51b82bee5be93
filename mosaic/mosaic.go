/*
DESCRIPTION
  mosaic.go packs many small grayscale subtitle bitmaps into one large
  image for a single OCR call: items sharing a vertical band are packed
  into a row ("area"), areas are stacked with a border, and each item's
  absolute placement in the full image is written back onto it for the
  result demuxer to use later.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package mosaic lays out subtitle bitmaps into a single composite
// image, operating on plain grayscale byte buffers so the layout
// algorithm stays free of any image-library dependency.
package mosaic

import (
	"sort"

	"github.com/pgsrip/pgsrip-go/subtitle"
)

// Border is the white margin left on every side of the assembled image.
const Border = 100

// Gaps holds the vertical and horizontal spacing reserved between areas
// and between items within an area, derived from the tallest item in a
// mosaic run so that adjacent subtitles are never read as one word.
type Gaps struct {
	Y, X int
}

// GapsFor derives Gaps from the tallest item height in a batch, mirroring
// the "half height plus a fixed margin" rule that keeps distinct
// subtitles from blurring together under OCR.
func GapsFor(items []*subtitle.Item) Gaps {
	maxHeight := 0
	for _, it := range items {
		if h := it.Height(); h > maxHeight {
			maxHeight = h
		}
	}
	half := maxHeight / 2
	return Gaps{Y: half + 30, X: half + 100}
}

// Area is one horizontal row of the mosaic: items whose vertical bands
// intersect, packed left to right at their original top offset.
type Area struct {
	items []*subtitle.Item
	gap   Gaps
	width int

	top, bottom int // Tightest vertical span across the area's items.
}

func newArea(items []*subtitle.Item, gap Gaps) *Area {
	a := &Area{items: items, gap: gap}
	a.top, _, a.bottom, _ = items[0].Shape()
	for _, it := range items {
		top, _, bottom, _ := it.Shape()
		if top < a.top {
			a.top = top
		}
		if bottom > a.bottom {
			a.bottom = bottom
		}
		a.width += it.Width()
	}
	a.width += (len(items) - 1) * gap.X
	return a
}

// Height is the area's vertical extent: the tightest band spanning
// every item's original top-to-bottom rectangle.
func (a *Area) Height() int { return a.bottom - a.top }

// render writes the area's items into dst (the full image's row-major
// grayscale buffer, stride bytes per row, already white-filled) at
// origin (top, left), and records each item's absolute place there.
func (a *Area) render(dst []byte, stride int, origin [2]int) {
	x := 0
	for _, it := range a.items {
		top, _, _, _ := it.Shape()
		hStart := top - a.top
		wStart := x
		h, w := it.Height(), it.Width()
		hEnd, wEnd := hStart+h, wStart+w

		it.Place = [4]int{origin[0] + hStart, origin[1] + wStart, origin[0] + hEnd, origin[1] + wEnd}

		pix := it.Image.Data().Pix
		for r := 0; r < h; r++ {
			srcOff := r * w
			dstOff := (origin[0]+hStart+r)*stride + origin[1] + wStart
			copy(dst[dstOff:dstOff+w], pix[srcOff:srcOff+w])
		}
		x += w + a.gap.X
	}
}

// FullImage is the assembled mosaic: a single grayscale buffer plus its
// dimensions, with Border white pixels on every side and Gaps.Y between
// stacked areas.
type FullImage struct {
	Rows, Cols int
	Pix        []byte
}

// Layout packs items into a FullImage, bounded by maxWidth per area
// (clamped by the caller to the OCR engine's tesseract width limits).
// Item iteration order is deterministic: items are only ever reordered
// by height, and ties preserve original (index) order, so the same
// input always produces the same mosaic.
func Layout(items []*subtitle.Item, gap Gaps, maxWidth int) *FullImage {
	if len(items) == 0 {
		return &FullImage{Rows: 2 * Border, Cols: 2 * Border, Pix: whiteFill(2 * Border * 2 * Border)}
	}

	remaining := append([]*subtitle.Item(nil), items...)
	sort.SliceStable(remaining, func(i, j int) bool { return remaining[i].Height() < remaining[j].Height() })

	var areas []*Area
	for len(remaining) > 0 {
		first := remaining[0]
		remaining = remaining[1:]

		var bandItems []*subtitle.Item
		var rest []*subtitle.Item
		bandItems = append(bandItems, first)
		for _, it := range remaining {
			if first.Intersect(it) {
				bandItems = append(bandItems, it)
			} else {
				rest = append(rest, it)
			}
		}
		remaining = rest

		var current []*subtitle.Item
		width := 0
		for _, it := range bandItems {
			width += it.Width() + gap.X
			if width > maxWidth && len(current) > 0 {
				areas = append(areas, newArea(current, gap))
				width = it.Width()
				current = []*subtitle.Item{it}
			} else {
				current = append(current, it)
			}
		}
		if len(current) > 0 {
			areas = append(areas, newArea(current, gap))
		}
	}

	totalHeight := 2 * Border
	maxAreaWidth := 0
	for i, a := range areas {
		if i > 0 {
			totalHeight += gap.Y
		}
		totalHeight += a.Height()
		if a.width > maxAreaWidth {
			maxAreaWidth = a.width
		}
	}
	totalWidth := maxAreaWidth + 2*Border

	full := &FullImage{Rows: totalHeight, Cols: totalWidth, Pix: whiteFill(totalHeight * totalWidth)}

	hStart := Border
	for _, a := range areas {
		hEnd := hStart + a.Height()
		a.render(full.Pix, full.Cols, [2]int{hStart, Border})
		hStart = hEnd + gap.Y
	}
	return full
}

func whiteFill(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = 255
	}
	return buf
}
