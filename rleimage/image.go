/*
DESCRIPTION
  image.go wraps one object's raw RLE bytes and its in-scope palette into
  a lazily-decoded image, so that assembling a display set never pays
  the decode cost for an object a caller ends up skipping (e.g. a
  duplicate epoch-update object the ripper chooses not to OCR again).

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package rleimage

import (
	"sync"

	"github.com/pgsrip/pgsrip-go/pgs"
)

// PgsImage is a single subtitle bitmap: RLE-encoded object data plus the
// palette in scope when it was displayed. Decode happens once, on first
// use, via Data or ColorData.
type PgsImage struct {
	rle     []byte
	palette pgs.FullPalette

	once   sync.Once
	binary *Decoded

	colorOnce sync.Once
	color     *Decoded
}

// New returns a PgsImage over rle data interpreted against palette.
func New(rle []byte, palette pgs.FullPalette) *PgsImage {
	return &PgsImage{rle: rle, palette: palette}
}

// Data returns the binarized, OCR-ready decode of this image: one byte
// per pixel, 255 for dark palette entries and 0 for light ones.
func (p *PgsImage) Data() *Decoded {
	p.once.Do(func() {
		p.binary = Decode(p.rle, p.palette, true)
	})
	return p.binary
}

// ColorData returns the full-color decode of this image: three Y/Cr/Cb
// bytes plus one alpha byte per pixel. The OCR pipeline never calls
// this; it exists for debug-artifact dumps of the source imagery.
func (p *PgsImage) ColorData() *Decoded {
	p.colorOnce.Do(func() {
		p.color = Decode(p.rle, p.palette, false)
	})
	return p.color
}

// Shape returns the binarized decode's row and column counts without
// requiring the caller to hold onto the Decoded value.
func (p *PgsImage) Shape() (rows, cols int) {
	d := p.Data()
	return d.Rows, d.Cols
}
