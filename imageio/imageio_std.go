//go:build !withcv
// +build !withcv

/*
DESCRIPTION
  imageio_std.go is the stdlib-only counterpart of imageio_cv.go, used
  whenever OpenCV isn't available (CI, or a host without gocv), the way
  filter/filters_circleci.go stands in for gocv-backed filters.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package imageio

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pgsrip/pgsrip-go/mosaic"
	"github.com/pgsrip/pgsrip-go/rleimage"
)

func grayImage(img *mosaic.FullImage) *image.Gray {
	g := image.NewGray(image.Rect(0, 0, img.Cols, img.Rows))
	copy(g.Pix, img.Pix)
	return g
}

// EncodeGrayPNG encodes a grayscale mosaic to PNG bytes.
func EncodeGrayPNG(img *mosaic.FullImage) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, grayImage(img)); err != nil {
		return nil, fmt.Errorf("imageio: encoding png: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteGrayPNG writes a grayscale mosaic to path as a PNG file.
func WriteGrayPNG(path string, img *mosaic.FullImage) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, grayImage(img)); err != nil {
		return fmt.Errorf("imageio: encoding %s: %w", path, err)
	}
	return nil
}

// WriteColorPreviewPNG writes d's full-color decode (debug artifact
// only — the OCR pipeline never touches this path) to path as a PNG.
func WriteColorPreviewPNG(path string, d *rleimage.Decoded) error {
	bgra := rleimage.ToBGRA(d)
	img := image.NewNRGBA(image.Rect(0, 0, d.Cols, d.Rows))
	for i := 0; i < d.Rows*d.Cols; i++ {
		b, g, r, a := bgra[i*4], bgra[i*4+1], bgra[i*4+2], bgra[i*4+3]
		img.Set(i%d.Cols, i/d.Cols, color.NRGBA{R: r, G: g, B: b, A: a})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imageio: encoding %s: %w", path, err)
	}
	return nil
}
