//go:build withcv
// +build withcv

/*
DESCRIPTION
  imageio_cv.go encodes a mosaic.FullImage (or a debug color preview) to
  PNG bytes and to disk using gocv, keeping every OpenCV touch point
  behind a withcv build tag.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package imageio

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/pgsrip/pgsrip-go/mosaic"
	"github.com/pgsrip/pgsrip-go/rleimage"
)

// EncodeGrayPNG encodes a grayscale mosaic to PNG bytes.
func EncodeGrayPNG(img *mosaic.FullImage) ([]byte, error) {
	mat, err := gocv.NewMatFromBytes(img.Rows, img.Cols, gocv.MatTypeCV8UC1, img.Pix)
	if err != nil {
		return nil, fmt.Errorf("imageio: building mat: %w", err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.PNGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("imageio: encoding png: %w", err)
	}
	defer buf.Close()

	return append([]byte(nil), buf.GetBytes()...), nil
}

// WriteGrayPNG writes a grayscale mosaic to path as a PNG file.
func WriteGrayPNG(path string, img *mosaic.FullImage) error {
	mat, err := gocv.NewMatFromBytes(img.Rows, img.Cols, gocv.MatTypeCV8UC1, img.Pix)
	if err != nil {
		return fmt.Errorf("imageio: building mat: %w", err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("imageio: writing %s failed", path)
	}
	return nil
}

// WriteColorPreviewPNG writes d's full-color decode (debug artifact
// only — the OCR pipeline never touches this path) to path as a PNG.
func WriteColorPreviewPNG(path string, d *rleimage.Decoded) error {
	bgra := rleimage.ToBGRA(d)
	mat, err := gocv.NewMatFromBytes(d.Rows, d.Cols, gocv.MatTypeCV8UC4, bgra)
	if err != nil {
		return fmt.Errorf("imageio: building color mat: %w", err)
	}
	defer mat.Close()

	if ok := gocv.IMWrite(path, mat); !ok {
		return fmt.Errorf("imageio: writing %s failed", path)
	}
	return nil
}
