/*
DESCRIPTION
  color.go converts a decoded image's raw Y'CbCr+alpha buffer to
  interleaved BGRA bytes, the layout both the gocv and stdlib imageio
  backends want as their common input.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package rleimage

// ToBGRA converts a color-mode Decoded (YCrCb+Alpha) to interleaved
// B,G,R,A bytes, one pixel per 4 bytes, row-major. Calling it on a
// binary-mode Decoded returns nil.
func ToBGRA(d *Decoded) []byte {
	if d == nil || d.Binary {
		return nil
	}
	n := d.Rows * d.Cols
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		y := float64(d.YCrCb[i*3])
		cr := float64(d.YCrCb[i*3+1]) - 128
		cb := float64(d.YCrCb[i*3+2]) - 128

		r := clamp255(y + 1.403*cr)
		g := clamp255(y - 0.714*cr - 0.344*cb)
		b := clamp255(y + 1.773*cb)

		out[i*4] = b
		out[i*4+1] = g
		out[i*4+2] = r
		out[i*4+3] = d.Alpha[i]
	}
	return out
}

func clamp255(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
