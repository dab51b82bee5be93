package rleimage

import (
	"testing"

	"github.com/pgsrip/pgsrip-go/pgs"
)

func twoEntryPalette() pgs.FullPalette {
	var p pgs.FullPalette
	p[0] = pgs.PaletteEntry{Y: 255, Alpha: 255} // background, light.
	p[1] = pgs.PaletteEntry{Y: 0, Alpha: 255}   // ink, dark.
	return p
}

// encodeBinaryRow RLE-encodes one row of 0/1 palette indices using only
// the short "0, 1..63" run form, terminated by a (0,0) end-of-line
// marker.
func encodeBinaryRow(indices []uint8) []byte {
	var out []byte
	i := 0
	for i < len(indices) {
		j := i
		for j < len(indices) && indices[j] == indices[i] {
			j++
		}
		length := j - i
		color := indices[i]
		if color == 0 {
			out = append(out, 0, byte(length))
		} else {
			for k := 0; k < length; k++ {
				out = append(out, color)
			}
		}
		i = j
	}
	out = append(out, 0, 0)
	return out
}

func TestDecodeBinaryRoundTrip(t *testing.T) {
	rows := [][]uint8{
		{0, 0, 1, 1, 0},
		{1, 0, 0, 0, 1},
	}
	var data []byte
	for _, row := range rows {
		data = append(data, encodeBinaryRow(row)...)
	}

	d := Decode(data, twoEntryPalette(), true)
	if d.Rows != len(rows) || d.Cols != len(rows[0]) {
		t.Fatalf("got %dx%d, want %dx%d", d.Rows, d.Cols, len(rows), len(rows[0]))
	}
	for r, row := range rows {
		for c, idx := range row {
			want := byte(0)
			if idx == 1 {
				want = 255
			}
			got := d.Pix[r*d.Cols+c]
			if got != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", r, c, got, want)
			}
		}
	}
}

func TestDecodeNeverPanicsOnEmptyInput(t *testing.T) {
	d := Decode(nil, twoEntryPalette(), true)
	if d.Rows*d.Cols != len(d.Pix) {
		t.Errorf("dimensions disagree with pixel count: %dx%d vs %d", d.Rows, d.Cols, len(d.Pix))
	}
}

func TestDecodeTruncatedDataIsPadded(t *testing.T) {
	// Five full-width rows of ink, but chop the encoded stream to 40
	// bytes so the decoder runs out partway through.
	width := 10
	height := 5
	var data []byte
	row := make([]uint8, width)
	for i := range row {
		row[i] = 1
	}
	for i := 0; i < height; i++ {
		data = append(data, encodeBinaryRow(row)...)
	}
	if len(data) < 54 {
		t.Fatalf("test fixture too small: %d bytes", len(data))
	}
	data = data[:40]

	d := Decode(data, twoEntryPalette(), true)
	if d.Rows*d.Cols != len(d.Pix) {
		t.Fatalf("dimensions disagree with pixel count: %dx%d vs %d", d.Rows, d.Cols, len(d.Pix))
	}
	if d.Cols != width {
		t.Errorf("Cols = %d, want %d", d.Cols, width)
	}
}

func TestDecodeColorModeProducesYCrCbAndAlpha(t *testing.T) {
	data := encodeBinaryRow([]uint8{1, 1, 0, 0})
	d := Decode(data, twoEntryPalette(), false)
	if d.Binary {
		t.Fatalf("expected color mode")
	}
	if len(d.YCrCb) != d.Rows*d.Cols*3 {
		t.Errorf("YCrCb length = %d, want %d", len(d.YCrCb), d.Rows*d.Cols*3)
	}
	if len(d.Alpha) != d.Rows*d.Cols {
		t.Errorf("Alpha length = %d, want %d", len(d.Alpha), d.Rows*d.Cols)
	}
}

func TestSafeGetOutOfRange(t *testing.T) {
	if safeGet(nil, 0) != 0 {
		t.Errorf("safeGet on nil slice should return 0")
	}
	if safeGet([]byte{1, 2}, 5) != 0 {
		t.Errorf("safeGet past end should return 0")
	}
	if safeGet([]byte{1, 2}, -1) != 0 {
		t.Errorf("safeGet with negative index should return 0")
	}
}
