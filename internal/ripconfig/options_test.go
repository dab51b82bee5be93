package ripconfig

import (
	"testing"
	"time"
)

func TestParseAge(t *testing.T) {
	cases := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"", 0, false},
		{"12h", 12 * time.Hour, false},
		{"1w2d", 7*24*time.Hour + 2*24*time.Hour, false},
		{"1w2d3h", 7*24*time.Hour + 2*24*time.Hour + 3*time.Hour, false},
		{"not-an-age", 0, true},
	}

	for _, c := range cases {
		got, err := ParseAge(c.in)
		if (err != nil) != c.wantErr {
			t.Errorf("ParseAge(%q) error = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if err == nil && got != c.want {
			t.Errorf("ParseAge(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	o := Options{}.WithDefaults()
	if o.Confidence != DefaultConfidence {
		t.Errorf("Confidence = %d, want %d", o.Confidence, DefaultConfidence)
	}
	if o.TesseractWidth != DefaultTesseractWidth {
		t.Errorf("TesseractWidth = %d, want %d", o.TesseractWidth, DefaultTesseractWidth)
	}

	o2 := Options{Confidence: 1000, TesseractWidth: 1}.WithDefaults()
	if o2.Confidence != 100 {
		t.Errorf("Confidence clamp = %d, want 100", o2.Confidence)
	}
	if o2.TesseractWidth != MinTesseractWidth {
		t.Errorf("TesseractWidth clamp = %d, want %d", o2.TesseractWidth, MinTesseractWidth)
	}
}

func TestParseSubtitleTypeFilter(t *testing.T) {
	valid := []SubtitleTypeFilter{
		FilterAll, FilterFullOnly, FilterForcedIncluded, FilterForcedOnly,
		FilterSDHIncluded, FilterSDHOnly, FilterAllIncluded,
	}
	for _, f := range valid {
		got, err := ParseSubtitleTypeFilter(string(f))
		if err != nil {
			t.Errorf("ParseSubtitleTypeFilter(%q): unexpected error: %v", f, err)
		}
		if got != f {
			t.Errorf("ParseSubtitleTypeFilter(%q) = %q, want %q", f, got, f)
		}
	}

	if _, err := ParseSubtitleTypeFilter("bogus"); err == nil {
		t.Errorf("expected an error for an unknown subtitle type")
	}
}
