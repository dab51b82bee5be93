package ripper

import (
	"strings"
	"testing"

	"github.com/pgsrip/pgsrip-go/ocrengine"
	"github.com/pgsrip/pgsrip-go/subtitle"
)

func TestBuildSRTSortsByStartTime(t *testing.T) {
	in := []Record{
		{StartMillis: 5000, EndMillis: 6000, Text: "b"},
		{StartMillis: 1000, EndMillis: 2000, Text: "a"},
		{StartMillis: 3000, EndMillis: 4000, Text: "c"},
	}
	out := BuildSRT(in)
	want := []int64{1000, 3000, 5000}
	for i, r := range out {
		if r.StartMillis != want[i] {
			t.Errorf("record %d start = %d, want %d", i, r.StartMillis, want[i])
		}
	}
}

func TestWriteSRTProducesContiguousIndices(t *testing.T) {
	records := BuildSRT([]Record{
		{StartMillis: 1000, EndMillis: 2000, Text: "hello"},
		{StartMillis: 3000, EndMillis: 4000, Text: "world"},
	})
	var sb strings.Builder
	if err := WriteSRT(&sb, records, ""); err != nil {
		t.Fatalf("WriteSRT: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "1\n00:00:01,000 --> 00:00:02,000\nhello\n\n") {
		t.Errorf("unexpected output for record 1:\n%s", out)
	}
	if !strings.Contains(out, "2\n00:00:03,000 --> 00:00:04,000\nworld\n\n") {
		t.Errorf("unexpected output for record 2:\n%s", out)
	}
}

func TestWriteSRTRejectsNonPositiveDuration(t *testing.T) {
	records := []Record{{StartMillis: 1000, EndMillis: 1000, Text: "x"}}
	var sb strings.Builder
	if err := WriteSRT(&sb, records, ""); err == nil {
		t.Errorf("expected an error for end == start")
	}
}

func TestWriteSRTRejectsEmptyText(t *testing.T) {
	records := []Record{{StartMillis: 1000, EndMillis: 2000, Text: ""}}
	var sb strings.Builder
	if err := WriteSRT(&sb, records, ""); err == nil {
		t.Errorf("expected an error for empty text")
	}
}

func TestFormatTimestamp(t *testing.T) {
	cases := map[int64]string{
		0:        "00:00:00,000",
		1500:     "00:00:01,500",
		61000:    "00:01:01,000",
		3661234:  "01:01:01,234",
	}
	for ms, want := range cases {
		if got := formatTimestamp(ms); got != want {
			t.Errorf("formatTimestamp(%d) = %s, want %s", ms, got, want)
		}
	}
}

func TestAcceptJoinsWordsIntoLinesAndBreaksOnLineAdvance(t *testing.T) {
	rows := []ocrengine.Row{
		{Level: 5, Page: 1, Block: 1, Paragraph: 1, Line: 1, Word: 1, Left: 10, Top: 10, Width: 10, Height: 10, Confidence: 90, Text: "Hello"},
		{Level: 5, Page: 1, Block: 1, Paragraph: 1, Line: 1, Word: 2, Left: 25, Top: 10, Width: 10, Height: 10, Confidence: 90, Text: "world"},
		{Level: 5, Page: 1, Block: 1, Paragraph: 1, Line: 2, Word: 1, Left: 10, Top: 25, Width: 10, Height: 10, Confidence: 90, Text: "Bye"},
	}
	table := ocrengine.NewTable(rows, 65)
	item := &subtitle.Item{Place: [4]int{0, 0, 40, 40}}

	text, ok := accept(table, item, 65)
	if !ok {
		t.Fatalf("expected accept to resolve the item")
	}
	if text != "Hello world\nBye" {
		t.Errorf("text = %q, want %q", text, "Hello world\nBye")
	}
}

func TestAcceptRejectsLowConfidenceUnlessRescuedByHighConfidenceElsewhere(t *testing.T) {
	rows := []ocrengine.Row{
		{Level: 5, Page: 1, Block: 1, Paragraph: 1, Line: 1, Word: 1, Left: 10, Top: 10, Width: 10, Height: 10, Confidence: 40, Text: "mystery"},
	}
	table := ocrengine.NewTable(rows, 65)
	item := &subtitle.Item{Place: [4]int{0, 0, 40, 40}}

	if _, ok := accept(table, item, 65); ok {
		t.Errorf("expected accept to reject a low-confidence unrescued word")
	}

	rowsWithRescue := append(rows, ocrengine.Row{
		Level: 5, Page: 2, Block: 1, Paragraph: 1, Line: 1, Word: 1,
		Left: 10, Top: 10, Width: 10, Height: 10, Confidence: 90, Text: "mystery",
	})
	rescueTable := ocrengine.NewTable(rowsWithRescue, 65)
	if _, ok := accept(rescueTable, item, 65); !ok {
		t.Errorf("expected accept to rescue a word seen at high confidence elsewhere in the pass")
	}
}

func TestSumWidths(t *testing.T) {
	// sumWidths relies only on subtitle.Item.Width, exercised indirectly
	// through the mosaic tests; this just checks the arithmetic.
	if got := sumWidths(nil, 10); got != 0 {
		t.Errorf("sumWidths(nil) = %d, want 0", got)
	}
}
