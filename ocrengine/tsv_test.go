package ocrengine

import "testing"

const sampleTSV = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext\n" +
	"1\t1\t0\t0\t0\t0\t0\t0\t200\t50\t-1\t\n" +
	"5\t1\t1\t1\t1\t1\t10\t10\t20\t20\t92.5\tHello\n" +
	"5\t1\t1\t1\t1\t2\t40\t10\t20\t20\t30\tworld\n"

func TestParseTSVSkipsHeaderKeepsAggregateRows(t *testing.T) {
	rows, err := ParseTSV(sampleTSV)
	if err != nil {
		t.Fatalf("ParseTSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[1].Text != "Hello" || rows[1].Confidence != 92 {
		t.Errorf("row 1 = %+v", rows[1])
	}
}

func TestTableSelectFiltersByLevelAndPlace(t *testing.T) {
	rows, err := ParseTSV(sampleTSV)
	if err != nil {
		t.Fatalf("ParseTSV: %v", err)
	}
	table := NewTable(rows, 65)

	// "Hello" center ~ (20, 20); "world" center ~ (20, 50). A place
	// covering only the first word should select only it.
	got := table.Select([4]int{0, 0, 40, 35})
	if len(got) != 1 || got[0].Text != "Hello" {
		t.Fatalf("Select = %+v, want just Hello", got)
	}
}

func TestTableHasWordTracksOnlyHighConfidence(t *testing.T) {
	rows, err := ParseTSV(sampleTSV)
	if err != nil {
		t.Fatalf("ParseTSV: %v", err)
	}
	table := NewTable(rows, 65)
	if !table.HasWord("Hello") {
		t.Errorf("expected Hello (conf 92) to be a high-confidence word")
	}
	if table.HasWord("world") {
		t.Errorf("expected world (conf 30) to not be a high-confidence word")
	}
}
