/*
DESCRIPTION
  srt.go collects accepted records across every retry pass into a single
  SubRip file: final sort by start time, contiguous renumbering, and
  encoded output.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package ripper

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// BuildSRT sorts records by start time (stable, so items with identical
// start times keep their original relative order). The contiguous 1..N
// numbering is applied by WriteSRT from this order.
func BuildSRT(records []Record) []Record {
	out := append([]Record(nil), records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartMillis < out[j].StartMillis })
	return out
}

// WriteSRT writes records (already ordered by BuildSRT) to w in SubRip
// format, encoded per encodingName (an IANA name; empty means UTF-8).
func WriteSRT(w io.Writer, records []Record, encodingName string) error {
	enc, err := resolveEncoding(encodingName)
	if err != nil {
		return err
	}

	var sink io.Writer = w
	var encWriter io.Writer
	if enc != nil {
		encWriter = enc.NewEncoder().Writer(w)
		sink = encWriter
	}

	bw := bufio.NewWriter(sink)
	for i, r := range records {
		if r.EndMillis <= r.StartMillis || r.Text == "" {
			return errors.Errorf("ripper: record %d violates the end>start/non-empty-text contract", i+1)
		}
		fmt.Fprintf(bw, "%d\n%s --> %s\n%s\n\n", i+1, formatTimestamp(r.StartMillis), formatTimestamp(r.EndMillis), r.Text)
	}
	return bw.Flush()
}

func resolveEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("ripper: unknown encoding %q", name))
	}
	return enc, nil
}

func formatTimestamp(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hours := ms / 3_600_000
	ms -= hours * 3_600_000
	minutes := ms / 60_000
	ms -= minutes * 60_000
	seconds := ms / 1_000
	ms -= seconds * 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, ms)
}
