/*
DESCRIPTION
  reader.go frames and dispatches PGS segments out of an in-memory byte
  buffer, the way codecutil.ByteScanner tracks an offset into a buffer
  rather than pulling bytes through an io.Reader — the whole .sup stream
  is already in memory by the time this runs.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package pgs

import (
	"encoding/binary"
	"fmt"

	"github.com/ausocean/utils/logging"
	"github.com/pkg/errors"
)

// ErrInvalidSegment classifies malformed segment framing: bad magic,
// too few header bytes, or an unrecognized tag. It is non-fatal for the
// caller — whatever segments were already read remain valid.
var ErrInvalidSegment = errors.New("pgs: invalid segment")

const (
	headerSize  = 13 // magic(2) + pts(4) + dts(4) + tag(1) + size(2)
	magicHi     = 'P'
	magicLo     = 'G'
)

// Reader frames segments out of a byte buffer and decodes each one's
// body, stopping with a logged warning (not a returned error) on any
// framing problem,
// per the "never guess" design choice: an unknown tag or truncated
// trailer ends the stream but keeps everything decoded so far.
type Reader struct {
	buf []byte
	off int
	log logging.Logger
}

// NewReader returns a Reader over data. log may be nil, in which case
// warnings are discarded.
func NewReader(data []byte, log logging.Logger) *Reader {
	return &Reader{buf: data, log: log}
}

func (r *Reader) warnf(format string, args ...interface{}) {
	if r.log != nil {
		r.log.Warning(fmt.Sprintf(format, args...))
	}
}

// Next decodes and returns the next segment, or (nil, false) when the
// stream is exhausted or has hit a framing problem. A framing problem is
// logged as a warning, never returned as an error: PGS streams are
// read best-effort.
func (r *Reader) Next() (*Segment, bool) {
	if len(r.buf)-r.off < 2 {
		return nil, false
	}
	if r.buf[r.off] != magicHi || r.buf[r.off+1] != magicLo {
		r.warnf("ignoring invalid PGS segment data at offset %d: bad magic", r.off)
		return nil, false
	}
	if len(r.buf)-r.off < headerSize {
		r.warnf("ignoring trailing %d bytes: shorter than a segment header", len(r.buf)-r.off)
		return nil, false
	}

	pts := binary.BigEndian.Uint32(r.buf[r.off+2 : r.off+6])
	dts := binary.BigEndian.Uint32(r.buf[r.off+6 : r.off+10])
	tag := Tag(r.buf[r.off+10])
	size := binary.BigEndian.Uint16(r.buf[r.off+11 : r.off+13])
	total := headerSize + int(size)

	if len(r.buf)-r.off < total {
		r.warnf("ignoring truncated segment: declared %d bytes, only %d remain", total, len(r.buf)-r.off)
		return nil, false
	}

	body := r.buf[r.off+headerSize : r.off+total]

	seg := &Segment{
		Kind:      tag,
		PTSMillis: ticksToMillis(pts),
		DTSMillis: ticksToMillis(dts),
	}

	var err error
	switch tag {
	case TagPCS:
		seg.PCS, err = readPCS(body)
	case TagWDS:
		seg.WDS, err = readWDS(body)
	case TagPDS:
		seg.PDS, err = readPDS(body)
	case TagODS:
		seg.ODS, err = readODS(body)
	case TagEND:
		// No body.
	default:
		r.warnf("unrecognized segment tag 0x%02x, stopping", uint8(tag))
		return nil, false
	}
	if err != nil {
		r.warnf("%s segment at offset %d: %v", tag, r.off, err)
		return nil, false
	}

	r.off += total
	return seg, true
}

func readPCS(b []byte) (*PresentationComposition, error) {
	if len(b) < 11 {
		return nil, errors.Wrap(ErrInvalidSegment, fmt.Sprintf("PCS body too short (%d bytes)", len(b)))
	}
	pc := &PresentationComposition{
		Width:         binary.BigEndian.Uint16(b[0:2]),
		Height:        binary.BigEndian.Uint16(b[2:4]),
		FrameRate:     b[4],
		Number:        binary.BigEndian.Uint16(b[5:7]),
		State:         CompositionState(b[7]),
		PaletteUpdate: b[8] != 0,
		PaletteID:     b[9],
	}
	n := int(b[10])
	off := 11
	for i := 0; i < n; i++ {
		if len(b)-off < 8 {
			return nil, errors.Wrap(ErrInvalidSegment, fmt.Sprintf("composition object %d/%d truncated", i+1, n))
		}
		obj := CompositionObject{
			ObjectID: binary.BigEndian.Uint16(b[off : off+2]),
			WindowID: b[off+2],
			X:        binary.BigEndian.Uint16(b[off+3 : off+5]),
			Y:        binary.BigEndian.Uint16(b[off+5 : off+7]),
		}
		cropped := b[off+7]
		off += 8
		if cropped != 0 {
			if len(b)-off < 8 {
				return nil, errors.Wrap(ErrInvalidSegment, fmt.Sprintf("composition object %d/%d crop truncated", i+1, n))
			}
			obj.Crop = &CompositionObjectCrop{
				X:      binary.BigEndian.Uint16(b[off : off+2]),
				Y:      binary.BigEndian.Uint16(b[off+2 : off+4]),
				Width:  binary.BigEndian.Uint16(b[off+4 : off+6]),
				Height: binary.BigEndian.Uint16(b[off+6 : off+8]),
			}
			off += 8
		}
		pc.Objects = append(pc.Objects, obj)
	}
	return pc, nil
}

func readWDS(b []byte) ([]Window, error) {
	if len(b) < 1 {
		return nil, errors.Wrap(ErrInvalidSegment, "WDS body too short")
	}
	n := int(b[0])
	windows := make([]Window, 0, n)
	off := 1
	for i := 0; i < n; i++ {
		if len(b)-off < 9 {
			return nil, errors.Wrap(ErrInvalidSegment, fmt.Sprintf("window %d/%d truncated", i+1, n))
		}
		windows = append(windows, Window{
			ID:     b[off],
			X:      binary.BigEndian.Uint16(b[off+1 : off+3]),
			Y:      binary.BigEndian.Uint16(b[off+3 : off+5]),
			Width:  binary.BigEndian.Uint16(b[off+5 : off+7]),
			Height: binary.BigEndian.Uint16(b[off+7 : off+9]),
		})
		off += 9
	}
	return windows, nil
}

func readPDS(b []byte) (*PaletteDefinition, error) {
	if len(b) < 2 {
		return nil, errors.Wrap(ErrInvalidSegment, "PDS body too short")
	}
	pd := &PaletteDefinition{ID: b[0], Version: b[1]}
	entries := b[2:]
	for i := 0; i+5 <= len(entries); i += 5 {
		idx := entries[i]
		pd.Palette[idx] = PaletteEntry{
			Y:     entries[i+1],
			Cr:    entries[i+2],
			Cb:    entries[i+3],
			Alpha: entries[i+4],
		}
	}
	return pd, nil
}

func readODS(b []byte) (*ObjectDefinition, error) {
	if len(b) < 4 {
		return nil, errors.Wrap(ErrInvalidSegment, "ODS body too short")
	}
	od := &ObjectDefinition{
		ID:       binary.BigEndian.Uint16(b[0:2]),
		Version:  b[2],
		Sequence: ObjectSequence(b[3]),
	}
	rest := b[4:]
	if od.Sequence.HasFirst() {
		if len(rest) < 7 {
			return nil, errors.Wrap(ErrInvalidSegment, "ODS missing width/height/data-length")
		}
		od.DataLen = uint32(rest[0])<<16 | uint32(rest[1])<<8 | uint32(rest[2])
		od.Width = binary.BigEndian.Uint16(rest[3:5])
		od.Height = binary.BigEndian.Uint16(rest[5:7])
		od.ImgData = append([]byte(nil), rest[7:]...)
	} else {
		od.ImgData = append([]byte(nil), rest...)
	}
	return od, nil
}
