/*
DESCRIPTION
  types.go defines the wire types for the Presentation Graphics Stream
  segment protocol: the shared segment header, the five segment kinds,
  and the palette entry format. Parsing dispatches on the tag byte
  exactly once, in reader.go; everything here is a plain tagged variant
  with per-kind field accessors, not a class hierarchy.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package pgs decodes the binary Presentation Graphics Stream segment
// protocol used by Blu-ray subtitle streams (.sup files and the "HDMV
// PGS" track codec inside Matroska containers) into a sequence of
// display sets.
package pgs

import "fmt"

// Tag identifies a segment's kind, read from the single byte following
// the shared header's timestamps.
type Tag uint8

// Valid segment tags.
const (
	TagPDS Tag = 0x14 // Palette Definition Segment.
	TagODS Tag = 0x15 // Object Definition Segment.
	TagPCS Tag = 0x16 // Presentation Composition Segment.
	TagWDS Tag = 0x17 // Window Definition Segment.
	TagEND Tag = 0x80 // End of Display Set.
)

func (t Tag) String() string {
	switch t {
	case TagPDS:
		return "PDS"
	case TagODS:
		return "ODS"
	case TagPCS:
		return "PCS"
	case TagWDS:
		return "WDS"
	case TagEND:
		return "END"
	default:
		return fmt.Sprintf("Tag(0x%02x)", uint8(t))
	}
}

// CompositionState describes why a PCS was emitted: a plain screen
// update, a mid-stream re-entry point, or the start of a brand new
// subtitle epoch.
type CompositionState uint8

// Valid CompositionState values.
const (
	StateNormal      CompositionState = 0x00
	StateAcquisition CompositionState = 0x40
	StateEpochStart  CompositionState = 0x80
)

// IsStart reports whether this state begins a new display set run, i.e.
// the composition is not a mere mid-epoch update.
func (s CompositionState) IsStart() bool {
	return s == StateAcquisition || s == StateEpochStart
}

func (s CompositionState) String() string {
	switch s {
	case StateNormal:
		return "Normal"
	case StateAcquisition:
		return "AcquisitionPoint"
	case StateEpochStart:
		return "EpochStart"
	default:
		return fmt.Sprintf("CompositionState(0x%02x)", uint8(s))
	}
}

// ObjectSequence marks whether an ODS carries the first chunk, the last
// chunk, or both, of an object's RLE data.
type ObjectSequence uint8

// Valid ObjectSequence values.
const (
	SequenceLast         ObjectSequence = 0x40
	SequenceFirst        ObjectSequence = 0x80
	SequenceFirstAndLast ObjectSequence = 0xc0
)

// HasFirst reports whether this ODS carries an object's initial bytes
// (and therefore its width/height/data-length header).
func (s ObjectSequence) HasFirst() bool { return s&SequenceFirst != 0 }

// HasLast reports whether this ODS carries an object's final bytes.
func (s ObjectSequence) HasLast() bool { return s&SequenceLast != 0 }

// PaletteEntry is one Y'CbCr+alpha color table entry, addressed by the
// index byte preceding it in a PDS or embedded in ODS run data.
type PaletteEntry struct {
	Y, Cr, Cb, Alpha uint8
}

// FullPalette holds all 256 addressable palette entries. Entries not set
// by any PDS default to the zero value (0,0,0,0), i.e. fully transparent
// black.
type FullPalette [256]PaletteEntry

// Window is one screen region declared by a WDS.
type Window struct {
	ID                 uint8
	X, Y               uint16
	Width, Height      uint16
}

// CompositionObjectCrop is the optional per-object crop rectangle carried
// by a PCS composition object when its crop flag is set.
type CompositionObjectCrop struct {
	X, Y, Width, Height uint16
}

// CompositionObject associates a PGS object with a window and screen
// position within a single composition.
type CompositionObject struct {
	ObjectID uint16
	WindowID uint8
	X, Y     uint16
	Crop     *CompositionObjectCrop
}

// PresentationComposition is the decoded body of a PCS.
type PresentationComposition struct {
	Width, Height uint16
	FrameRate     uint8
	Number        uint16
	State         CompositionState
	PaletteUpdate bool
	PaletteID     uint8
	Objects       []CompositionObject
}

// PaletteDefinition is the decoded body of a PDS: an id/version pair and
// a sparse population of a 256-entry palette.
type PaletteDefinition struct {
	ID      uint8
	Version uint8
	Palette FullPalette
}

// ObjectDefinition is the decoded body of an ODS. Width, Height and
// DataLen are only meaningful (and only present on the wire) when
// Sequence.HasFirst() is true; a LAST-only ODS carries just trailing RLE
// bytes, to be concatenated onto the prior FIRST chunk by the caller.
type ObjectDefinition struct {
	ID       uint16
	Version  uint8
	Sequence ObjectSequence
	DataLen  uint32
	Width    uint16
	Height   uint16
	ImgData  []byte
}

// Corrupt reports a description of the mismatch between the object's
// declared data length and the RLE bytes actually present, or "" if the
// object is not truncated. Truncation is tolerated by the RLE decoder,
// not fatal here.
func (o *ObjectDefinition) Corrupt() string {
	if !o.Sequence.HasFirst() {
		return ""
	}
	want := int(o.DataLen) - 4
	if len(o.ImgData) != want {
		return fmt.Sprintf("found %d bytes for image, but %d were expected", len(o.ImgData), want)
	}
	return ""
}

// Segment is a tagged union over the five PGS segment kinds. Exactly one
// of PCS, WDS, PDS, ODS is non-nil according to Kind; TagEND carries
// none.
type Segment struct {
	Kind Tag

	// PTSMillis and DTSMillis are the presentation/decoding timestamps
	// in milliseconds, derived from the wire's 90kHz tick counts.
	PTSMillis int64
	DTSMillis int64

	PCS *PresentationComposition
	WDS []Window
	PDS *PaletteDefinition
	ODS *ObjectDefinition
}

const ticksPerMillisecond = 90

func ticksToMillis(ticks uint32) int64 {
	return int64(ticks) / ticksPerMillisecond
}
