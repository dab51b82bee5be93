/*
DESCRIPTION
  displayset.go groups the flat segment sequence produced by Reader into
  display sets: the span of segments from one PCS through the next END.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package pgs

import "github.com/ausocean/utils/logging"

// DisplaySet is one span of segments terminated by an END marker. A
// well-formed display set carries exactly one PCS, one WDS and one END,
// but malformed counts are only ever a warning.
type DisplaySet struct {
	Index int

	PCS          []*PresentationComposition
	PCSPTSMillis []int64
	WDS          [][]Window
	WDSPTSMillis []int64
	PDS          []*PaletteDefinition
	ODS          []*ObjectDefinition
	ODSPTSMillis []int64
	Ends         int
}

// IsStart reports whether this display set's (first) composition begins
// a new epoch rather than updating an existing one. A display set with
// no PCS is never a start.
func (d *DisplaySet) IsStart() bool {
	return len(d.PCS) > 0 && d.PCS[0].State.IsStart()
}

// HasImage reports whether this display set carries at least one object
// definition.
func (d *DisplaySet) HasImage() bool {
	return len(d.ODS) > 0
}

// Assembler turns a segment Reader into a sequence of DisplaySets.
type Assembler struct {
	r     *Reader
	log   logging.Logger
	index int
}

// NewAssembler returns an Assembler over the segments produced by r.
func NewAssembler(r *Reader, log logging.Logger) *Assembler {
	return &Assembler{r: r, log: log}
}

func (a *Assembler) warn(ds *DisplaySet) {
	if a.log == nil {
		return
	}
	if len(ds.PCS) != 1 {
		a.log.Warning("display set has unexpected PCS count", "index", ds.Index, "count", len(ds.PCS))
	}
	if len(ds.WDS) != 1 {
		a.log.Warning("display set has unexpected WDS count", "index", ds.Index, "count", len(ds.WDS))
	}
	if ds.Ends != 1 {
		a.log.Warning("display set has unexpected END count", "index", ds.Index, "count", ds.Ends)
	}
}

// Next collects segments until an END is seen (or the underlying Reader
// runs dry) and returns the resulting DisplaySet, or (nil, false) once
// no further segments remain.
func (a *Assembler) Next() (*DisplaySet, bool) {
	var ds *DisplaySet
	for {
		seg, ok := a.r.Next()
		if !ok {
			if ds != nil {
				a.warn(ds)
				return ds, true
			}
			return nil, false
		}
		if ds == nil {
			ds = &DisplaySet{Index: a.index}
			a.index++
		}
		switch seg.Kind {
		case TagPCS:
			ds.PCS = append(ds.PCS, seg.PCS)
			ds.PCSPTSMillis = append(ds.PCSPTSMillis, seg.PTSMillis)
		case TagWDS:
			ds.WDS = append(ds.WDS, seg.WDS)
			ds.WDSPTSMillis = append(ds.WDSPTSMillis, seg.PTSMillis)
		case TagPDS:
			ds.PDS = append(ds.PDS, seg.PDS)
		case TagODS:
			ds.ODS = append(ds.ODS, seg.ODS)
			ds.ODSPTSMillis = append(ds.ODSPTSMillis, seg.PTSMillis)
		case TagEND:
			ds.Ends++
			a.warn(ds)
			return ds, true
		}
	}
}

// All drains the assembler, returning every display set. Convenient for
// small streams and tests; the orchestrator path uses Next directly so
// that a crash mid-stream never loses already-decoded display sets.
func All(a *Assembler) []*DisplaySet {
	var out []*DisplaySet
	for {
		ds, ok := a.Next()
		if !ok {
			break
		}
		out = append(out, ds)
	}
	return out
}
