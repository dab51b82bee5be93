/*
DESCRIPTION
  item.go defines PgsSubtitleItem and the display-set-to-item decode that
  assigns each subtitle its on-screen position and timing, repairing
  missing end timestamps the way adjacent PCS/WDS/END segments imply
  them rather than leaving gaps.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package subtitle turns a decoded PGS display-set sequence into timed,
// positioned subtitle items ready for mosaic layout and OCR.
package subtitle

import (
	"fmt"

	"github.com/ausocean/utils/logging"

	"github.com/pgsrip/pgsrip-go/internal/mediapath"
	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
	"github.com/pgsrip/pgsrip-go/pgs"
	"github.com/pgsrip/pgsrip-go/rleimage"
)

// Item is one subtitle bitmap with its timing, screen placement and
// (once OCR has run) recognized text.
type Item struct {
	Index     int
	MediaPath mediapath.MediaPath

	StartMillis int64
	// EndMillis is nil until a later display set's END/WDS or a
	// subsequent item's start repairs it.
	EndMillis *int64

	Image *rleimage.PgsImage

	windowX, windowY uint16

	Text string

	// Place is the item's (hStart, wStart, hEnd, wEnd) rectangle within
	// the mosaic it was packed into, set by the mosaic layout step.
	Place [4]int

	corrupt string
}

func newItem(index int, mp mediapath.MediaPath, pd *pgs.PaletteDefinition, od *pgs.ObjectDefinition, wds []pgs.Window, startMillis int64) *Item {
	x, y := windowOffset(wds)
	return &Item{
		Index:       index,
		MediaPath:   mp,
		StartMillis: startMillis,
		Image:       rleimage.New(od.ImgData, pd.Palette),
		windowX:     x,
		windowY:     y,
		corrupt:     od.Corrupt(),
	}
}

func windowOffset(wds []pgs.Window) (x, y uint16) {
	if len(wds) == 0 {
		return 0, 0
	}
	return wds[0].X, wds[0].Y
}

// Height and Width are the underlying binarized bitmap's dimensions.
func (it *Item) Height() int { r, _ := it.Image.Shape(); return r }
func (it *Item) Width() int  { _, c := it.Image.Shape(); return c }

// Shape returns (yStart, xStart, yEnd, xEnd): the item's rectangle in
// its source frame, combining the window offset with the bitmap size.
func (it *Item) Shape() (yStart, xStart, yEnd, xEnd int) {
	h, w := it.Height(), it.Width()
	yStart, xStart = int(it.windowY), int(it.windowX)
	return yStart, xStart, yStart + h, xStart + w
}

// HCenter is the vertical midpoint of the item's source-frame rectangle,
// used to decide whether two items belong on the same mosaic row.
func (it *Item) HCenter() int {
	yStart, _, yEnd, _ := it.Shape()
	return yStart + (yEnd-yStart)/2
}

// Intersect reports whether other's vertical center falls within it's
// source-frame rectangle, meaning the two subtitles occupy overlapping
// screen rows; the mosaic layout packs such items into the same row.
func (it *Item) Intersect(other *Item) bool {
	yStart, _, yEnd, _ := it.Shape()
	c := other.HCenter()
	return yStart <= c && c <= yEnd
}

// Validate reports (via log) timing or data problems that do not stop
// the item from being used, but are worth surfacing.
func (it *Item) Validate(log logging.Logger) {
	if log == nil {
		return
	}
	if it.corrupt != "" {
		log.Warning(fmt.Sprintf("corrupted %s: %s", it, it.corrupt))
	}
	if err := it.Image.Data().Err; err != nil {
		log.Warning(fmt.Sprintf("corrupted %s: %v", it, err))
	}
	if it.EndMillis == nil {
		log.Warning(fmt.Sprintf("corrupted %s: no end timestamp", it))
	} else if *it.EndMillis <= it.StartMillis {
		log.Warning(fmt.Sprintf("corrupted %s: end is before the start", it))
	}
}

func (it *Item) String() string {
	end := int64(-1)
	if it.EndMillis != nil {
		end = *it.EndMillis
	}
	return fmt.Sprintf("%s [%dms --> %dms]", it.MediaPath, it.StartMillis, end)
}

// Decode walks a display-set sequence and produces the subtitle items it
// carries, repairing end timestamps from:
//   - a following no-image display set's WDS timestamp (an explicit
//     "clear screen" marker), or
//   - the next item's start, when it arrives within ripconfig.RepairWindow
//     and no explicit end was seen.
//
// Decode never fails: a malformed stream simply yields fewer items, with
// problems logged by the underlying pgs.Reader/Assembler and by Validate.
func Decode(data []byte, mp mediapath.MediaPath, log logging.Logger) []*Item {
	assembler := pgs.NewAssembler(pgs.NewReader(data, log), log)

	var items []*Item
	index := 0
	for {
		ds, ok := assembler.Next()
		if !ok {
			break
		}

		if len(items) > 0 && !ds.HasImage() && len(ds.WDSPTSMillis) > 0 {
			last := items[len(items)-1]
			end := ds.WDSPTSMillis[len(ds.WDSPTSMillis)-1]
			last.EndMillis = &end
			continue
		}

		n := len(ds.PDS)
		if len(ds.ODS) < n {
			n = len(ds.ODS)
		}
		if len(ds.WDS) < n {
			n = len(ds.WDS)
		}
		for i := 0; i < n; i++ {
			item := newItem(index, mp, ds.PDS[i], ds.ODS[i], ds.WDS[i], ds.ODSPTSMillis[i])

			if len(items) > 0 {
				last := items[len(items)-1]
				if last.EndMillis == nil && last.StartMillis+ripconfig.RepairWindow >= item.StartMillis {
					end := item.StartMillis - 1
					if end < last.StartMillis+1 {
						end = last.StartMillis + 1
					}
					last.EndMillis = &end
				}
			}
			items = append(items, item)
			index++
		}
	}

	for _, it := range items {
		it.Validate(log)
	}
	return items
}
