/*
DESCRIPTION
  source.go defines Source, the staleness-checked, lazily-read handle to
  one PGS subtitle track — whether a bare .sup file or one Matroska
  subtitle track — that the orchestrator rips into an SRT.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package media locates PGS subtitle sources: standalone .sup files and
// Matroska (.mkv/.mks) subtitle tracks, selected and filtered the way
// the original ripper's track-selection rules describe.
package media

import (
	"time"

	"github.com/ausocean/utils/logging"
	"golang.org/x/text/language"

	"github.com/pgsrip/pgsrip-go/internal/mediapath"
	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
	"github.com/pgsrip/pgsrip-go/subtitle"
)

// Source is one subtitle track ready to be decoded and ripped. Reading
// the underlying bytes is deferred to Items, so discovering sources
// (scanning a directory tree, listing Matroska tracks) never touches an
// external extractor until a source is actually selected for ripping.
type Source struct {
	MediaPath mediapath.MediaPath
	read      func() ([]byte, error)
}

// SrtPath is the output path this source's SRT would be written to.
func (s *Source) SrtPath() mediapath.MediaPath {
	number := 0
	ext := "srt"
	return s.MediaPath.Translate(mediapath.Translation{Number: &number, Ext: &ext})
}

// Matches reports whether this source should be (re-)ripped, given the
// overwrite/srt-age policy in opts.
func (s *Source) Matches(opts ripconfig.Options) bool {
	srt := s.SrtPath()
	if !srt.Exists() {
		return true
	}
	if !opts.Overwrite {
		return false
	}
	if opts.SrtAge != 0 && srt.Age() < opts.SrtAge {
		return false
	}
	return true
}

// Items reads and decodes this source's subtitle items.
func (s *Source) Items(log logging.Logger) ([]*subtitle.Item, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	return subtitle.Decode(data, s.MediaPath, log), nil
}

// ageFilter reports whether a media item older than opts.Age (when set)
// should be excluded from scanning.
func ageFilter(age time.Duration, opts ripconfig.Options) bool {
	return opts.Age == 0 || age <= opts.Age
}

// containsLanguage reports whether tag appears in tags, compared by
// canonical string form so "en" and "eng"-derived tags that normalize to
// the same IETF tag still match.
func containsLanguage(tags []language.Tag, tag language.Tag) bool {
	for _, t := range tags {
		if t.String() == tag.String() {
			return true
		}
	}
	return false
}
