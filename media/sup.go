/*
DESCRIPTION
  sup.go wraps a standalone .sup file as a single-track Source: the
  simplest possible media, with no track selection to perform.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package media

import (
	"github.com/pgsrip/pgsrip-go/internal/mediapath"
	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
)

// Sup is a bare .sup file: the PGS stream is the whole file, so there is
// no container or track metadata to inspect.
type Sup struct {
	path mediapath.MediaPath
}

// NewSup builds a Sup from a filesystem path.
func NewSup(path string) *Sup {
	return &Sup{path: mediapath.New(path)}
}

// Sources returns this file's single Source, or nil if opts' age or
// language filter excludes it.
func (s *Sup) Sources(opts ripconfig.Options) []*Source {
	if !ageFilter(s.path.Age(), opts) {
		return nil
	}
	if len(opts.Languages) > 0 && !containsLanguage(opts.Languages, s.path.Language) {
		return nil
	}
	return []*Source{{MediaPath: s.path, read: s.path.ReadFile}}
}
