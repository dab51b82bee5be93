/*
DESCRIPTION
  mediapath.go implements the MediaPath value type: a structured filename
  of the form <base>[-<n>].<lang>.<ext>, as described in the subtitle
  ripper's data model.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

// Package mediapath provides MediaPath, a structured, immutable
// representation of a subtitle/media file name.
package mediapath

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// MediaPath is a pure value type splitting a file path into a base path,
// an optional track number, an optional language tag, and an extension.
// It never touches the filesystem except through Exists, Age and
// ReadFile, which are the only methods that cross the I/O boundary.
type MediaPath struct {
	BasePath string
	Number   int
	Language language.Tag
	Ext      string
}

// New parses path into a MediaPath. The extension is taken as the final
// dotted suffix; the next dotted suffix, if any, is parsed as an IETF
// language tag and falls back to language.Und when absent or unparsable.
func New(path string) MediaPath {
	filePart, ext := splitExt(path)
	base, code := splitExt(filePart)

	lang := language.Und
	if code != "" {
		if tag, err := language.Parse(strings.TrimPrefix(code, ".")); err == nil {
			lang = tag
			filePart = base
		}
	}

	return MediaPath{
		BasePath: filePart,
		Language: lang,
		Ext:      strings.TrimPrefix(ext, "."),
	}
}

func splitExt(path string) (rest, ext string) {
	ext = filepath.Ext(path)
	return strings.TrimSuffix(path, ext), ext
}

// String renders the MediaPath back into a file path.
func (m MediaPath) String() string {
	var sb strings.Builder
	sb.WriteString(m.BasePath)
	if m.Number != 0 {
		sb.WriteString("-")
		sb.WriteString(strconv.Itoa(m.Number))
	}
	if m.Language != language.Und {
		sb.WriteString(".")
		sb.WriteString(m.Language.String())
	}
	if m.Ext != "" {
		sb.WriteString(".")
		sb.WriteString(m.Ext)
	}
	return sb.String()
}

// Translation describes the fields to override in Translate. A nil field
// means "leave as-is"; the pointers distinguish "unset" from "set to
// zero value".
type Translation struct {
	Number   *int
	Language *language.Tag
	Ext      *string
}

// Translate returns a copy of m with any non-nil Translation field
// replaced. Repeated translation of the same field is idempotent:
// m.Translate(a).Translate(a) == m.Translate(a) for any single-field a.
func (m MediaPath) Translate(t Translation) MediaPath {
	out := m
	if t.Number != nil {
		out.Number = *t.Number
	}
	if t.Language != nil {
		out.Language = *t.Language
	}
	if t.Ext != nil {
		out.Ext = *t.Ext
	}
	return out
}

// Exists reports whether the path currently exists on disk.
func (m MediaPath) Exists() bool {
	_, err := os.Stat(m.String())
	return err == nil
}

// Age returns how long ago the underlying file was last modified. It
// returns zero if the file does not exist.
func (m MediaPath) Age() time.Duration {
	info, err := os.Stat(m.String())
	if err != nil {
		return 0
	}
	return time.Since(info.ModTime())
}

// ReadFile reads the full contents of the underlying file.
func (m MediaPath) ReadFile() ([]byte, error) {
	return os.ReadFile(m.String())
}
