/*
DESCRIPTION
  scan.go walks the paths given on the command line, turning every .sup
  file and .mkv/.mks container found underneath them into media.Source
  values, and (when Options.Watch is set) keeps watching those
  directories for newly created files so a long-running batch picks up
  subtitles as they land.

LICENSE
  Copyright (C) 2026 the pgsrip-go project. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the pgsrip-go project.
*/

package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
	"github.com/pgsrip/pgsrip-go/media"
)

// isSource reports whether path's extension names a type this module
// can extract subtitles from.
func isSource(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sup", ".mkv", ".mks":
		return true
	default:
		return false
	}
}

// sourcesFor returns every media.Source path describes: a single
// source for a .sup file, or one source per selected track for an
// .mkv/.mks container.
func sourcesFor(ctx context.Context, path string, opts ripconfig.Options) ([]*media.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sup":
		return media.NewSup(path).Sources(opts), nil
	case ".mkv", ".mks":
		return media.NewMkv(path).Sources(ctx, opts)
	default:
		return nil, nil
	}
}

// Scan walks roots (files or directories) and returns every subtitle
// source found, honoring opts' age and language filters. A root that is
// a plain file is handed straight to sourcesFor without the walk
// filter; a file whose extension is not .sup, .mkv or .mks yields no
// source.
func Scan(ctx context.Context, roots []string, opts ripconfig.Options) ([]*media.Source, error) {
	var sources []*media.Source
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: scanning %s: %w", root, err)
		}

		if !info.IsDir() {
			got, err := sourcesFor(ctx, root, opts)
			if err != nil {
				return nil, err
			}
			sources = append(sources, got...)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isSource(path) {
				return nil
			}
			got, err := sourcesFor(ctx, path, opts)
			if err != nil {
				return err
			}
			sources = append(sources, got...)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("orchestrator: walking %s: %w", root, err)
		}
	}
	return sources, nil
}

// Watch scans roots once, ripping whatever is already there, then
// blocks watching roots' directories for newly created files, running
// each one through handle as it appears. It returns when ctx is
// cancelled or the underlying watcher fails to start.
func Watch(ctx context.Context, roots []string, opts ripconfig.Options, handle func([]*media.Source)) error {
	sources, err := Scan(ctx, roots, opts)
	if err != nil {
		return err
	}
	handle(sources)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("orchestrator: starting watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return fmt.Errorf("orchestrator: watching %s: %w", root, err)
		}
		dir := root
		if !info.IsDir() {
			dir = filepath.Dir(root)
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("orchestrator: watching %s: %w", dir, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 || !isSource(ev.Name) {
				continue
			}
			got, err := sourcesFor(ctx, ev.Name, opts)
			if err != nil || len(got) == 0 {
				continue
			}
			handle(got)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("orchestrator: watcher: %w", err)
		}
	}
}
