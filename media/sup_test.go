package media

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/language"

	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
)

func TestSupSourcesYieldsSingleSourceByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.en.sup")
	if err := os.WriteFile(path, []byte("PG"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewSup(path)
	sources := s.Sources(ripconfig.Options{})
	if len(sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(sources))
	}
	if sources[0].MediaPath.Language != language.English {
		t.Errorf("source language = %v, want English", sources[0].MediaPath.Language)
	}
}

func TestSupSourcesFiltersByLanguage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.fr.sup")
	if err := os.WriteFile(path, []byte("PG"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := NewSup(path)
	sources := s.Sources(ripconfig.Options{Languages: []language.Tag{language.English}})
	if len(sources) != 0 {
		t.Fatalf("got %d sources, want 0 (language filtered out)", len(sources))
	}
}

func TestSourceMatchesHonorsOverwriteAndSrtAge(t *testing.T) {
	dir := t.TempDir()
	supPath := filepath.Join(dir, "movie.en.sup")
	if err := os.WriteFile(supPath, []byte("PG"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s := NewSup(supPath)
	src := s.Sources(ripconfig.Options{})[0]

	if !src.Matches(ripconfig.Options{}) {
		t.Errorf("a source with no existing .srt should always match")
	}

	srtPath := src.SrtPath().String()
	if err := os.WriteFile(srtPath, []byte("1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if src.Matches(ripconfig.Options{}) {
		t.Errorf("an existing .srt without Overwrite should not match")
	}
	if !src.Matches(ripconfig.Options{Overwrite: true}) {
		t.Errorf("Overwrite should allow re-ripping an existing .srt")
	}
}
