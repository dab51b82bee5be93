package mediapath

import (
	"testing"

	"golang.org/x/text/language"
)

func TestNew(t *testing.T) {
	cases := []struct {
		path     string
		wantBase string
		wantLang language.Tag
		wantExt  string
	}{
		{"movie.en.sup", "movie", language.English, "sup"},
		{"movie.sup", "movie", language.Und, "sup"},
		{"/tmp/show.s01e01.pt-BR.sup", "/tmp/show.s01e01", language.MustParse("pt-BR"), "sup"},
		{"movie", "movie", language.Und, ""},
	}

	for _, c := range cases {
		got := New(c.path)
		if got.BasePath != c.wantBase {
			t.Errorf("New(%q).BasePath = %q, want %q", c.path, got.BasePath, c.wantBase)
		}
		if got.Language != c.wantLang {
			t.Errorf("New(%q).Language = %v, want %v", c.path, got.Language, c.wantLang)
		}
		if got.Ext != c.wantExt {
			t.Errorf("New(%q).Ext = %q, want %q", c.path, got.Ext, c.wantExt)
		}
	}
}

func TestTranslateIdempotent(t *testing.T) {
	m := New("movie.en.sup")
	srt := "srt"
	lang := language.French

	a := m.Translate(Translation{Ext: &srt})
	b := m.Translate(Translation{Language: &lang})

	// Translate(a).Translate(a) == Translate(a) for a single repeated field.
	if got, want := a.Translate(Translation{Ext: &srt}), a; got != want {
		t.Errorf("repeated translate not idempotent: got %v, want %v", got, want)
	}
	if got, want := b.Translate(Translation{Language: &lang}), b; got != want {
		t.Errorf("repeated translate not idempotent: got %v, want %v", got, want)
	}
}

func TestTranslateOverridesLast(t *testing.T) {
	m := New("movie.en.sup")
	en := language.English
	fr := language.French

	got := m.Translate(Translation{Language: &en}).Translate(Translation{Language: &fr})
	want := m.Translate(Translation{Language: &fr})
	if got != want {
		t.Errorf("Translate(en).Translate(fr) = %v, want %v", got, want)
	}
}

func TestStringRendersAllFields(t *testing.T) {
	m := MediaPath{BasePath: "movie", Number: 1, Language: language.English, Ext: "srt"}
	if got, want := m.String(), "movie-1.en.srt"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
