package media

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/pgsrip/pgsrip-go/internal/ripconfig"
)

const sampleMkvmergeJSON = `{
  "tracks": [
    {"id": 0, "type": "video", "codec": "MPEG-H/HEVC"},
    {"id": 1, "type": "subtitles", "codec": "HDMV PGS",
     "properties": {"enabled_track": true, "forced_track": false,
       "language_ietf": "en", "language": "eng", "track_name": ""}},
    {"id": 2, "type": "subtitles", "codec": "HDMV PGS",
     "properties": {"enabled_track": true, "forced_track": false,
       "language_ietf": "en", "language": "eng", "track_name": "SDH"}},
    {"id": 3, "type": "subtitles", "codec": "HDMV PGS",
     "properties": {"enabled_track": true, "forced_track": true,
       "language_ietf": "en", "language": "eng", "track_name": "Forced"}},
    {"id": 4, "type": "subtitles", "codec": "HDMV PGS",
     "properties": {"enabled_track": false, "forced_track": false,
       "language_ietf": "fr", "language": "fre", "track_name": ""}}
  ]
}`

func TestParseMkvmergeTracksFiltersToPGSSubtitles(t *testing.T) {
	tracks, err := parseMkvmergeTracks([]byte(sampleMkvmergeJSON))
	if err != nil {
		t.Fatalf("parseMkvmergeTracks: %v", err)
	}
	if len(tracks) != 4 {
		t.Fatalf("got %d tracks, want 4 (video track excluded)", len(tracks))
	}
	if tracks[3].Enabled {
		t.Errorf("track 4 should be disabled")
	}
	if tracks[0].Language != language.English {
		t.Errorf("track 1 language = %v, want English", tracks[0].Language)
	}
}

func TestMkvTrackIsSDHAndIsFull(t *testing.T) {
	plain := MkvTrack{TrackName: ""}
	if !plain.IsFull() || plain.IsSDH() {
		t.Errorf("plain unnamed track should be full, not SDH")
	}

	sdh := MkvTrack{TrackName: "Hearing Impaired"}
	if !sdh.IsSDH() || sdh.IsFull() {
		t.Errorf("track named %q should be SDH, not full", sdh.TrackName)
	}

	forcedFull := MkvTrack{Forced: true, TrackName: "Full Forced"}
	if !forcedFull.IsFull() {
		t.Errorf("a forced track named %q should still count as full", forcedFull.TrackName)
	}

	forcedOnly := MkvTrack{Forced: true, TrackName: ""}
	if forcedOnly.IsFull() {
		t.Errorf("a plain forced track should not count as full")
	}
}

func TestMkvTrackMatchesTypeFilter(t *testing.T) {
	full := MkvTrack{TrackName: ""}
	forced := MkvTrack{Forced: true, TrackName: ""}
	sdh := MkvTrack{TrackName: "SDH"}

	cases := []struct {
		track  MkvTrack
		filter ripconfig.SubtitleTypeFilter
		want   bool
	}{
		{full, ripconfig.FilterFullOnly, true},
		{forced, ripconfig.FilterFullOnly, false},
		{forced, ripconfig.FilterForcedOnly, true},
		{full, ripconfig.FilterForcedOnly, false},
		{sdh, ripconfig.FilterSDHOnly, true},
		{full, ripconfig.FilterSDHOnly, false},
		{forced, ripconfig.FilterForcedIncluded, true},
		{full, ripconfig.FilterForcedIncluded, true},
		{sdh, ripconfig.FilterForcedIncluded, false},
		{sdh, ripconfig.FilterSDHIncluded, true},
		{full, ripconfig.FilterSDHIncluded, true},
		{forced, ripconfig.FilterSDHIncluded, false},
		{sdh, ripconfig.FilterAllIncluded, true},
		{forced, ripconfig.FilterAllIncluded, true},
		{full, ripconfig.FilterAll, true},
	}
	for i, c := range cases {
		if got := c.track.MatchesTypeFilter(c.filter); got != c.want {
			t.Errorf("case %d: MatchesTypeFilter(%v) = %v, want %v", i, c.filter, got, c.want)
		}
	}
}

func TestParseTrackLanguagePrefersIETF(t *testing.T) {
	if got := parseTrackLanguage("fr", "eng"); got != language.French {
		t.Errorf("got %v, want French", got)
	}
	if got := parseTrackLanguage("", "eng"); got != language.English {
		t.Errorf("got %v, want English (legacy fallback)", got)
	}
	if got := parseTrackLanguage("", "und"); got != language.Und {
		t.Errorf("got %v, want Und", got)
	}
}

func TestTrackTypeKey(t *testing.T) {
	if trackTypeKey(MkvTrack{Forced: true}) != "forced" {
		t.Errorf("forced track should key as forced")
	}
	if trackTypeKey(MkvTrack{TrackName: "deaf"}) != "sdh" {
		t.Errorf("SDH-named track should key as sdh")
	}
	if trackTypeKey(MkvTrack{}) != "full" {
		t.Errorf("plain track should key as full")
	}
}
