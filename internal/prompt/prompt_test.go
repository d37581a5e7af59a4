package prompt

import (
	"strings"
	"testing"

	"github.com/dage/karaoke/pkg/model"
)

func TestDurationMs(t *testing.T) {
	sentences := []model.SentenceEntry{
		{StartMs: 0, Text: "สวัสดีครับ"},
		{StartMs: 92300, Text: "ผมชื่อสมชาย"},
	}
	if got := DurationMs(sentences); got != 97300 {
		t.Errorf("DurationMs = %d, attendu 97300", got)
	}
	if got := DurationMs(nil); got != 0 {
		t.Errorf("DurationMs(nil) = %d, attendu 0", got)
	}
}

func TestMmss(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{-5, "0:00"},
		{1000, "0:01"},
		{61000, "1:01"},
		{92300, "1:32"},
		{3600000, "60:00"},
	}
	for _, tc := range tests {
		if got := mmss(tc.ms); got != tc.want {
			t.Errorf("mmss(%d) = %q, attendu %q", tc.ms, got, tc.want)
		}
	}
}

func TestBriefRequestContainsExcerptAndAnchors(t *testing.T) {
	sentences := []model.SentenceEntry{
		{StartMs: 4220, Text: "[เพลง]"},
		{StartMs: 18680, Text: "หน้า"},
	}
	req := BriefRequest(sentences, 120000)

	if !strings.Contains(req, "0:04\t[เพลง]") {
		t.Error("extrait de paroles absent du brief")
	}
	// ancrages à 25/50/75 % de 2:00
	if !strings.Contains(req, "0:30, 1:00, 1:30") {
		t.Errorf("ancrages absents :\n%s", req)
	}
}

func TestBuild(t *testing.T) {
	assets := Assets{
		AudioURL:     "https://bucket.s3.amazonaws.com/karaoke_x/song.mp3",
		WordsURL:     "https://bucket.s3.amazonaws.com/karaoke_x/youtube_autosubs.words.txt",
		SentencesURL: "https://bucket.s3.amazonaws.com/karaoke_x/youtube_autosubs.sentences.txt",
	}
	sentences := []model.SentenceEntry{{StartMs: 0, Text: "สวัสดีครับ"}}

	got := Build(assets, sentences, FallbackBrief(DurationMs(sentences)))

	for _, want := range []string{
		assets.AudioURL,
		assets.WordsURL,
		assets.SentencesURL,
		"web karaoke player for THAI lyrics",
		"Song-specific style brief",
		"Neon Silk Pulse",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt sans %q", want)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("prompt avec retour à la ligne final")
	}
}
