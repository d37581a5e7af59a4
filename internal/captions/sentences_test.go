package captions

import (
	"testing"

	"github.com/dage/karaoke/pkg/model"
)

func thaiScenarioEvents() []CaptionEvent {
	return []CaptionEvent{
		{StartMs: 0, Text: "สวัสดี"},
		{StartMs: 500, Text: "ครับ"},
		{StartMs: 1200, Text: "ผม"},
		{StartMs: 1400, Text: "ชื่อ"},
		{StartMs: 1600, Text: "สมชาย"},
	}
}

// Le flux ASR thaï n'a pas de ponctuation : ici la particule finale บ sert de
// marqueur terminal configuré, et le seuil de silence à 1s ne déclenche pas
// entre ผม et ครับ (700ms).
func TestBuildSentences_ThaiWordStream(t *testing.T) {
	cfg := BoundaryConfig{
		TerminalRunes: "บ",
		GapMs:         1000,
		MaxTokens:     100,
		Joiner:        "",
	}

	got := BuildSentences(thaiScenarioEvents(), cfg)

	want := []model.SentenceEntry{
		{StartMs: 0, Text: "สวัสดีครับ"},
		{StartMs: 1200, Text: "ผมชื่อสมชาย"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d sentences, want %d: %#v", len(got), len(want), got)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %+v; want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildSentences_GapSplits(t *testing.T) {
	events := []CaptionEvent{
		{StartMs: 0, DurationMs: 400, Text: "ก่อน"},
		{StartMs: 5000, Text: "หลัง"}, // 4600ms de silence après la fin du précédent
	}

	got := BuildSentences(events, DefaultBoundaryConfig())

	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %#v", len(got), got)
	}
	if got[0].Text != "ก่อน" || got[0].StartMs != 0 {
		t.Errorf("sentence 0 = %+v", got[0])
	}
	if got[1].Text != "หลัง" || got[1].StartMs != 5000 {
		t.Errorf("sentence 1 = %+v", got[1])
	}
}

func TestBuildSentences_GapBelowThresholdJoins(t *testing.T) {
	events := []CaptionEvent{
		{StartMs: 0, Text: "หนึ่ง"},
		{StartMs: 1500, Text: "สอง"}, // 1500 <= 2000 : même phrase
	}

	got := BuildSentences(events, DefaultBoundaryConfig())

	if len(got) != 1 {
		t.Fatalf("got %d sentences, want 1: %#v", len(got), got)
	}
	if got[0].Text != "หนึ่งสอง" {
		t.Errorf("sentence = %q; want หนึ่งสอง", got[0].Text)
	}
}

func TestBuildSentences_TerminalPunctuation(t *testing.T) {
	events := []CaptionEvent{
		{StartMs: 0, Text: "First"},
		{StartMs: 300, Text: "part."},
		{StartMs: 600, Text: "Second"},
	}
	cfg := DefaultBoundaryConfig()
	cfg.Joiner = " " // format qui délimite les mots

	got := BuildSentences(events, cfg)

	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %#v", len(got), got)
	}
	if got[0].Text != "First part." {
		t.Errorf("sentence 0 = %q; want %q", got[0].Text, "First part.")
	}
	if got[1].Text != "Second" || got[1].StartMs != 600 {
		t.Errorf("sentence 1 = %+v", got[1])
	}
}

func TestBuildSentences_TerminatorHiddenByCloser(t *testing.T) {
	events := []CaptionEvent{
		{StartMs: 0, Text: `done."`},
		{StartMs: 100, Text: "next"},
	}
	cfg := DefaultBoundaryConfig()
	cfg.Joiner = " "

	got := BuildSentences(events, cfg)
	if len(got) != 2 {
		t.Fatalf("closer should not mask the terminator: %#v", got)
	}
}

func TestBuildSentences_MaxTokensCap(t *testing.T) {
	var events []CaptionEvent
	for i := 0; i < 6; i++ {
		events = append(events, CaptionEvent{StartMs: int64(i * 100), Text: "คำ"})
	}
	cfg := BoundaryConfig{TerminalRunes: ".", GapMs: 10000, MaxTokens: 3}

	got := BuildSentences(events, cfg)

	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2: %#v", len(got), got)
	}
	if got[0].StartMs != 0 || got[1].StartMs != 300 {
		t.Errorf("starts = %d, %d; want 0, 300", got[0].StartMs, got[1].StartMs)
	}
}

// Un événement isolé en fin de flux se ferme toujours en phrase.
func TestBuildSentences_DanglingTailKept(t *testing.T) {
	events := []CaptionEvent{{StartMs: 42, Text: "ท้าย"}}

	got := BuildSentences(events, DefaultBoundaryConfig())

	if len(got) != 1 || got[0].StartMs != 42 || got[0].Text != "ท้าย" {
		t.Fatalf("got %#v", got)
	}
}

func TestBuildSentences_EmptyStream(t *testing.T) {
	got := BuildSentences(nil, DefaultBoundaryConfig())
	if len(got) != 0 {
		t.Fatalf("empty stream should yield empty sequence, got %#v", got)
	}
}

// Les débuts de phrases ne décroissent jamais, quelle que soit la config.
func TestBuildSentences_OrderingInvariant(t *testing.T) {
	got := BuildSentences(thaiScenarioEvents(), BoundaryConfig{
		TerminalRunes: "บมย",
		GapMs:         300,
		MaxTokens:     2,
	})
	var prev int64 = -1
	for i, s := range got {
		if s.StartMs < prev {
			t.Errorf("sentence %d start %d decreased (prev %d)", i, s.StartMs, prev)
		}
		prev = s.StartMs
	}
}
