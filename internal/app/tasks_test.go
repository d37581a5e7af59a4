package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dage/karaoke/internal/captions"
	"github.com/dage/karaoke/internal/config"
	"github.com/dage/karaoke/internal/ui"
	"github.com/dage/karaoke/pkg/model"
)

// silentUI absorbe les sorties pendant les tests.
type silentUI struct{}

func (silentUI) GetYtURL(ctx context.Context) (string, error) { return "", nil }
func (silentUI) PrintInfo(ctx context.Context, s string)      {}
func (silentUI) PrintError(ctx context.Context, s string)     {}

var _ ui.Interface = silentUI{}

const (
	goodJSON3 = `{"events":[` +
		`{"tStartMs":0,"dDurationMs":1000,"segs":[{"utf8":"สวัสดี"}]},` +
		`{"tStartMs":1200,"dDurationMs":800,"segs":[{"utf8":"ครับ"}]}]}`
	goodSRV3 = `<?xml version="1.0" encoding="utf-8"?>` +
		`<timedtext format="3"><body>` +
		`<p t="0" d="1000"><s>สวัสดี</s></p>` +
		`<p t="1200" d="800"><s>ครับ</s></p>` +
		`</body></timedtext>`
)

func newTestApp() *App {
	cfg := &config.Config{
		Language:        "th",
		PreferredFormat: "json3",
		FallbackFormat:  "srv3",
	}
	cfg.Sentence.GapMs = captions.DefaultGapMs
	cfg.Sentence.TerminalRunes = captions.DefaultTerminalRunes
	cfg.Sentence.MaxTokens = captions.DefaultMaxTokens
	return New(cfg, silentUI{}, &CLIFlags{})
}

func TestFetchTimelineSourcePreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(goodJSON3))
	}))
	defer srv.Close()

	a := newTestApp()
	meta := &model.Meta{Tracks: []model.CaptionTrack{
		{Lang: "th", Format: model.FormatJSON3, Kind: model.KindASR, URL: srv.URL + "/t"},
	}}

	source, err := a.FetchTimelineSource(context.Background(), meta, "th")
	if err != nil {
		t.Fatalf("FetchTimelineSource: %v", err)
	}
	if source.Track.Format != model.FormatJSON3 {
		t.Errorf("format = %s, attendu json3", source.Track.Format)
	}
	if len(source.Cues) != 2 {
		t.Errorf("cues = %d, attendu 2", len(source.Cues))
	}
}

func TestFetchTimelineSourceFallbackOnCorruptPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/bad", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{pas du json3"))
	})
	mux.HandleFunc("/good", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(goodSRV3))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestApp()
	meta := &model.Meta{Tracks: []model.CaptionTrack{
		{Lang: "th", Format: model.FormatJSON3, Kind: model.KindASR, URL: srv.URL + "/bad"},
		{Lang: "th", Format: model.FormatSRV3, Kind: model.KindASR, URL: srv.URL + "/good"},
	}}

	source, err := a.FetchTimelineSource(context.Background(), meta, "th")
	if err != nil {
		t.Fatalf("le repli srv3 aurait dû réussir : %v", err)
	}
	if source.Track.Format != model.FormatSRV3 {
		t.Errorf("format = %s, attendu srv3 (repli)", source.Track.Format)
	}
	if len(source.Cues) != 2 {
		t.Errorf("cues = %d, attendu 2", len(source.Cues))
	}
}

func TestFetchTimelineSourceNoFallbackTrack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{pas du json3"))
	}))
	defer srv.Close()

	a := newTestApp()
	meta := &model.Meta{Tracks: []model.CaptionTrack{
		{Lang: "th", Format: model.FormatJSON3, Kind: model.KindASR, URL: srv.URL + "/t"},
	}}

	_, err := a.FetchTimelineSource(context.Background(), meta, "th")
	if err == nil {
		t.Fatal("payload corrompu sans repli accepté")
	}
	var perr *captions.ParseError
	if !errors.As(err, &perr) {
		t.Errorf("erreur = %v, attendu *captions.ParseError", err)
	}
}

func TestBuildTimelines(t *testing.T) {
	cues := []captions.RawCue{
		{StartMs: 0, DurationMs: 1000, Text: "สวัสดี"},
		{StartMs: 500, DurationMs: 500, Text: "ครับ"},
	}
	cfg := captions.DefaultBoundaryConfig()
	cfg.GapMs = 1000

	words, sentences := BuildTimelines(cues, cfg)
	if len(words) != 2 {
		t.Errorf("words = %d, attendu 2", len(words))
	}
	if len(sentences) != 1 || sentences[0].Text != "สวัสดีครับ" {
		t.Errorf("sentences = %+v", sentences)
	}
}

