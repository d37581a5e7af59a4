package yt

import (
	"testing"

	"github.com/dage/karaoke/pkg/model"
)

const ytdlpFixture = `{
  "id": "dQw4w9WgXcQ",
  "title": "เพลงทดสอบ",
  "uploader": "Somchai Channel",
  "duration": 212.4,
  "subtitles": {
    "en": [
      {"ext": "json3", "url": "https://yt.example/sub/en.json3"},
      {"ext": "vtt", "url": "https://yt.example/sub/en.vtt"}
    ]
  },
  "automatic_captions": {
    "th-orig": [
      {"ext": "json3", "url": "https://yt.example/auto/th.json3"},
      {"ext": "srv3", "url": "https://yt.example/auto/th.srv3"},
      {"ext": "srt", "url": "https://yt.example/auto/th.srt"}
    ],
    "en": [
      {"ext": "json3", "url": "https://yt.example/auto/en.json3"},
      {"ext": "json3", "url": ""}
    ]
  }
}`

func TestParseYTDLP(t *testing.T) {
	meta, err := ParseYTDLP([]byte(ytdlpFixture))
	if err != nil {
		t.Fatalf("ParseYTDLP: %v", err)
	}

	if meta.ID != "dQw4w9WgXcQ" || meta.Title != "เพลงทดสอบ" {
		t.Errorf("meta = %s", meta)
	}
	if meta.Duration != 212 {
		t.Errorf("Duration = %d, attendu 212", meta.Duration)
	}
	if !meta.HasCaptions() {
		t.Fatal("catalogue vide")
	}

	// 1 piste manuelle (en json3, le vtt est écarté)
	// + 3 pistes auto (th json3/srv3 — le srt est écarté — et en json3 sans l'URL vide)
	if len(meta.Tracks) != 4 {
		t.Fatalf("Tracks = %d pistes, attendu 4 : %+v", len(meta.Tracks), meta.Tracks)
	}

	var manual, auto int
	var thJSON3, thSRV3 bool
	for _, tr := range meta.Tracks {
		if tr.IsAuto() {
			auto++
		} else {
			manual++
		}
		if tr.Lang == "th-orig" {
			t.Errorf("suffixe -orig non retiré : %s", tr)
		}
		if tr.Lang == "th" && tr.Format == model.FormatJSON3 {
			thJSON3 = true
			if !tr.IsAuto() {
				t.Error("piste th json3 attendue comme auto (asr)")
			}
		}
		if tr.Lang == "th" && tr.Format == model.FormatSRV3 {
			thSRV3 = true
		}
	}
	if manual != 1 || auto != 3 {
		t.Errorf("manuel/auto = %d/%d, attendu 1/3", manual, auto)
	}
	if !thJSON3 || !thSRV3 {
		t.Errorf("pistes th manquantes (json3=%v srv3=%v)", thJSON3, thSRV3)
	}
}

func TestParseYTDLPInvalidJSON(t *testing.T) {
	if _, err := ParseYTDLP([]byte("pas du json")); err == nil {
		t.Fatal("JSON invalide accepté")
	}
}

func TestParseYTDLPNoCaptions(t *testing.T) {
	meta, err := ParseYTDLP([]byte(`{"id": "abc123def45", "title": "t", "duration": 10}`))
	if err != nil {
		t.Fatalf("ParseYTDLP: %v", err)
	}
	if meta.HasCaptions() {
		t.Errorf("catalogue non vide : %+v", meta.Tracks)
	}
}
