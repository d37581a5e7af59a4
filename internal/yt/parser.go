package yt

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/dage/karaoke/pkg/model"
)

// suffixe ajouté par yt-dlp aux captions auto dans la langue d'origine
const origSuffix = "-orig"

// ParseYTDLP transforme le JSON brut de yt-dlp en Meta, catalogue des pistes
// de sous-titres inclus. Toutes les langues et les deux formats de captions
// (json3, srv3) sont conservés : la sélection arrive plus tard, côté captions.
func ParseYTDLP(raw []byte) (*model.Meta, error) {
	var y ytdlpOutput
	if err := json.Unmarshal(raw, &y); err != nil {
		return nil, fmt.Errorf("unmarshal ytdlp output: %w", err)
	}

	meta := &model.Meta{
		ID:       y.ID,
		Title:    y.Title,
		Uploader: y.Uploader,
		Duration: model.Seconds(int64(math.Round(y.Duration))),
	}

	// sous-titres manuels : tout ce qui est dans un format de captions
	meta.Tracks = append(meta.Tracks, collectTracks(y.Subtitles, "")...)
	// captions automatiques (ASR)
	meta.Tracks = append(meta.Tracks, collectTracks(y.AutomaticCaptions, model.KindASR)...)

	return meta, nil
}

// collectTracks convertit une map langue -> items yt-dlp en CaptionTrack,
// en ne gardant que les formats de sous-titres exploitables (json3, srv3).
// Le suffixe "-orig" est retiré du code langue : la sélection se fait sur le
// code nu ("th"), pas sur la variante de doublage.
func collectTracks(m map[string][]subtitleItem, kind string) []model.CaptionTrack {
	var out []model.CaptionTrack
	for lang, items := range m {
		langClean := strings.TrimSuffix(lang, origSuffix)
		for _, it := range items {
			pf, err := model.ParseFormat(it.Ext)
			if err != nil || !pf.IsCaption() {
				continue
			}
			if it.URL == "" {
				continue
			}
			out = append(out, model.CaptionTrack{
				Lang:   langClean,
				Format: pf,
				Kind:   kind,
				URL:    it.URL,
			})
		}
	}
	return out
}
