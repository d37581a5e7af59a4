package model

import (
	"fmt"
	"strings"
)

// Meta regroupe les métadonnées extraites d'une vidéo YouTube, dont le
// catalogue complet des pistes de sous-titres (manuelles et automatiques).
type Meta struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Uploader string         `json:"uploader,omitempty"`
	Duration Seconds        `json:"duration,omitempty"`
	Tracks   []CaptionTrack `json:"tracks,omitempty"`
}

func (m Meta) HasCaptions() bool {
	return len(m.Tracks) != 0
}

// TitleOrID retourne le titre, ou sinon l'ID de la vidéo
func (m Meta) TitleOrID() string {
	if m.Title != "" {
		return m.Title
	}
	return m.ID
}

func (m Meta) String() string {
	return fmt.Sprintf("Meta[ID=%s, Title=%q, Uploader=%s, Tracks=%d]",
		m.ID, m.Title, m.Uploader, len(m.Tracks))
}

// Pretty retourne une fiche multi-lignes simple avec les langues des pistes
// telles qu'elles apparaissent dans le catalogue.
func (m Meta) Pretty() string {
	langs := make([]string, 0, len(m.Tracks))
	seen := make(map[string]bool, len(m.Tracks))
	for _, t := range m.Tracks {
		key := t.Lang
		if t.IsAuto() {
			key += " (auto)"
		}
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		langs = append(langs, key)
	}
	display := "(aucune)"
	if len(langs) > 0 {
		display = strings.Join(langs, ", ")
	}

	return fmt.Sprintf(
		"Meta:\n"+
			"  ID       : %s\n"+
			"  Title    : %q\n"+
			"  Uploader : %s\n"+
			"  Duration : %s\n"+
			"  Captions : %s\n",
		m.ID, m.Title, m.Uploader, m.Duration.TimestampHHMMSS(), display)
}

// Seconds est un alias explicite pour représenter une durée en secondes.
type Seconds int64

// TimestampHHMMSS formate Seconds en "HH:MM:SS" (toujours 2 chiffres par composant).
func (s Seconds) TimestampHHMMSS() string {
	total := int64(s)
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}

func (s Seconds) Milliseconds() int64 {
	return int64(s) * 1000
}
