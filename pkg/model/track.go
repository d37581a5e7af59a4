package model

import (
	"fmt"
	"strings"
)

// KindASR marque les pistes auto-générées par la reconnaissance vocale YouTube.
const KindASR = "asr"

// CaptionTrack décrit une piste de sous-titres telle que cataloguée par la
// plateforme : code langue, format et handle de téléchargement. Immutable,
// construite depuis le catalogue et jetée après sélection.
type CaptionTrack struct {
	Lang   string `json:"lang"`
	Format Format `json:"format"`
	Kind   string `json:"kind,omitempty"` // "asr" pour les captions automatiques
	URL    string `json:"url,omitempty"`
}

// IsAuto indique si la piste est auto-générée (ASR).
func (t CaptionTrack) IsAuto() bool {
	return t.Kind == KindASR
}

// PayloadURL retourne l'URL effective de téléchargement de la piste.
// Si le handle ne précise pas encore le format (paramètre fmt=), on l'ajoute ;
// YouTube sert le même baseUrl dans les deux formats.
func (t CaptionTrack) PayloadURL() string {
	u := t.URL
	if u == "" || !t.Format.IsCaption() {
		return u
	}
	if strings.Contains(u, "fmt=") {
		return u
	}
	sep := "?"
	if strings.Contains(u, "?") {
		sep = "&"
	}
	return u + sep + "fmt=" + string(t.Format)
}

func (t CaptionTrack) String() string {
	return fmt.Sprintf("CaptionTrack(lang=%s, format=%s, kind=%s)", t.Lang, t.Format, t.Kind)
}
