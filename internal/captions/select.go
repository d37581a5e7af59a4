package captions

import (
	"strings"

	"github.com/dage/karaoke/pkg/model"
)

// SelectTrack choisit l'unique piste à télécharger dans le catalogue :
// filtre sur le code langue (comparaison insensible à la casse), puis retourne
// la première piste au format préféré, sinon la première au format de repli.
// Sélection pure sur métadonnées déjà récupérées, aucun effet de bord.
func SelectTrack(catalog []model.CaptionTrack, lang string, preferred, fallback model.Format) (model.CaptionTrack, error) {
	var empty model.CaptionTrack

	matches := make([]model.CaptionTrack, 0, len(catalog))
	for _, t := range catalog {
		if strings.EqualFold(t.Lang, lang) {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return empty, &TrackNotFoundError{Lang: lang}
	}

	for _, want := range []model.Format{preferred, fallback} {
		if !want.IsCaption() {
			continue
		}
		for _, t := range matches {
			if t.Format == want {
				return t, nil
			}
		}
	}

	return empty, &FormatUnavailableError{
		Lang:      lang,
		Preferred: preferred,
		Fallback:  fallback,
	}
}
