package captions

import (
	"strings"

	"github.com/dage/karaoke/pkg/model"
)

// BuildWords éclate chaque événement en tokens et affecte à chacun le début
// de son événement. Les captions ASR thaï arrivent déjà segmentées par mot,
// un événement = un token dans le cas courant ; on fait confiance à la
// granularité amont, aucune segmentation linguistique n'est tentée ici.
// Quand un événement porte plusieurs mots séparés par des espaces (formats
// qui délimitent les mots), chacun hérite du même début : on ne fabrique
// jamais de timing sous-événement qui n'existe pas dans la source.
// La sortie est croissante en StartMs par construction (invariant de Normalize).
func BuildWords(events []CaptionEvent) []model.WordEntry {
	var out []model.WordEntry
	for _, ev := range events {
		for _, tok := range strings.Fields(ev.Text) {
			out = append(out, model.WordEntry{StartMs: ev.StartMs, Text: tok})
		}
	}
	return out
}
