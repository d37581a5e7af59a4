package captions

import (
	"regexp"
	"sort"
	"strings"
)

// CaptionEvent est l'unité normalisée, entrée commune des deux builders :
// début en millisecondes, durée (0 = inconnue) et texte non vide après trim.
// Le flux produit par Normalize est croissant en StartMs et sans doublon
// (StartMs, Text).
type CaptionEvent struct {
	StartMs    int64
	DurationMs int64
	Text       string
}

// EndMs retourne la fin de l'événement ; sans durée connue, la fin vaut le début.
func (e CaptionEvent) EndMs() int64 {
	return e.StartMs + e.DurationMs
}

var reMultiSpace = regexp.MustCompile(`\s+`)

// cleanFragment normalise un fragment : convertit les "\n" et "\\n" en
// espaces, réduit les séquences d'espaces à un seul, et trim.
func cleanFragment(s string) string {
	s = strings.ReplaceAll(s, "\\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = reMultiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Normalize transforme les cues brutes en flux canonique d'événements :
// trim du texte, abandon des cues vides, fusion des doublons exacts
// (certains formats dupliquent une cue sur des fenêtres chevauchantes),
// puis tri stable par début. La stabilité compte : des fragments légitimes
// partagent parfois le même timestamp et leur ordre d'émission encode
// l'ordre de lecture. Aucun autre texte non vide n'est jamais perdu ici.
func Normalize(cues []RawCue) []CaptionEvent {
	type cueKey struct {
		startMs int64
		text    string
	}

	events := make([]CaptionEvent, 0, len(cues))
	seen := make(map[cueKey]bool, len(cues))
	for _, c := range cues {
		text := cleanFragment(c.Text)
		if text == "" {
			continue
		}
		k := cueKey{startMs: c.StartMs, text: text}
		if seen[k] {
			continue
		}
		seen[k] = true
		events = append(events, CaptionEvent{
			StartMs:    c.StartMs,
			DurationMs: c.DurationMs,
			Text:       text,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartMs < events[j].StartMs
	})
	return events
}
