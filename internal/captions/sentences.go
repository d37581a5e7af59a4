package captions

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dage/karaoke/pkg/model"
)

// Valeurs par défaut de l'heuristique de frontière. Le seuil de silence vient
// du comportement observé sur les captions ASR (2s) ; les marqueurs couvrent
// la ponctuation occidentale et fullwidth plus le paiyannoi thaï ; le plafond
// de tokens prend le relais quand le flux n'a aucune ponctuation, ce qui est
// le cas normal en thaï.
const (
	DefaultGapMs         = 2000
	DefaultTerminalRunes = "。．.!?…ฯ"
	DefaultMaxTokens     = 24
)

// BoundaryConfig paramètre l'agrégation en phrases. Configuration explicite,
// pas de logique câblée : les tests reproduisent le comportement sans payload
// réseau réel.
type BoundaryConfig struct {
	TerminalRunes string // runes de fin de phrase
	GapMs         int64  // silence (début courant - fin précédente) au-delà duquel on coupe
	MaxTokens     int    // garde-fou pour les flux sans ponctuation
	Joiner        string // "" pour le thaï, " " quand le format sépare déjà les mots
}

// DefaultBoundaryConfig retourne la configuration documentée par défaut
// (thaï : concaténation sans espace).
func DefaultBoundaryConfig() BoundaryConfig {
	return BoundaryConfig{
		TerminalRunes: DefaultTerminalRunes,
		GapMs:         DefaultGapMs,
		MaxTokens:     DefaultMaxTokens,
		Joiner:        "",
	}
}

// BuildSentences groupe le flux d'événements en phrases. Une phrase se ferme
// quand le texte de l'événement courant finit par un marqueur terminal, ou
// quand le silence avant l'événement suivant dépasse le seuil, ou quand le
// plafond de tokens est atteint. Le début d'une phrase est celui de son
// premier événement. Un reste en fin de flux se ferme toujours en phrase,
// aucun événement n'est abandonné. Flux vide -> séquence vide, pas une erreur.
func BuildSentences(events []CaptionEvent, cfg BoundaryConfig) []model.SentenceEntry {
	if cfg.GapMs <= 0 {
		cfg.GapMs = DefaultGapMs
	}
	if cfg.TerminalRunes == "" {
		cfg.TerminalRunes = DefaultTerminalRunes
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	var out []model.SentenceEntry

	var (
		sb      strings.Builder
		startMs int64 = -1
		tokens        = 0
		prevEnd int64 = -1
	)

	commit := func() {
		text := strings.TrimSpace(sb.String())
		sb.Reset()
		tokens = 0
		if text == "" {
			startMs = -1
			return
		}
		ts := startMs
		if ts < 0 {
			ts = 0
		}
		out = append(out, model.SentenceEntry{StartMs: ts, Text: text})
		startMs = -1
	}

	for _, ev := range events {
		// coupe sur silence : on ferme la phrase en cours AVANT d'ajouter
		// l'événement qui suit la pause
		if sb.Len() > 0 && prevEnd >= 0 && ev.StartMs-prevEnd > cfg.GapMs {
			commit()
		}

		if sb.Len() == 0 {
			startMs = ev.StartMs
		} else if cfg.Joiner != "" {
			sb.WriteString(cfg.Joiner)
		}
		sb.WriteString(ev.Text)
		tokens += tokenCount(ev.Text)
		prevEnd = ev.EndMs()

		if endsWithTerminal(ev.Text, cfg.TerminalRunes) || tokens >= cfg.MaxTokens {
			commit()
		}
	}

	// vidage final : le dernier groupe se ferme à la fin du flux
	commit()
	return out
}

// tokenCount : nombre de tokens séparés par espaces ; un fragment thaï sans
// espace interne compte pour un.
func tokenCount(s string) int {
	return len(strings.Fields(s))
}

// endsWithTerminal regarde la dernière rune utile du fragment, après avoir
// écarté guillemets et parenthèses fermantes qui masqueraient un terminator.
func endsWithTerminal(s, terminals string) bool {
	s = trimTrailingClosers(s)
	r, ok := lastNonSpaceRune(s)
	if !ok {
		return false
	}
	return strings.ContainsRune(terminals, r)
}

func isCloserRune(r rune) bool {
	switch r {
	case '"', '\'', '”', '’', ')', ']', '}', '»':
		return true
	}
	return false
}

// trimTrailingClosers enlève guillemets/parenthèses fermantes accolées à la fin
func trimTrailingClosers(s string) string {
	for {
		s = strings.TrimRightFunc(s, unicode.IsSpace)
		if s == "" {
			return s
		}
		r, size := utf8.DecodeLastRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[:len(s)-1]
			continue
		}
		if isCloserRune(r) {
			s = s[:len(s)-size]
			continue
		}
		break
	}
	return s
}

// lastNonSpaceRune retourne la dernière rune non blanche, et true si trouvée.
func lastNonSpaceRune(s string) (rune, bool) {
	for len(s) > 0 {
		r, size := utf8.DecodeLastRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[:len(s)-1]
			continue
		}
		if !unicode.IsSpace(r) {
			return r, true
		}
		s = s[:len(s)-size]
	}
	return 0, false
}
