// Package prompt compose le prompt "vibe coding" final : la description d'un
// lecteur karaoké web à construire, avec les URL publiques des assets uploadés
// et un brief de style propre à la chanson.
package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/dage/karaoke/internal/llm"
	"github.com/dage/karaoke/pkg/model"
)

const (
	// marge ajoutée après le dernier timestamp pour estimer la durée totale
	tailBufferMs = 5000
	excerptLines = 12
)

// Assets référence les URL publiques des fichiers uploadés.
type Assets struct {
	AudioURL     string
	WordsURL     string
	SentencesURL string
}

// DurationMs estime la durée de la chanson depuis la timeline phrases :
// dernier timestamp + une petite marge.
func DurationMs(sentences []model.SentenceEntry) int64 {
	var last int64
	for _, s := range sentences {
		if s.StartMs > last {
			last = s.StartMs
		}
	}
	if last == 0 && len(sentences) == 0 {
		return 0
	}
	return last + tailBufferMs
}

// mmss rend un timestamp en millisecondes au format m:ss.
func mmss(ms int64) string {
	if ms <= 0 {
		return "0:00"
	}
	totalSec := (ms + 500) / 1000
	return fmt.Sprintf("%d:%02d", totalSec/60, totalSec%60)
}

// BriefRequest construit le prompt envoyé au LLM pour obtenir un brief de
// style propre à la chanson (extrait des premières phrases + points d'ancrage).
func BriefRequest(sentences []model.SentenceEntry, durationMs int64) string {
	var excerpt strings.Builder
	for i, s := range sentences {
		if i >= excerptLines {
			break
		}
		excerpt.WriteString(mmss(s.StartMs))
		excerpt.WriteByte('\t')
		excerpt.WriteString(s.Text)
		excerpt.WriteByte('\n')
	}

	anchors := "0:45, 1:30, 2:15"
	if durationMs > 0 {
		anchors = strings.Join([]string{
			mmss(durationMs / 4),
			mmss(durationMs / 2),
			mmss(durationMs * 3 / 4),
		}, ", ")
	}

	var sb strings.Builder
	sb.WriteString("You are a senior music visual designer. Given Thai lyrics excerpts with timestamps,\n")
	sb.WriteString("produce a SONG-SPECIFIC STYLE BRIEF for a web karaoke player. Do NOT translate lyrics;\n")
	sb.WriteString("infer mood, themes, and arc from the Thai as-is. Keep it concise but evocative.\n\n")
	sb.WriteString("Provide:\n")
	sb.WriteString("- Title: short title for the visual concept\n")
	sb.WriteString("- Mood & Themes: 2-3 lines\n")
	sb.WriteString("- Color Palette: 4-6 colors with roles (bg, accents)\n")
	sb.WriteString("- Typography: primary + accent style guidance\n")
	sb.WriteString("- FX Motifs: particles, glows, shaders, transitions\n")
	sb.WriteString("- Timeline Cues: 6-10 cue points with mm:ss and effect notes\n")
	sb.WriteString("  - Use anchor times like " + anchors + " and add others you deem right\n")
	sb.WriteString("  - Include at least one mid-song shift (e.g., happy -> melancholic)\n\n")
	sb.WriteString("Constraints:\n")
	sb.WriteString("- Output in plain text, compact bullets.\n")
	sb.WriteString("- Do not ask questions or add closing remarks.\n")
	sb.WriteString("- Do not use code fences or markdown tables.\n")
	sb.WriteString("- Keep technical details implementable in a web canvas/WebGL/CSS environment.\n")
	sb.WriteString("- Avoid copyrighted brand names.\n\n")
	sb.WriteString("Thai lyric excerpt (time\ttext):\n")
	sb.WriteString(excerpt.String())
	sb.WriteString("Total approximate duration: " + mmss(durationMs) + "\n")
	return sb.String()
}

// FallbackBrief rend un brief générique quand le LLM est indisponible.
func FallbackBrief(durationMs int64) string {
	var sb strings.Builder
	sb.WriteString("Title: Neon Silk Pulse\n")
	sb.WriteString("Mood & Themes: Dreamy, emotive, intimate performance with gradual introspection.\n")
	sb.WriteString("Color Palette: Deep indigo (bg), electric magenta (primary), cyan glow (accent), warm amber (highlight).\n")
	sb.WriteString("Typography: Rounded sans for lyrics; high-contrast italic for emphasized words.\n")
	sb.WriteString("FX Motifs: Soft bloom, chromatic aberration on peaks, floating bokeh particles synced to beat.\n")
	sb.WriteString("Timeline Cues:\n")
	for _, frac := range []int64{4, 2} {
		sb.WriteString("- " + mmss(durationMs/frac) + ": subtle color shift and particle density change\n")
	}
	sb.WriteString("- " + mmss(durationMs*3/4) + ": subtle color shift and particle density change\n")
	return strings.TrimRight(sb.String(), "\n")
}

// SongBrief interroge le LLM pour un brief de style; retombe sur le brief
// générique en cas d'échec (clé manquante, API indisponible).
func SongBrief(ctx context.Context, client *llm.Client, sentences []model.SentenceEntry) string {
	durationMs := DurationMs(sentences)
	if client == nil {
		return FallbackBrief(durationMs)
	}
	brief, err := client.Complete(ctx, BriefRequest(sentences, durationMs))
	if err != nil {
		fmt.Printf("avertissement : brief LLM indisponible (%v), brief générique utilisé\n", err)
		return FallbackBrief(durationMs)
	}
	return brief
}

// Build assemble le prompt final prêt à coller dans un assistant de code.
func Build(assets Assets, sentences []model.SentenceEntry, brief string) string {
	var lines []string

	lines = append(lines, "Build a visually stunning, modern web karaoke player for THAI lyrics.")
	lines = append(lines, "")
	lines = append(lines, "Core features:")
	lines = append(lines,
		"- Highlight the currently sung word, smooth crossfade to next word",
		"- Show the current sentence prominently and preview the next sentence",
		"- Accurate MP3 timeline with seek-on-click, play/pause, and scrub",
		"- Time-synchronized visuals and transitions tied to lyric timestamps",
	)
	lines = append(lines, "")
	lines = append(lines, "Assets (public URLs from S3):")
	lines = append(lines, "- Audio (MP3): "+assets.AudioURL)
	lines = append(lines, "- Word lyrics (TSV): "+assets.WordsURL)
	lines = append(lines, "- Sentence lyrics (TSV): "+assets.SentencesURL)
	lines = append(lines, "")
	lines = append(lines, "TSV format (UTF-8, LF, tab-separated)")
	lines = append(lines, "")
	lines = append(lines, "Sentences TSV: start_seconds\tfull_sentence_text")
	lines = append(lines, "Example: 4.220\t[เพลง]")
	lines = append(lines, "")
	lines = append(lines, "Words TSV: start_seconds\tword_text")
	lines = append(lines, "Example: 18.680\tหน้า")
	lines = append(lines, "")
	lines = append(lines, "Implementation notes:")
	lines = append(lines,
		"- Parse TSVs client-side; each row is start_seconds (float) and text.",
		"- Use the audio element currentTime to find the active word/sentence via binary search.",
		"- Render lyrics with the active word highlighted and next sentence visible.",
		"- Animate visuals using Canvas/WebGL/CSS variables; target 60fps with requestAnimationFrame.",
		"- Ensure mobile responsiveness; large, legible Thai typography.",
	)
	lines = append(lines, "")
	lines = append(lines, "Song-specific style brief (use this to tailor visuals):")
	lines = append(lines, brief)
	lines = append(lines, "")
	lines = append(lines,
		"Deliver a single-page app (HTML/CSS/JS or a small React/Vite setup). "+
			"Prioritize jaw-dropping visuals with tasteful effects that enhance readability and timing precision.")

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
