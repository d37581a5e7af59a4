// Package timeline écrit les timelines mots et phrases au format TSV :
// une ligne par entrée, "secondes<TAB>texte", secondes à 3 décimales.
package timeline

import (
	"fmt"
	"strings"

	"github.com/dage/karaoke/internal/fsutil"
	"github.com/dage/karaoke/pkg/model"
)

// RenderWords construit le contenu TSV de la timeline mots.
func RenderWords(words []model.WordEntry) []byte {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(model.FormatSeconds(w.StartMs))
		sb.WriteByte('\t')
		sb.WriteString(w.Text)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// RenderSentences construit le contenu TSV de la timeline phrases.
func RenderSentences(sentences []model.SentenceEntry) []byte {
	var sb strings.Builder
	for _, s := range sentences {
		sb.WriteString(model.FormatSeconds(s.StartMs))
		sb.WriteByte('\t')
		sb.WriteString(s.Text)
		sb.WriteByte('\n')
	}
	return []byte(sb.String())
}

// WriteWords écrit la timeline mots sur disque (écriture atomique).
func WriteWords(path string, words []model.WordEntry) error {
	if err := fsutil.WriteFileAtomic(path, RenderWords(words), 0o644); err != nil {
		return fmt.Errorf("échec d'écriture de la timeline mots %s : %w", path, err)
	}
	return nil
}

// WriteSentences écrit la timeline phrases sur disque (écriture atomique).
func WriteSentences(path string, sentences []model.SentenceEntry) error {
	if err := fsutil.WriteFileAtomic(path, RenderSentences(sentences), 0o644); err != nil {
		return fmt.Errorf("échec d'écriture de la timeline phrases %s : %w", path, err)
	}
	return nil
}
