package timeline

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dage/karaoke/pkg/model"
)

// ParseSentences relit un fichier TSV de phrases. Les lignes vides ou sans
// tabulation sont ignorées, comme les timestamps illisibles.
func ParseSentences(data []byte) []model.SentenceEntry {
	var out []model.SentenceEntry
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		ts, text, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		sec, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
		if err != nil {
			continue
		}
		out = append(out, model.SentenceEntry{
			StartMs: int64(math.Round(sec * 1000)),
			Text:    text,
		})
	}
	return out
}

// ReadSentences charge un fichier TSV de phrases depuis disque.
func ReadSentences(path string) ([]model.SentenceEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture de la timeline %s impossible : %w", path, err)
	}
	return ParseSentences(data), nil
}
