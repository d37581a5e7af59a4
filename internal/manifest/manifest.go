// Package manifest décrit le contenu d'un répertoire de sortie : l'URL
// d'origine et les noms des fichiers produits. Les chemins sont relatifs
// au répertoire du manifest.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dage/karaoke/internal/fsutil"
)

type Manifest struct {
	OriginalURL string `json:"original_url"`
	Words       string `json:"words"`
	Sentences   string `json:"sentences"`
	AudioFile   string `json:"audio_file,omitempty"`
}

// Save écrit le manifest en JSON indenté (écriture atomique).
func (m *Manifest) Save(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("échec de sérialisation du manifest : %w", err)
	}
	data = append(data, '\n')
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("échec d'écriture du manifest %s : %w", path, err)
	}
	return nil
}

// Load relit un manifest depuis disque (utilisé par la commande upload).
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lecture du manifest %s impossible : %w", path, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("analyse du manifest %s impossible : %w", path, err)
	}
	return &m, nil
}
