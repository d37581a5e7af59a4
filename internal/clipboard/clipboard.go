package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ReadAll lit le contenu texte du presse-papier.
func ReadAll() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", err
	}
	return text, nil
}

// WriteAll écrit une chaîne de caractères dans le presse-papier.
// Utilisé pour déposer le prompt généré à la fin du pipeline.
func WriteAll(text string) error {
	if text == "" {
		return errors.New("le texte à copier ne peut pas être vide")
	}
	return clipboard.WriteAll(text)
}
