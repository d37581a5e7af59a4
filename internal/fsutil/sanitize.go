package fsutil

import (
	"regexp"
	"strings"
)

// limite de longueur de la chaine
const maxNameLen = 120

// invalidFileRunes définit les caractères interdits dans les noms de fichiers
// \x00-\x1F sont les caractères de contrôle
var invalidFileRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

var multiSpace = regexp.MustCompile(`\s+`)

// SanitizeFilename nettoie une chaîne (typiquement le titre de la vidéo) pour
// en faire un nom de dossier/fichier sûr : caractères interdits remplacés,
// espaces réduits, longueur bornée, fallback si vide.
func SanitizeFilename(name string) string {
	if name == "" {
		return "untitled"
	}

	clean := invalidFileRunes.ReplaceAllString(name, " ")
	clean = multiSpace.ReplaceAllString(strings.TrimSpace(clean), " ")
	clean = strings.TrimRight(clean, ".")

	if clean == "" {
		return "untitled"
	}
	// borne en runes, pas en octets : les titres thaï sont multi-octets
	if rs := []rune(clean); len(rs) > maxNameLen {
		clean = strings.TrimSpace(string(rs[:maxNameLen]))
	}
	return clean
}
