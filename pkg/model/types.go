package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Format identifie un format de piste ou de fichier de sortie.
// Seuls deux formats de sous-titres existent côté YouTube pour ce pipeline :
// json3 (flux de tokens) et srv3 (markup timedtext). Aucun troisième format
// n'est prévu, le dispatch du parseur reste un switch fermé.
type Format string

const (
	FormatJSON3 Format = "json3"
	FormatSRV3  Format = "srv3"
	FormatTXT   Format = "txt"
	FormatMP3   Format = "mp3"
)

// du format en chaine à la constante de type Format, return une erreur si format inconnu
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json3":
		return FormatJSON3, nil
	case "srv3":
		return FormatSRV3, nil
	case "txt":
		return FormatTXT, nil
	case "mp3":
		return FormatMP3, nil
	default:
		return "", fmt.Errorf("format demandé inconnu: %s", s)
	}
}

// IsCaption indique si le format correspond à une piste de sous-titres.
func (f Format) IsCaption() bool {
	return f == FormatJSON3 || f == FormatSRV3
}

func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) String() string {
	return string(f)
}

// FormatSeconds rend un timestamp en millisecondes sous forme de secondes
// décimales à 3 chiffres ("12.340"). C'est la représentation écrite dans
// les fichiers timeline.
func FormatSeconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000.0, 'f', 3, 64)
}
