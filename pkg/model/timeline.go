package model

// WordEntry est une entrée de la timeline par mot : début en millisecondes
// et texte du token (jamais d'espace interne, c'est garanti par le builder).
type WordEntry struct {
	StartMs int64
	Text    string
}

// Seconds retourne le début en secondes décimales.
func (w WordEntry) Seconds() float64 {
	return float64(w.StartMs) / 1000.0
}

// SentenceEntry est une entrée de la timeline par phrase : le début est celui
// du premier événement contributeur, le texte la concaténation du groupe.
type SentenceEntry struct {
	StartMs int64
	Text    string
}

func (s SentenceEntry) Seconds() float64 {
	return float64(s.StartMs) / 1000.0
}
