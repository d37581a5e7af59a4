package captions

import (
	"encoding/xml"
	"strings"
)

// RawCue est une unité brute au niveau wire : début absolu en millisecondes,
// durée optionnelle (0 = inconnue) et fragment de texte. Les RawCue n'existent
// que le temps du parsing, tri et dédoublonnage arrivent dans Normalize.
type RawCue struct {
	StartMs    int64
	DurationMs int64
	Text       string
}

// rawJSON3 représente la structure brute servie par l'endpoint timedtext en
// fmt=json3 (flux de tokens).
type rawJSON3 struct {
	WireMagic string     `json:"wireMagic,omitempty"`
	Events    []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	AAppend     *int     `json:"aAppend,omitempty"` // répétition de la fenêtre roulante
	Segs        []rawSeg `json:"segs,omitempty"`
	// Les champs de positionnement (wpWinPosId, wWinId, ...) sont ignorés volontairement.
}

type rawSeg struct {
	Utf8      string `json:"utf8"`
	TOffsetMs *int64 `json:"tOffsetMs,omitempty"`
}

// isCursorOnly indique si le seg ne fait qu'avancer le curseur d'affichage :
// vide, espaces ou retour à la ligne. Ces tokens ne deviennent jamais des cues.
func (s rawSeg) isCursorOnly() bool {
	t := strings.ReplaceAll(s.Utf8, "\\n", "\n")
	return strings.TrimSpace(t) == ""
}

// Structures XML du format timedtext (srv3) : <timedtext><body><p t d><s t>.
// Les attributs temporels restent des strings pour distinguer "absent" de "0".
type srv3Document struct {
	XMLName xml.Name `xml:"timedtext"`
	Body    srv3Body `xml:"body"`
}

type srv3Body struct {
	Paragraphs []srv3Paragraph `xml:"p"`
}

type srv3Paragraph struct {
	StartMs    string    `xml:"t,attr"`
	DurationMs string    `xml:"d,attr"`
	Append     string    `xml:"a,attr"`
	Window     string    `xml:"w,attr"`
	Content    string    `xml:",chardata"`
	Runs       []srv3Run `xml:"s"`
}

type srv3Run struct {
	OffsetMs string `xml:"t,attr"`
	Text     string `xml:",chardata"`
}
