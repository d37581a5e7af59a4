package captions

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dage/karaoke/pkg/model"
)

// préfixe anti-XSSI que YouTube colle parfois devant le JSON
var xssiPrefix = []byte(")]}'")

// Parse convertit le payload brut d'une piste en séquence de RawCue.
// Dispatch fermé sur le tag de format : json3 (tokens) ou srv3 (markup).
// Les cues ne sont pas encore triées ni dédoublonnées, c'est le rôle de
// Normalize. Toute malformation remonte en *ParseError.
func Parse(payload []byte, format model.Format) ([]RawCue, error) {
	switch format {
	case model.FormatJSON3:
		return parseJSON3(payload)
	case model.FormatSRV3:
		return parseSRV3(payload)
	default:
		return nil, &ParseError{
			Format: format,
			Offset: -1,
			Err:    fmt.Errorf("format de piste non supporté"),
		}
	}
}

// parseJSON3 : chaque event regroupe des segs (tokens). Un seg porteur de
// texte devient une cue à tStartMs+tOffsetMs ; les segs curseur (vides ou
// newline) sont abandonnés, jamais émis. Les events aAppend répètent le
// contenu de la fenêtre roulante, on les ignore pour ne pas dupliquer.
func parseJSON3(payload []byte) ([]RawCue, error) {
	payload = bytes.TrimLeftFunc(payload, func(r rune) bool { return r == '﻿' })
	if rest, ok := bytes.CutPrefix(bytes.TrimLeft(payload, " \t\r\n"), xssiPrefix); ok {
		payload = rest
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	var raw rawJSON3
	if err := dec.Decode(&raw); err != nil {
		return nil, &ParseError{Format: model.FormatJSON3, Offset: dec.InputOffset(), Err: err}
	}

	var cues []RawCue
	for _, ev := range raw.Events {
		if ev.AAppend != nil && *ev.AAppend == 1 {
			continue
		}
		if len(ev.Segs) == 0 {
			continue
		}

		hasText := false
		for _, seg := range ev.Segs {
			if !seg.isCursorOnly() {
				hasText = true
				break
			}
		}
		if !hasText {
			continue
		}
		if ev.TStartMs == nil {
			// un event porteur de texte sans timing n'est pas exploitable
			return nil, &ParseError{
				Format: model.FormatJSON3,
				Offset: -1,
				Err:    errors.New("event sans tStartMs"),
			}
		}

		base := *ev.TStartMs
		var dur int64
		if ev.DDurationMs != nil {
			dur = *ev.DDurationMs
		}

		for _, seg := range ev.Segs {
			if seg.isCursorOnly() {
				continue
			}
			start := base
			segDur := dur
			if seg.TOffsetMs != nil {
				// timing par token : résolution plus fine que l'event,
				// la durée event ne s'applique plus au token seul
				start = base + *seg.TOffsetMs
				segDur = 0
			}
			cues = append(cues, RawCue{StartMs: start, DurationMs: segDur, Text: seg.Utf8})
		}
	}
	return cues, nil
}

// parseSRV3 : chaque <p> est une cue potentielle. Quand des runs <s> existent,
// leur timing propre (p@t + s@t) prime sur le début du <p> : on ne rabat
// jamais cette résolution fine sur la granularité du paragraphe.
func parseSRV3(payload []byte) ([]RawCue, error) {
	var doc srv3Document
	if err := xml.Unmarshal(payload, &doc); err != nil {
		off := int64(-1)
		var syn *xml.SyntaxError
		if errors.As(err, &syn) {
			off = int64(syn.Line)
		}
		return nil, &ParseError{Format: model.FormatSRV3, Offset: off, Err: err}
	}

	var cues []RawCue
	for _, p := range doc.Body.Paragraphs {
		hasRunText := false
		for _, r := range p.Runs {
			if strings.TrimSpace(r.Text) != "" {
				hasRunText = true
				break
			}
		}
		ownText := strings.TrimSpace(p.Content)
		if !hasRunText && ownText == "" {
			continue
		}

		if strings.TrimSpace(p.StartMs) == "" {
			return nil, &ParseError{
				Format: model.FormatSRV3,
				Offset: -1,
				Err:    errors.New("élément <p> porteur de texte sans attribut t"),
			}
		}
		base, err := strconv.ParseInt(strings.TrimSpace(p.StartMs), 10, 64)
		if err != nil {
			return nil, &ParseError{
				Format: model.FormatSRV3,
				Offset: -1,
				Err:    fmt.Errorf("attribut t invalide %q: %w", p.StartMs, err),
			}
		}

		var dur int64 // optionnelle, 0 = inconnue
		if d := strings.TrimSpace(p.DurationMs); d != "" {
			if v, err := strconv.ParseInt(d, 10, 64); err == nil {
				dur = v
			}
		}

		if len(p.Runs) == 0 {
			cues = append(cues, RawCue{StartMs: base, DurationMs: dur, Text: p.Content})
			continue
		}

		for _, r := range p.Runs {
			if strings.TrimSpace(r.Text) == "" {
				continue
			}
			start := base
			runDur := dur
			if o := strings.TrimSpace(r.OffsetMs); o != "" {
				v, err := strconv.ParseInt(o, 10, 64)
				if err != nil {
					return nil, &ParseError{
						Format: model.FormatSRV3,
						Offset: -1,
						Err:    fmt.Errorf("offset <s t=%q> invalide: %w", r.OffsetMs, err),
					}
				}
				start = base + v
				runDur = 0
			}
			cues = append(cues, RawCue{StartMs: start, DurationMs: runDur, Text: r.Text})
		}
	}
	return cues, nil
}
