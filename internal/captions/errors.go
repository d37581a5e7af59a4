package captions

import (
	"fmt"

	"github.com/dage/karaoke/pkg/model"
)

// Les trois familles d'échec du coeur. Des structs plutôt que des sentinelles :
// l'appelant a besoin de la langue et du format pour composer son message,
// et doit pouvoir distinguer "pas de captions" (terminal) d'un catalogue
// incohérent (retentable avec un autre format).

// TrackNotFoundError : aucune piste dans la langue cible.
type TrackNotFoundError struct {
	Lang string
}

func (e *TrackNotFoundError) Error() string {
	return fmt.Sprintf("aucune piste de sous-titres pour la langue %q", e.Lang)
}

// FormatUnavailableError : la langue existe mais ni le format préféré ni le
// fallback ne sont proposés.
type FormatUnavailableError struct {
	Lang      string
	Preferred model.Format
	Fallback  model.Format
}

func (e *FormatUnavailableError) Error() string {
	return fmt.Sprintf("piste %q présente mais ni %s ni %s disponibles",
		e.Lang, e.Preferred, e.Fallback)
}

// ParseError : payload malformé pour un format donné. Offset est un indice de
// position (octets pour json3, ligne pour srv3), -1 si indéterminable.
// Non-retryable pour cette piste ; l'appelant peut retenter l'autre format.
type ParseError struct {
	Format model.Format
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parse %s (offset %d): %v", e.Format, e.Offset, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
