// Package feed supplies hand-tracking updates to the coordinator. Sources
// stand in for the sensor collaborator: the gesture core never manages a
// sensor session itself, it only consumes the updates a source produces.
package feed

import (
	"errors"

	"github.com/ayusman/mudra/internal/tracking"
)

// ErrEndOfStream is returned by ReadUpdate when a finite source is exhausted.
var ErrEndOfStream = errors.New("end of stream")

// Source produces per-tick two-hand updates.
type Source interface {
	// ReadUpdate returns the next update, or ErrEndOfStream when the
	// source has no more updates to deliver.
	ReadUpdate() (tracking.Update, error)
}
