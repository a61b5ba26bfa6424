// Package clock provides time sources for the core.
package clock

import (
	"time"

	"github.com/custodia-labs/ensaio/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clock = System{}

// System reads the wall clock in UTC.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}
