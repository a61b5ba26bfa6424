// Package idgen provides contract identifier generators.
package idgen

import (
	"github.com/google/uuid"

	"github.com/custodia-labs/ensaio/internal/core/ports/driven"
)

// Ensure UUID implements the interface.
var _ driven.IDGenerator = UUID{}

// UUID generates random (version 4) UUIDs.
type UUID struct{}

// NewUUID creates a UUID generator.
func NewUUID() UUID {
	return UUID{}
}

// NewID returns a fresh UUID string.
func (UUID) NewID() string {
	return uuid.NewString()
}
