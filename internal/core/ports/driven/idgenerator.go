package driven

// IDGenerator produces contract identifiers.
type IDGenerator interface {
	// NewID returns a fresh, non-empty identifier.
	NewID() string
}
