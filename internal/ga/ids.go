package ga

import "github.com/google/uuid"

// NewChromosomeID returns a fresh identifier suitable for tagging a
// chromosome across generations when a caller's middle-cost type wants one
// (e.g. to correlate a persisted final population with its lineage).
func NewChromosomeID() string {
	return uuid.New().String()
}
