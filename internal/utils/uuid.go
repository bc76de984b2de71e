package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered identifiers (UUIDv7), so that sync pass
// ids sort by start time in the logs.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a new UUIDv7 string, falling back to a random UUIDv4 when
// the v7 source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
