package utils

import "github.com/google/uuid"

// NewTraceID returns a time-ordered UUIDv7 string, so that trace ids sort
// by creation time in log storage. It falls back to a random UUIDv4 if the
// v7 generator fails.
func NewTraceID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
