package vista

import "fmt"

// LoadFailure reports that a panorama's source image could not be fetched or
// decoded. The engine recovers locally: the previously displayed panorama
// stays up and the loading overlay remains visible until a retry or a
// different selection succeeds. The failure is surfaced to the host through
// Engine.OnFailure.
type LoadFailure struct {
	ID    string
	Cause error
}

func (e *LoadFailure) Error() string {
	return fmt.Sprintf("vista: load panorama %q: %v", e.ID, e.Cause)
}

func (e *LoadFailure) Unwrap() error {
	return e.Cause
}

// UnknownIDError reports a ShowByID or Request call with an id that is not in
// the configured panorama list. Never fatal: the call is a no-op apart from
// this value being surfaced (and a debug warning).
type UnknownIDError struct {
	ID string
}

func (e *UnknownIDError) Error() string {
	return fmt.Sprintf("vista: unknown panorama id %q", e.ID)
}
