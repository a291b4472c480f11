package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the engine can translate them into per-company report entries.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: row ref does not exist in the store
// - ErrConflict: write would duplicate a unique company ID
// - ErrUnavailable: backing store temporarily unreachable
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
