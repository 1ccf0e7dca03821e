package models

import "errors"

// Failure classes surfaced by the service layer. Handlers map these to HTTP
// statuses; everything else is treated as internal.
var (
	ErrExternalUnavailable = errors.New("external data source unavailable")
	ErrStorage             = errors.New("storage failure")
	ErrNotFound            = errors.New("country not found")
)
