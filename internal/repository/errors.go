// Package repository contains data access logic separated from HTTP
// handlers.  Handlers distinguish failure scenarios through the sentinel
// values defined here; every other error is a storage failure.
package repository

import "errors"

// ErrEventNotFound is returned when no event has the requested id, or when
// no upcoming event exists.  Handlers translate it into an HTTP 404.
var ErrEventNotFound = errors.New("event not found")
