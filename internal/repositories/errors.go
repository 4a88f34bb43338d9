package repositories

import "errors"

// ErrNotFound is wrapped by repository lookups that miss, so callers can
// distinguish a missing record from an infrastructure failure with
// errors.Is.
var ErrNotFound = errors.New("record not found")
