package documents

import "errors"

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// ErrInvalidInput is returned when a request fails validation.
var ErrInvalidInput = errors.New("invalid input")
