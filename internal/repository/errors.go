package repository

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when the requested document does not exist.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err means the target document is absent, either
// as our sentinel or as the store's own not-found code.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		return true
	}
	return status.Code(err) == codes.NotFound
}
