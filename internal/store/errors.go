package store

import (
	"github.com/campusconnect/campusconnect-server/internal/errors"
)

// Sentinel errors returned by store operations. These are domain errors so
// handlers can map them to HTTP responses without knowing about the store.
var (
	ErrNotFound      = errors.NotFound("resource not found")
	ErrAlreadyExists = errors.AlreadyExists("resource already exists")
	ErrEmailExists   = errors.AlreadyExists("email already in use")
)
