// Package service implements the application's business logic on top of the
// store. Handlers call services; services return domain errors that the HTTP
// layer translates to status codes.
package service

import (
	"github.com/campusconnect/campusconnect-server/internal/validation"
)

// validate is the shared request validator for all services.
var validate = validation.New()
