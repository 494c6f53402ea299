package services

import "errors"

// Sentinel errors controllers translate to HTTP statuses.
var (
    ErrNotFound   = errors.New("resource not found")
    ErrForbidden  = errors.New("forbidden")
    ErrValidation = errors.New("invalid input")
)
