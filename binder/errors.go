package binder

import "errors"

// Common form binding errors
var (
	ErrMissingContentType   = errors.New("missing content type")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingBoundary      = errors.New("missing multipart boundary")
	ErrBodyTooLarge         = errors.New("request body too large")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrFailedToStoreFile    = errors.New("failed to store uploaded file")
)
