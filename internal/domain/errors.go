package domain

import "errors"

// Sentinel errors for parsing and storage
var (
	// ErrUnknownMediaType indicates a media type code with no container parser
	ErrUnknownMediaType = errors.New("unknown media type")

	// ErrMissingKind indicates a value handed to normalization carries no kind tag
	ErrMissingKind = errors.New("value has no kind")

	// ErrNotFound indicates the requested entity or payload does not exist
	ErrNotFound = errors.New("not found")
)
