package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrEmptyDocument       = errors.New("document has no content")
	ErrMissingProvider     = errors.New("no model provider configured")
	ErrMissingAPIKey       = errors.New("provider API key is not configured")
	ErrDuplicateEntry      = errors.New("dictionary entry already exists for this source token")
	ErrInvalidEntry        = errors.New("dictionary entry is invalid")
)
