package services

import "errors"

var (
	ErrInvalidMetadata = errors.New("invalid document metadata")
	ErrNoAnswer        = errors.New("model returned no candidates")
)
