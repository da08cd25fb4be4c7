package domain

import "errors"

var (
	ErrNotFound    = errors.New("resource not found")
	ErrUnknownType = errors.New("unknown document type")
)
