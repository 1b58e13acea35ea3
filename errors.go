package admin

import "errors"

// Registration errors. They are plain sentinels so callers can match them
// with errors.Is; runtime failures use pkg/adminerrors instead.
var (
	ErrNilResource      = errors.New("admin: resource is nil")
	ErrInvalidResource  = errors.New("admin: resource definition is invalid")
	ErrInvalidPath      = errors.New("admin: resource path is invalid")
	ErrDuplicatePath    = errors.New("admin: resource path already registered")
	ErrEmptyFieldID     = errors.New("admin: field id is empty")
	ErrDuplicateFieldID = errors.New("admin: field id declared twice")
	ErrUnknownIDField   = errors.New("admin: id field is not among the field configs")
	ErrMissingOperation = errors.New("admin: resource operation is missing")
	ErrMissingIDParser  = errors.New("admin: no id parser for identifier type")
	ErrInvalidSchema    = errors.New("admin: resource create schema is invalid")
	ErrRegistryFrozen   = errors.New("admin: registry is frozen")
	ErrNilCreateHandler = errors.New("admin: create handler is nil")
)
