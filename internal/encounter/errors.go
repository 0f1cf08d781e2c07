package encounter

import "errors"

// Errors returned when loading encounter documents.
var (
	ErrUnknownKind    = errors.New("unknown asset kind")
	ErrDuplicateID    = errors.New("duplicate asset id")
	ErrDuplicateIndex = errors.New("duplicate source index")
)
