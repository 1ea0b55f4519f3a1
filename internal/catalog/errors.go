package catalog

import "errors"

// Domain-specific errors for the catalog package.
var (
	ErrEmptyCatalog   = errors.New("intent catalog has no entries")
	ErrEmptyLabel     = errors.New("catalog entry has empty label")
	ErrDuplicateLabel = errors.New("duplicate label in catalog")
	ErrNoSteps        = errors.New("catalog entry has no capability steps")
	ErrUnknownLabel   = errors.New("label not in catalog")
)
