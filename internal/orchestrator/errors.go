package orchestrator

import "errors"

var (
	ErrEmptyUserID          = errors.New("user id is required")
	ErrEmptyText            = errors.New("request text is required")
	ErrShuttingDown         = errors.New("orchestrator is shutting down")
	ErrStoreUnavailable     = errors.New("user context store unavailable")
	ErrCatalogMisconfigured = errors.New("intent catalog misconfigured")
)
