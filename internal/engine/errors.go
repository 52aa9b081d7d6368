package engine

import "errors"

// ErrNotReady is returned when a recommendation call arrives before the
// engine has finished loading. Callers surface it as a rejected request; it
// is never retried internally.
var ErrNotReady = errors.New("engine not ready")

// ErrEmptyQuery is returned for blank query text, before any encoding work.
var ErrEmptyQuery = errors.New("query text is empty")
