package domain

import "errors"

var (
	ErrNotFound    = errors.New("not found")
	ErrNoQuote     = errors.New("no quote available")
	ErrContextDone = errors.New("context cancelled")
)
