package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrSearchAPIFailure is returned when a search provider request fails
	// at the transport/HTTP level
	ErrSearchAPIFailure = errors.New("search provider request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
