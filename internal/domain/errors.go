package domain

import "errors"

var (
	// ErrInvalidInput is returned when request parameters are invalid
	ErrInvalidInput = errors.New("invalid request parameters")

	// ErrTextTooShort is returned when a product description is too short to analyze
	ErrTextTooShort = errors.New("product description too short")

	// ErrTextTooLong is returned when a product description exceeds the limit
	ErrTextTooLong = errors.New("product description too long")

	// ErrPageBlocked is returned when a site refuses automated access
	ErrPageBlocked = errors.New("website is blocking automated access")

	// ErrPageUnavailable is returned when a product page cannot be fetched
	ErrPageUnavailable = errors.New("unable to access product page")

	// ErrCacheMiss is returned when an analysis is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
