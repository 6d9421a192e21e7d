package domain

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrUnauthorized     = errors.New("unauthorized action")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrMalformedPrice   = errors.New("price is not numeric")
)
