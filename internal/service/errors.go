package service

import "errors"

var (
	ErrMatchNotFound = errors.New("match not found")

	// ErrInvalidPromotion indicates a promotion code other than B, N, R or Q.
	ErrInvalidPromotion = errors.New("invalid promotion type")
)
