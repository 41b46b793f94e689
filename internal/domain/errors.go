package domain

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrConflict           = errors.New("duplicate record")
	ErrBookingIDCollision = errors.New("booking id already taken")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
