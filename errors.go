package main

import (
	"errors"
	"fmt"
)

// ErrSweetNotFound is returned when an item is missing so HTTP handlers can
// respond with 404.
var ErrSweetNotFound = errors.New("sweet not found")

// ErrEmailTaken and ErrUsernameTaken signal a duplicate unique field at
// registration.
var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already registered")
)

// InsufficientStockError carries the quantity still on hand so the response
// can tell the buyer how much is actually available.
type InsufficientStockError struct {
	Available int
}

func (e InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient quantity in stock (available: %d)", e.Available)
}
