package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrInvalidItem is returned when an order names an item category outside the allowed set.
var ErrInvalidItem = errors.New("invalid item category")

// ErrInvalidTransition is returned on an illegal state-machine move,
// e.g. cancelling a picked-up order or picking up a pending one.
var ErrInvalidTransition = errors.New("invalid order state transition")

// ErrInvalidRating is returned when a rating score is out of range or the
// courier has no delivered order yet.
var ErrInvalidRating = errors.New("invalid rating")

// ErrNotAssigned is returned when a courier acts on an order assigned to someone else.
var ErrNotAssigned = errors.New("courier not assigned to order")

// ErrDuplicate indicates a uniqueness conflict (entity already exists).
var ErrDuplicate = errors.New("already exists")

// ErrNotFound indicates that the requested resource does not exist.
var ErrNotFound = errors.New("not found")
