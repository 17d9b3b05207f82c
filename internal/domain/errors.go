package domain

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these
// into HTTP statuses; everything else is treated as a 500.
var (
	ErrNotFound         = errors.New("not found")
	ErrOutOfStock       = errors.New("not enough units in stock")
	ErrCartPurchased    = errors.New("cart already purchased")
	ErrCartNotPurchased = errors.New("cart not purchased")
	ErrBadCreds         = errors.New("invalid username or password")
	ErrInvalidArgument  = errors.New("invalid argument")
)
