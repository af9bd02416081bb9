package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrNoBids          = errors.New("no bids found for listing")
	ErrUserNoBids      = errors.New("user has not placed any bids")
)

// business logic errors
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidBid        = errors.New("bid amount below minimum")
	ErrAuctionClosed     = errors.New("auction closed")
	ErrAuctionStillOpen  = errors.New("auction still open")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrBadCredentials    = errors.New("invalid email or password")
)
