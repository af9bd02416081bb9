package helpers

import model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"

// Request/Response DTOs
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

type PlaceBidRequest struct {
	ListingID string  `json:"listing_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	ListingID string  `json:"listing_id"`
	UserID    string  `json:"user_id"`
	UserName  string  `json:"user_name"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"created_at"`
}

type BidStatusResponse struct {
	ListingID string          `json:"listing_id"`
	UserID    string          `json:"user_id"`
	Status    model.BidStatus `json:"status"`
}

type WatchRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

type WaitlistRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

type CreateOrderRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}
