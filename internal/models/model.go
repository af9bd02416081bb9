package models

import "time"

// Role identifies which dashboard a user belongs to
type Role string

const (
	RoleHost  Role = "host"
	RoleBuyer Role = "buyer"
)

// Condition describes the physical state of a listed item
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
)

// Visibility controls who can discover a listing
type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityPrivate  Visibility = "private"
	VisibilityUnlisted Visibility = "unlisted"
)

// OrderStatus progresses forward only: pending -> paid -> dispatched -> delivered
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPaid       OrderStatus = "paid"
	OrderDispatched OrderStatus = "dispatched"
	OrderDelivered  OrderStatus = "delivered"
)

// BidStatus is a user's standing on a single listing
type BidStatus string

const (
	StatusNotBidding BidStatus = "not_bidding"
	StatusWinning    BidStatus = "winning"
	StatusOutbid     BidStatus = "outbid"
)

// User represents a participant in the marketplace
type User struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

// Listing represents an item up for auction.
// CurrentPrice never drops below StartingPrice and only moves up as bids land.
type Listing struct {
	ListingID     string     `json:"listing_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Category      string     `json:"category"`
	Condition     Condition  `json:"condition"`
	StartingPrice float64    `json:"starting_price"`
	CurrentPrice  float64    `json:"current_price"`
	BuyNowPrice   float64    `json:"buy_now_price,omitempty"`
	Shipping      float64    `json:"shipping"`
	BidCount      int        `json:"bid_count"`
	EndDate       time.Time  `json:"end_date"`
	Visibility    Visibility `json:"visibility"`
	DealOfTheDay  bool       `json:"deal_of_the_day"`
	SellerID      string     `json:"seller_id"`
	SellerName    string     `json:"seller_name"`
	Watchers      int        `json:"watchers"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Bid represents a user's offer on a listing
type Bid struct {
	BidID     string    `json:"bid_id"`
	ListingID string    `json:"listing_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Order records the sale of a listing to its winning bidder.
// Listing, buyer and seller are held by id, not by pointer.
type Order struct {
	OrderID    string      `json:"order_id"`
	ListingID  string      `json:"listing_id"`
	BuyerID    string      `json:"buyer_id"`
	SellerID   string      `json:"seller_id"`
	FinalPrice float64     `json:"final_price"`
	Shipping   float64     `json:"shipping"`
	Total      float64     `json:"total"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// WatchlistItem marks a listing a user is watching
type WatchlistItem struct {
	UserID    string    `json:"user_id"`
	ListingID string    `json:"listing_id"`
	AddedAt   time.Time `json:"added_at"`
}

// WaitlistEntry is a signup captured from the public waitlist form
type WaitlistEntry struct {
	EntryID   string    `json:"entry_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// HostStats aggregates a seller's dashboard numbers
type HostStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	OrdersComplete int     `json:"orders_completed"`
	ActiveAuctions int     `json:"active_auctions"`
	PendingPayouts float64 `json:"pending_payouts"`
	DealsOfTheDay  int     `json:"deals_of_the_day"`
}

// BuyerStats aggregates a buyer's dashboard numbers
type BuyerStats struct {
	WatchingCount int `json:"watching_count"`
	ActiveBids    int `json:"active_bids"`
	WinningBids   int `json:"winning_bids"`
	OrdersCount   int `json:"orders_count"`
}
