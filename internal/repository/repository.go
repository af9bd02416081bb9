package repository

import (
	"fmt"
	"sync"

	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionerrors"
	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
)

// AuctionDB defines the listing/bid storage interface used by the auction service
type AuctionDB interface {
	GetListing(listingID string) (model.Listing, error)
	ListListings() ([]model.Listing, error)
	AppendBid(bid model.Bid) error
	GetBidsByListing(listingID string) ([]model.Bid, error)
	GetListingsByBidder(userID string) ([]model.Listing, error)
	AddWatch(item model.WatchlistItem) error
	GetWatchlist(userID string) ([]model.WatchlistItem, error)
	AddWaitlistEntry(entry model.WaitlistEntry) error
}

// OrderDB defines the storage interface used by the order service
type OrderDB interface {
	GetListing(listingID string) (model.Listing, error)
	GetBidsByListing(listingID string) ([]model.Bid, error)
	GetListingsByBidder(userID string) ([]model.Listing, error)
	GetWatchlist(userID string) ([]model.WatchlistItem, error)
	CreateOrder(order model.Order) error
	GetOrder(orderID string) (model.Order, error)
	UpdateOrderStatus(orderID string, status model.OrderStatus) error
	ListOrdersByBuyer(userID string) ([]model.Order, error)
	ListOrdersBySeller(userID string) ([]model.Order, error)
	ListListingsBySeller(userID string) ([]model.Listing, error)
}

// UserDirectory defines the user lookup interface used by the session service
type UserDirectory interface {
	GetUser(userID string) (model.User, error)
	GetUserByEmail(email string) (model.User, error)
}

// MemoryRepo is a concurrency-safe in-memory store backing the whole
// marketplace. All getters return copies; callers never see the backing
// slices or maps.
type MemoryRepo struct {
	mu           sync.RWMutex
	listings     map[string]model.Listing
	bids         map[string][]model.Bid // key: listingID -> bids in placement order
	userListings map[string][]string    // key: userID -> listingIDs the user has bid on
	orders       map[string]model.Order
	users        map[string]model.User
	usersByEmail map[string]string // key: email -> userID
	watchlists   map[string][]model.WatchlistItem
	waitlist     []model.WaitlistEntry
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		listings:     make(map[string]model.Listing),
		bids:         make(map[string][]model.Bid),
		userListings: make(map[string][]string),
		orders:       make(map[string]model.Order),
		users:        make(map[string]model.User),
		usersByEmail: make(map[string]string),
		watchlists:   make(map[string][]model.WatchlistItem),
	}
}

// GetListing returns a copy of the listing with the given id
func (r *MemoryRepo) GetListing(listingID string) (model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listing, ok := r.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return listing, nil
}

// ListListings returns a copy of every listing in the store
func (r *MemoryRepo) ListListings() ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listings := make([]model.Listing, 0, len(r.listings))
	for _, l := range r.listings {
		listings = append(listings, l)
	}
	return listings, nil
}

// AppendBid records a bid and applies the listing price/count update in the
// same critical section, so a bid either lands fully or not at all. Bids are
// appended, never removed; CurrentPrice only ever moves up.
func (r *MemoryRepo) AppendBid(bid model.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[bid.ListingID]
	if !ok {
		return fmt.Errorf("append bid for listing %s: %w", bid.ListingID, auctionerrors.ErrListingNotFound)
	}

	r.bids[bid.ListingID] = append(r.bids[bid.ListingID], bid)

	if bid.Amount > listing.CurrentPrice {
		listing.CurrentPrice = bid.Amount
	}
	listing.BidCount++
	r.listings[bid.ListingID] = listing

	for _, id := range r.userListings[bid.UserID] {
		if id == bid.ListingID {
			return nil
		}
	}
	r.userListings[bid.UserID] = append(r.userListings[bid.UserID], bid.ListingID)

	return nil
}

// GetBidsByListing returns all bids for a listing in placement order
func (r *MemoryRepo) GetBidsByListing(listingID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[listingID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return append([]model.Bid(nil), bids...), nil
}

// GetListingsByBidder returns all listings a user has bid on
func (r *MemoryRepo) GetListingsByBidder(userID string) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	listingIDs, ok := r.userListings[userID]
	if !ok || len(listingIDs) == 0 {
		return nil, fmt.Errorf("get listings for user %s: %w", userID, auctionerrors.ErrUserNoBids)
	}

	listings := make([]model.Listing, 0, len(listingIDs))
	for _, id := range listingIDs {
		if listing, exists := r.listings[id]; exists {
			listings = append(listings, listing)
		}
	}
	return listings, nil
}

// AddWatch records that a user is watching a listing and bumps the
// listing's watcher count. Watching the same listing twice is a no-op.
func (r *MemoryRepo) AddWatch(item model.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[item.ListingID]
	if !ok {
		return fmt.Errorf("watch listing %s: %w", item.ListingID, auctionerrors.ErrListingNotFound)
	}

	for _, existing := range r.watchlists[item.UserID] {
		if existing.ListingID == item.ListingID {
			return nil
		}
	}

	r.watchlists[item.UserID] = append(r.watchlists[item.UserID], item)
	listing.Watchers++
	r.listings[item.ListingID] = listing

	return nil
}

// GetWatchlist returns the listings a user is watching
func (r *MemoryRepo) GetWatchlist(userID string) ([]model.WatchlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]model.WatchlistItem(nil), r.watchlists[userID]...), nil
}

// AddWaitlistEntry appends a waitlist signup
func (r *MemoryRepo) AddWaitlistEntry(entry model.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.waitlist = append(r.waitlist, entry)
	return nil
}

// CreateOrder stores a new order
func (r *MemoryRepo) CreateOrder(order model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[order.ListingID]; !ok {
		return fmt.Errorf("create order for listing %s: %w", order.ListingID, auctionerrors.ErrListingNotFound)
	}

	r.orders[order.OrderID] = order
	return nil
}

// GetOrder returns a copy of the order with the given id
func (r *MemoryRepo) GetOrder(orderID string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return model.Order{}, fmt.Errorf("get order %s: %w", orderID, auctionerrors.ErrOrderNotFound)
	}
	return order, nil
}

// UpdateOrderStatus overwrites an order's status. Transition rules are
// enforced by the order service, not here.
func (r *MemoryRepo) UpdateOrderStatus(orderID string, status model.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return fmt.Errorf("update order %s: %w", orderID, auctionerrors.ErrOrderNotFound)
	}

	order.Status = status
	r.orders[orderID] = order
	return nil
}

// ListOrdersByBuyer returns all orders where the user is the buyer
func (r *MemoryRepo) ListOrdersByBuyer(userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []model.Order
	for _, o := range r.orders {
		if o.BuyerID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// ListOrdersBySeller returns all orders where the user is the seller
func (r *MemoryRepo) ListOrdersBySeller(userID string) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []model.Order
	for _, o := range r.orders {
		if o.SellerID == userID {
			orders = append(orders, o)
		}
	}
	return orders, nil
}

// ListListingsBySeller returns all listings owned by the given seller
func (r *MemoryRepo) ListListingsBySeller(userID string) ([]model.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var listings []model.Listing
	for _, l := range r.listings {
		if l.SellerID == userID {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// GetUser returns the user with the given id
func (r *MemoryRepo) GetUser(userID string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

// GetUserByEmail returns the user registered under the given email
func (r *MemoryRepo) GetUserByEmail(email string) (model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usersByEmail[email]
	if !ok {
		return model.User{}, fmt.Errorf("get user by email %s: %w", email, auctionerrors.ErrUserNotFound)
	}
	return r.users[id], nil
}

// AddListing adds a listing to the repository. Used for seeding and tests.
func (r *MemoryRepo) AddListing(listing model.Listing) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if listing.CurrentPrice < listing.StartingPrice {
		listing.CurrentPrice = listing.StartingPrice
	}
	r.listings[listing.ListingID] = listing
}

// AddUser adds a user to the directory. Used for seeding and tests.
func (r *MemoryRepo) AddUser(user model.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.UserID] = user
	r.usersByEmail[user.Email] = user.UserID
}
