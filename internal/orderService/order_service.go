package orders

import (
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"

	auction "github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionService"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionerrors"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/repository"
	"github.com/yemichigona-bit/Ycs-BIdding-house/utils"
)

// nextStatus encodes the forward-only order progression. Absence from the
// map means the status is terminal.
var nextStatus = map[models.OrderStatus]models.OrderStatus{
	models.OrderPending:    models.OrderPaid,
	models.OrderPaid:       models.OrderDispatched,
	models.OrderDispatched: models.OrderDelivered,
}

// OrderService defines the business logic for orders and dashboard stats
type OrderService struct {
	repo  repository.OrderDB
	clock clockwork.Clock
}

// NewOrderService creates a new OrderService instance
func NewOrderService(repo repository.OrderDB, clock clockwork.Clock) *OrderService {
	return &OrderService{
		repo:  repo,
		clock: clock,
	}
}

// CreateFromListing settles a finished auction into an order for its
// winning bidder. The listing must have ended and have at least one bid.
func (s *OrderService) CreateFromListing(listingID string) (models.Order, error) {
	if listingID == "" {
		return models.Order{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return models.Order{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}

	if s.clock.Now().Before(listing.EndDate) {
		return models.Order{}, fmt.Errorf("service: %w - listing %s has not ended", auctionerrors.ErrAuctionStillOpen, listingID)
	}

	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		return models.Order{}, fmt.Errorf("service: failed to load bids for listing %s: %w", listingID, err)
	}
	winning := auction.RankBids(bids)[0]

	order := models.Order{
		OrderID:    utils.GenerateID(),
		ListingID:  listingID,
		BuyerID:    winning.UserID,
		SellerID:   listing.SellerID,
		FinalPrice: winning.Amount,
		Shipping:   listing.Shipping,
		Total:      winning.Amount + listing.Shipping,
		Status:     models.OrderPending,
		CreatedAt:  s.clock.Now().UTC(),
	}

	if err := s.repo.CreateOrder(order); err != nil {
		return models.Order{}, fmt.Errorf("service: failed to create order for listing %s: %w", listingID, err)
	}
	return order, nil
}

// AdvanceStatus moves an order one step along the pending -> paid ->
// dispatched -> delivered progression. Delivered is terminal.
func (s *OrderService) AdvanceStatus(orderID string) (models.Order, error) {
	if orderID == "" {
		return models.Order{}, fmt.Errorf("service: %w - empty order ID", auctionerrors.ErrInvalidInput)
	}

	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("service: failed to load order %s: %w", orderID, err)
	}

	next, ok := nextStatus[order.Status]
	if !ok {
		return models.Order{}, fmt.Errorf("service: %w - order %s is already %s", auctionerrors.ErrInvalidTransition, orderID, order.Status)
	}

	if err := s.repo.UpdateOrderStatus(orderID, next); err != nil {
		return models.Order{}, fmt.Errorf("service: failed to update order %s: %w", orderID, err)
	}

	order.Status = next
	return order, nil
}

// GetOrder returns a single order by id
func (s *OrderService) GetOrder(orderID string) (models.Order, error) {
	if orderID == "" {
		return models.Order{}, fmt.Errorf("service: %w - empty order ID", auctionerrors.ErrInvalidInput)
	}

	order, err := s.repo.GetOrder(orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("service: failed to get order %s: %w", orderID, err)
	}
	return order, nil
}

// HostStats aggregates a seller's dashboard numbers from their orders and
// listings. Revenue counts orders that have been paid or later; payouts
// are pending until delivery completes.
func (s *OrderService) HostStats(userID string) (models.HostStats, error) {
	if userID == "" {
		return models.HostStats{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}

	sellerOrders, err := s.repo.ListOrdersBySeller(userID)
	if err != nil {
		return models.HostStats{}, fmt.Errorf("service: failed to list orders for seller %s: %w", userID, err)
	}

	var stats models.HostStats
	for _, o := range sellerOrders {
		switch o.Status {
		case models.OrderDelivered:
			stats.OrdersComplete++
			stats.TotalRevenue += o.Total
		case models.OrderPaid, models.OrderDispatched:
			stats.TotalRevenue += o.Total
			stats.PendingPayouts += o.Total
		}
	}

	listings, err := s.repo.ListListingsBySeller(userID)
	if err != nil {
		return models.HostStats{}, fmt.Errorf("service: failed to list listings for seller %s: %w", userID, err)
	}

	now := s.clock.Now()
	for _, l := range listings {
		if now.Before(l.EndDate) {
			stats.ActiveAuctions++
		}
		if l.DealOfTheDay {
			stats.DealsOfTheDay++
		}
	}

	return stats, nil
}

// BuyerStats aggregates a buyer's dashboard numbers: watchlist size,
// bids on still-open auctions, how many of those they lead, and orders.
func (s *OrderService) BuyerStats(userID string) (models.BuyerStats, error) {
	if userID == "" {
		return models.BuyerStats{}, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}

	var stats models.BuyerStats

	watchlist, err := s.repo.GetWatchlist(userID)
	if err != nil {
		return models.BuyerStats{}, fmt.Errorf("service: failed to get watchlist for user %s: %w", userID, err)
	}
	stats.WatchingCount = len(watchlist)

	listings, err := s.repo.GetListingsByBidder(userID)
	if err != nil && !errors.Is(err, auctionerrors.ErrUserNoBids) {
		return models.BuyerStats{}, fmt.Errorf("service: failed to get listings for user %s: %w", userID, err)
	}

	now := s.clock.Now()
	for _, l := range listings {
		if !now.Before(l.EndDate) {
			continue
		}
		stats.ActiveBids++

		bids, err := s.repo.GetBidsByListing(l.ListingID)
		if err != nil {
			continue
		}
		if ranked := auction.RankBids(bids); ranked[0].UserID == userID {
			stats.WinningBids++
		}
	}

	buyerOrders, err := s.repo.ListOrdersByBuyer(userID)
	if err != nil {
		return models.BuyerStats{}, fmt.Errorf("service: failed to list orders for buyer %s: %w", userID, err)
	}
	stats.OrdersCount = len(buyerOrders)

	return stats, nil
}
