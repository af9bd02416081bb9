package orders

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionerrors"
	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/repository"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func seedEndedListing(repo *repository.MemoryRepo, listingID string, shipping float64) {
	repo.AddListing(model.Listing{
		ListingID:     listingID,
		Title:         "ended listing",
		StartingPrice: 50,
		CurrentPrice:  50,
		Shipping:      shipping,
		EndDate:       testNow.Add(-time.Hour),
		Visibility:    model.VisibilityPublic,
		SellerID:      "host1",
	})
}

func seedBid(t *testing.T, repo *repository.MemoryRepo, listingID, userID string, amount float64, at time.Time) {
	t.Helper()
	require.NoError(t, repo.AppendBid(model.Bid{
		BidID:     userID + "-" + listingID,
		ListingID: listingID,
		UserID:    userID,
		UserName:  userID,
		Amount:    amount,
		CreatedAt: at,
	}))
}

// Tests CreateFromListing
func TestOrderService_CreateFromListing(t *testing.T) {
	t.Parallel()

	t.Run("settles_to_winning_bidder", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		clock := clockwork.NewFakeClockAt(testNow)
		service := NewOrderService(repo, clock)

		seedEndedListing(repo, "listing1", 10)
		seedBid(t, repo, "listing1", "buyerA", 60, testNow.Add(-3*time.Hour))
		seedBid(t, repo, "listing1", "buyerB", 75, testNow.Add(-2*time.Hour))

		order, err := service.CreateFromListing("listing1")
		require.NoError(t, err)
		require.Equal(t, "buyerB", order.BuyerID)
		require.Equal(t, "host1", order.SellerID)
		require.Equal(t, 75.0, order.FinalPrice)
		require.Equal(t, 10.0, order.Shipping)
		require.Equal(t, 85.0, order.Total)
		require.Equal(t, model.OrderPending, order.Status)
		require.Equal(t, testNow, order.CreatedAt)

		stored, err := repo.GetOrder(order.OrderID)
		require.NoError(t, err)
		require.Equal(t, order, stored)
	})

	t.Run("rejects_open_auction", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		clock := clockwork.NewFakeClockAt(testNow)
		service := NewOrderService(repo, clock)

		repo.AddListing(model.Listing{
			ListingID:     "open1",
			StartingPrice: 50,
			CurrentPrice:  50,
			EndDate:       testNow.Add(time.Hour),
			SellerID:      "host1",
		})

		_, err := service.CreateFromListing("open1")
		require.ErrorIs(t, err, auctionerrors.ErrAuctionStillOpen)
	})

	t.Run("rejects_listing_without_bids", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		clock := clockwork.NewFakeClockAt(testNow)
		service := NewOrderService(repo, clock)

		seedEndedListing(repo, "quiet1", 0)

		_, err := service.CreateFromListing("quiet1")
		require.ErrorIs(t, err, auctionerrors.ErrNoBids)
	})

	t.Run("rejects_unknown_listing", func(t *testing.T) {
		t.Parallel()

		repo := repository.NewMemoryRepo()
		service := NewOrderService(repo, clockwork.NewFakeClockAt(testNow))

		_, err := service.CreateFromListing("ghost")
		require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
	})
}

// Tests AdvanceStatus: forward-only, delivered is terminal
func TestOrderService_AdvanceStatus(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewOrderService(repo, clock)

	seedEndedListing(repo, "listing1", 5)
	seedBid(t, repo, "listing1", "buyerA", 60, testNow.Add(-2*time.Hour))

	order, err := service.CreateFromListing("listing1")
	require.NoError(t, err)

	wantProgression := []model.OrderStatus{model.OrderPaid, model.OrderDispatched, model.OrderDelivered}
	for _, want := range wantProgression {
		order, err = service.AdvanceStatus(order.OrderID)
		require.NoError(t, err)
		require.Equal(t, want, order.Status)
	}

	// delivered has no next step
	_, err = service.AdvanceStatus(order.OrderID)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidTransition)

	stored, err := repo.GetOrder(order.OrderID)
	require.NoError(t, err)
	require.Equal(t, model.OrderDelivered, stored.Status)

	_, err = service.AdvanceStatus("ghost")
	require.ErrorIs(t, err, auctionerrors.ErrOrderNotFound)
}

// Tests HostStats aggregation
func TestOrderService_HostStats(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewOrderService(repo, clock)

	// one live auction flagged deal of the day, one finished
	repo.AddListing(model.Listing{
		ListingID: "live1", StartingPrice: 10, CurrentPrice: 10,
		EndDate: testNow.Add(time.Hour), SellerID: "host1", DealOfTheDay: true,
	})
	seedEndedListing(repo, "done1", 10)
	seedBid(t, repo, "done1", "buyerA", 90, testNow.Add(-2*time.Hour))

	order, err := service.CreateFromListing("done1")
	require.NoError(t, err)

	// pending order contributes nothing yet
	stats, err := service.HostStats("host1")
	require.NoError(t, err)
	require.Equal(t, model.HostStats{ActiveAuctions: 1, DealsOfTheDay: 1}, stats)

	// paid: revenue recognized, payout still pending
	_, err = service.AdvanceStatus(order.OrderID)
	require.NoError(t, err)

	stats, err = service.HostStats("host1")
	require.NoError(t, err)
	require.Equal(t, 100.0, stats.TotalRevenue)
	require.Equal(t, 100.0, stats.PendingPayouts)
	require.Equal(t, 0, stats.OrdersComplete)

	// dispatched then delivered: payout cleared, order counted complete
	_, err = service.AdvanceStatus(order.OrderID)
	require.NoError(t, err)
	_, err = service.AdvanceStatus(order.OrderID)
	require.NoError(t, err)

	stats, err = service.HostStats("host1")
	require.NoError(t, err)
	require.Equal(t, 100.0, stats.TotalRevenue)
	require.Equal(t, 0.0, stats.PendingPayouts)
	require.Equal(t, 1, stats.OrdersComplete)
}

// Tests BuyerStats aggregation
func TestOrderService_BuyerStats(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewOrderService(repo, clock)

	// live auction the buyer leads
	repo.AddListing(model.Listing{
		ListingID: "live1", StartingPrice: 10, CurrentPrice: 10,
		EndDate: testNow.Add(time.Hour), SellerID: "host1",
	})
	seedBid(t, repo, "live1", "buyerA", 20, testNow.Add(-time.Hour))

	// live auction the buyer has been outbid on
	repo.AddListing(model.Listing{
		ListingID: "live2", StartingPrice: 10, CurrentPrice: 10,
		EndDate: testNow.Add(time.Hour), SellerID: "host1",
	})
	seedBid(t, repo, "live2", "buyerA", 15, testNow.Add(-time.Hour))
	seedBid(t, repo, "live2", "buyerB", 30, testNow.Add(-30*time.Minute))

	// finished auction the buyer won, settled into an order
	seedEndedListing(repo, "done1", 0)
	seedBid(t, repo, "done1", "buyerA", 60, testNow.Add(-2*time.Hour))
	_, err := service.CreateFromListing("done1")
	require.NoError(t, err)

	require.NoError(t, repo.AddWatch(model.WatchlistItem{UserID: "buyerA", ListingID: "live2", AddedAt: testNow}))

	stats, err := service.BuyerStats("buyerA")
	require.NoError(t, err)
	require.Equal(t, model.BuyerStats{
		WatchingCount: 1,
		ActiveBids:    2,
		WinningBids:   1,
		OrdersCount:   1,
	}, stats)

	// a user with no activity gets zeroes, not an error
	stats, err = service.BuyerStats("stranger")
	require.NoError(t, err)
	require.Equal(t, model.BuyerStats{}, stats)
}
