package auction

import (
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionerrors"
	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/repository"
)

var testNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

func openListing(listingID string, currentPrice float64) model.Listing {
	return model.Listing{
		ListingID:     listingID,
		Title:         "test listing",
		StartingPrice: currentPrice,
		CurrentPrice:  currentPrice,
		EndDate:       testNow.Add(time.Hour),
		Visibility:    model.VisibilityPublic,
		SellerID:      "host1",
	}
}

// Tests PlaceBid
func TestAuctionService_PlaceBid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewAuctionService(mockRepo, clock, 1, time.Minute)

	ended := openListing("ended1", 50)
	ended.EndDate = testNow.Add(-time.Minute)

	endsExactlyNow := openListing("edge1", 50)
	endsExactlyNow.EndDate = testNow

	tests := []struct {
		name          string
		listingID     string
		userID        string
		amount        float64
		mockSetup     func()
		expectError   bool
		expectedError error
	}{
		{
			name:      "valid_bid_at_minimum",
			listingID: "listing1",
			userID:    "buyer1",
			amount:    51,
			mockSetup: func() {
				mockRepo.EXPECT().GetListing("listing1").Return(openListing("listing1", 50), nil)
				mockRepo.EXPECT().AppendBid(gomock.Any()).Return(nil)
			},
		},
		{
			name:      "valid_bid_above_minimum",
			listingID: "listing1",
			userID:    "buyer1",
			amount:    120,
			mockSetup: func() {
				mockRepo.EXPECT().GetListing("listing1").Return(openListing("listing1", 50), nil)
				mockRepo.EXPECT().AppendBid(gomock.Any()).Return(nil)
			},
		},
		{
			name:          "empty_listingID",
			listingID:     "",
			userID:        "buyer1",
			amount:        51,
			mockSetup:     func() {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "empty_userID",
			listingID:     "listing1",
			userID:        "",
			amount:        51,
			mockSetup:     func() {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:          "non_positive_amount",
			listingID:     "listing1",
			userID:        "buyer1",
			amount:        0,
			mockSetup:     func() {},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidInput,
		},
		{
			name:      "listing_missing",
			listingID: "ghost",
			userID:    "buyer1",
			amount:    51,
			mockSetup: func() {
				mockRepo.EXPECT().GetListing("ghost").Return(model.Listing{}, auctionerrors.ErrListingNotFound)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrListingNotFound,
		},
		{
			name:      "bid_below_minimum",
			listingID: "listing1",
			userID:    "buyer1",
			amount:    50.99,
			mockSetup: func() {
				mockRepo.EXPECT().GetListing("listing1").Return(openListing("listing1", 50), nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrInvalidBid,
		},
		{
			name:      "auction_already_ended",
			listingID: "ended1",
			userID:    "buyer1",
			amount:    10000,
			mockSetup: func() {
				mockRepo.EXPECT().GetListing("ended1").Return(ended, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrAuctionClosed,
		},
		{
			name:      "auction_ends_exactly_now",
			listingID: "edge1",
			userID:    "buyer1",
			amount:    10000,
			mockSetup: func() {
				mockRepo.EXPECT().GetListing("edge1").Return(endsExactlyNow, nil)
			},
			expectError:   true,
			expectedError: auctionerrors.ErrAuctionClosed,
		},
		{
			name:      "repo_write_fails",
			listingID: "listing1",
			userID:    "buyer1",
			amount:    60,
			mockSetup: func() {
				mockRepo.EXPECT().GetListing("listing1").Return(openListing("listing1", 50), nil)
				mockRepo.EXPECT().AppendBid(gomock.Any()).Return(errors.New("repo write failed"))
			},
			expectError:   true,
			expectedError: nil, // wrapped repo error, no sentinel to match
		},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			bid, err := service.PlaceBid(tc.listingID, tc.userID, "Test User", tc.amount)

			if tc.expectError {
				require.Error(t, err)
				if tc.expectedError != nil {
					require.ErrorIs(t, err, tc.expectedError)
				}
				return
			}

			require.NoError(t, err)
			require.NotEmpty(t, bid.BidID)
			_, parseErr := uuid.Parse(bid.BidID)
			require.NoError(t, parseErr, "BidID should be a valid UUID")
			require.Equal(t, tc.listingID, bid.ListingID)
			require.Equal(t, tc.userID, bid.UserID)
			require.Equal(t, tc.amount, bid.Amount)
			require.Equal(t, testNow, bid.CreatedAt)
		})
	}
}

// MinimumNextBid is always strictly above the current price, whatever the
// configured increment.
func TestAuctionService_MinimumNextBid(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClockAt(testNow)

	tests := []struct {
		name         string
		increment    float64
		currentPrice float64
		want         float64
	}{
		{name: "default_increment", increment: 0, currentPrice: 50, want: 51},
		{name: "unit_increment", increment: 1, currentPrice: 99, want: 100},
		{name: "fractional_increment", increment: 0.5, currentPrice: 10, want: 10.5},
		{name: "large_increment", increment: 25, currentPrice: 100, want: 125},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			service := NewAuctionService(nil, clock, tc.increment, 0)
			listing := openListing("listing1", tc.currentPrice)

			min := service.MinimumNextBid(listing)
			require.Equal(t, tc.want, min)
			require.Greater(t, min, listing.CurrentPrice)
		})
	}
}

// Tests RankBids ordering: amount descending, earlier timestamp wins ties
func TestRankBids(t *testing.T) {
	t.Parallel()

	t1 := testNow
	t2 := testNow.Add(time.Minute)

	bids := []model.Bid{
		{BidID: "a", UserID: "user1", Amount: 100, CreatedAt: t1},
		{BidID: "b", UserID: "user2", Amount: 150, CreatedAt: t2},
		{BidID: "c", UserID: "user3", Amount: 150, CreatedAt: t1},
	}

	ranked := RankBids(bids)

	require.Equal(t, []string{"c", "b", "a"}, []string{ranked[0].BidID, ranked[1].BidID, ranked[2].BidID})

	// input order untouched
	require.Equal(t, "a", bids[0].BidID)

	require.Empty(t, RankBids(nil))
}

// Tests MyBidStatus derivation
func TestAuctionService_MyBidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewAuctionService(mockRepo, clock, 1, 0)

	bids := []model.Bid{
		{BidID: "a", UserID: "userA", Amount: 51, CreatedAt: testNow},
		{BidID: "b", UserID: "userB", Amount: 55, CreatedAt: testNow.Add(time.Minute)},
	}

	tests := []struct {
		name       string
		userID     string
		mockSetup  func()
		wantStatus model.BidStatus
	}{
		{
			name:   "winning",
			userID: "userB",
			mockSetup: func() {
				mockRepo.EXPECT().GetBidsByListing("listing1").Return(bids, nil)
			},
			wantStatus: model.StatusWinning,
		},
		{
			name:   "outbid",
			userID: "userA",
			mockSetup: func() {
				mockRepo.EXPECT().GetBidsByListing("listing1").Return(bids, nil)
			},
			wantStatus: model.StatusOutbid,
		},
		{
			name:   "not_bidding",
			userID: "userC",
			mockSetup: func() {
				mockRepo.EXPECT().GetBidsByListing("listing1").Return(bids, nil)
			},
			wantStatus: model.StatusNotBidding,
		},
		{
			name:   "no_bids_at_all",
			userID: "userA",
			mockSetup: func() {
				mockRepo.EXPECT().GetBidsByListing("listing1").Return(nil, auctionerrors.ErrNoBids)
			},
			wantStatus: model.StatusNotBidding,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			status, err := service.MyBidStatus("listing1", tc.userID)
			require.NoError(t, err)
			require.Equal(t, tc.wantStatus, status)
		})
	}
}

// End-to-end bidding scenario over the real repository: two buyers trade
// the lead on a listing and their standings flip accordingly.
func TestAuctionService_BiddingScenario(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewAuctionService(repo, clock, 1, 0)

	listing := openListing("listing1", 50)
	repo.AddListing(listing)

	// Buyer A bids the minimum and leads
	bidA, err := service.PlaceBid("listing1", "buyerA", "Buyer A", 51)
	require.NoError(t, err)
	require.Equal(t, 51.0, bidA.Amount)

	got, err := repo.GetListing("listing1")
	require.NoError(t, err)
	require.Equal(t, 51.0, got.CurrentPrice)
	require.Equal(t, 1, got.BidCount)

	statusA, err := service.MyBidStatus("listing1", "buyerA")
	require.NoError(t, err)
	require.Equal(t, model.StatusWinning, statusA)

	// Buyer B matches the old minimum and is rejected; the listing is untouched
	clock.Advance(time.Second)
	_, err = service.PlaceBid("listing1", "buyerB", "Buyer B", 51)
	require.ErrorIs(t, err, auctionerrors.ErrInvalidBid)

	got, err = repo.GetListing("listing1")
	require.NoError(t, err)
	require.Equal(t, 51.0, got.CurrentPrice)
	require.Equal(t, 1, got.BidCount)

	// Buyer B clears the new minimum and takes the lead
	clock.Advance(time.Second)
	_, err = service.PlaceBid("listing1", "buyerB", "Buyer B", 55)
	require.NoError(t, err)

	statusA, err = service.MyBidStatus("listing1", "buyerA")
	require.NoError(t, err)
	require.Equal(t, model.StatusOutbid, statusA)

	statusB, err := service.MyBidStatus("listing1", "buyerB")
	require.NoError(t, err)
	require.Equal(t, model.StatusWinning, statusB)

	winning, err := service.GetWinningBid("listing1")
	require.NoError(t, err)
	require.Equal(t, "buyerB", winning.UserID)

	// Past the end date every bid fails closed, regardless of amount
	clock.Advance(2 * time.Hour)
	_, err = service.PlaceBid("listing1", "buyerA", "Buyer A", 1000)
	require.ErrorIs(t, err, auctionerrors.ErrAuctionClosed)
}

// ListListings visibility filtering
func TestAuctionService_ListListings(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewAuctionService(repo, clock, 1, 0)

	public := openListing("pub1", 10)
	private := openListing("priv1", 10)
	private.Visibility = model.VisibilityPrivate
	unlisted := openListing("unl1", 10)
	unlisted.Visibility = model.VisibilityUnlisted

	repo.AddListing(public)
	repo.AddListing(private)
	repo.AddListing(unlisted)

	anon, err := service.ListListings(nil)
	require.NoError(t, err)
	require.Len(t, anon, 1)
	require.Equal(t, "pub1", anon[0].ListingID)

	buyer := model.User{UserID: "buyer1", Role: model.RoleBuyer}
	asBuyer, err := service.ListListings(&buyer)
	require.NoError(t, err)
	require.Len(t, asBuyer, 1)

	seller := model.User{UserID: "host1", Role: model.RoleHost}
	asSeller, err := service.ListListings(&seller)
	require.NoError(t, err)
	require.Len(t, asSeller, 3)
}

// Countdown delegates to the listing's end date and the service clock
func TestAuctionService_Countdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := repository.NewMockAuctionDB(ctrl)
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewAuctionService(mockRepo, clock, 1, time.Minute)

	listing := openListing("listing1", 50)
	listing.EndDate = testNow.Add(30 * time.Second)
	mockRepo.EXPECT().GetListing("listing1").Return(listing, nil)

	snap, err := service.Countdown("listing1")
	require.NoError(t, err)
	require.Equal(t, "0m 30s", snap.Formatted)
	require.False(t, snap.Expired)

	mockRepo.EXPECT().GetListing("ghost").Return(model.Listing{}, auctionerrors.ErrListingNotFound)
	_, err = service.Countdown("ghost")
	require.ErrorIs(t, err, auctionerrors.ErrListingNotFound)
}

// Waitlist capture and watchlist plumbing
func TestAuctionService_WatchAndWaitlist(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemoryRepo()
	clock := clockwork.NewFakeClockAt(testNow)
	service := NewAuctionService(repo, clock, 1, 0)

	repo.AddListing(openListing("listing1", 50))

	item, err := service.WatchListing("buyer1", "listing1")
	require.NoError(t, err)
	require.Equal(t, testNow, item.AddedAt)

	items, err := service.GetWatchlist("buyer1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = service.WatchListing("buyer1", "")
	require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)

	entry, err := service.JoinWaitlist("new@chigona.com", "Newcomer")
	require.NoError(t, err)
	require.NotEmpty(t, entry.EntryID)

	_, err = service.JoinWaitlist("", "Nameless")
	require.ErrorIs(t, err, auctionerrors.ErrInvalidInput)
}
