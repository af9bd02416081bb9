package auction

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionerrors"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/countdown"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/repository"
	"github.com/yemichigona-bit/Ycs-BIdding-house/utils"
)

// DefaultIncrement is the minimum bid step when none is configured:
// one currency unit, matching the marketplace's house rules.
const DefaultIncrement = 1.0

// AuctionService defines the business logic for listing auctions: bid
// validation against the increment policy, the end-date gate, ranking,
// and per-user standing.
type AuctionService struct {
	repo          repository.AuctionDB
	clock         clockwork.Clock
	increment     float64
	closingWindow time.Duration
}

// NewAuctionService creates a new AuctionService instance. A non-positive
// increment falls back to DefaultIncrement.
func NewAuctionService(repo repository.AuctionDB, clock clockwork.Clock, increment float64, closingWindow time.Duration) *AuctionService {
	if increment <= 0 {
		increment = DefaultIncrement
	}
	return &AuctionService{
		repo:          repo,
		clock:         clock,
		increment:     increment,
		closingWindow: closingWindow,
	}
}

// MinimumNextBid returns the smallest amount that would be accepted on the
// listing right now. Always strictly above CurrentPrice.
func (s *AuctionService) MinimumNextBid(listing models.Listing) float64 {
	return listing.CurrentPrice + s.increment
}

// IsExpired reports whether the listing's auction has ended
func (s *AuctionService) IsExpired(listing models.Listing) bool {
	return !s.clock.Now().Before(listing.EndDate)
}

// PlaceBid validates and records a user's bid on a listing. A bid on an
// ended auction is rejected regardless of amount; an amount below
// MinimumNextBid is rejected without touching the listing. On success the
// repository applies the bid append and price/count bump atomically.
func (s *AuctionService) PlaceBid(listingID, userID, userName string, amount float64) (models.Bid, error) {
	if listingID == "" || userID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - missing listingID or userID", auctionerrors.ErrInvalidInput)
	}
	if amount <= 0 {
		return models.Bid{}, fmt.Errorf("service: %w - non-positive bid amount", auctionerrors.ErrInvalidInput)
	}

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}

	if s.IsExpired(listing) {
		return models.Bid{}, fmt.Errorf("service: %w - listing %s ended at %s", auctionerrors.ErrAuctionClosed, listingID, listing.EndDate.UTC().Format(time.RFC3339))
	}

	if min := s.MinimumNextBid(listing); amount < min {
		return models.Bid{}, fmt.Errorf("service: %w - minimum next bid is %.2f", auctionerrors.ErrInvalidBid, min)
	}

	bid := models.Bid{
		BidID:     utils.GenerateID(),
		ListingID: listingID,
		UserID:    userID,
		UserName:  userName,
		Amount:    amount,
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.repo.AppendBid(bid); err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to record bid for listing %s by user %s: %w", listingID, userID, err)
	}

	return bid, nil
}

// RankBids orders bids by amount descending; on equal amounts the earlier
// bid ranks first. The input slice is not modified.
func RankBids(bids []models.Bid) []models.Bid {
	ranked := append([]models.Bid(nil), bids...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Amount != ranked[j].Amount {
			return ranked[i].Amount > ranked[j].Amount
		}
		return ranked[i].CreatedAt.Before(ranked[j].CreatedAt)
	})
	return ranked
}

// GetBidsForListing returns a listing's bids ranked best-first
func (s *AuctionService) GetBidsForListing(listingID string) ([]models.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}

	return RankBids(bids), nil
}

// GetWinningBid returns the top-ranked bid for a listing
func (s *AuctionService) GetWinningBid(listingID string) (models.Bid, error) {
	ranked, err := s.GetBidsForListing(listingID)
	if err != nil {
		return models.Bid{}, err
	}
	return ranked[0], nil
}

// MyBidStatus derives a user's standing on a listing from the full bid
// list: StatusWinning if their bid ranks first, StatusOutbid if they bid
// but do not lead, StatusNotBidding otherwise. Recomputed on every call;
// bid lists are small and this keeps no denormalized state to go stale.
func (s *AuctionService) MyBidStatus(listingID, userID string) (models.BidStatus, error) {
	if listingID == "" || userID == "" {
		return "", fmt.Errorf("service: %w - missing listingID or userID", auctionerrors.ErrInvalidInput)
	}

	bids, err := s.repo.GetBidsByListing(listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			return models.StatusNotBidding, nil
		}
		return "", fmt.Errorf("service: failed to get bids for listing %s: %w", listingID, err)
	}

	ranked := RankBids(bids)
	if ranked[0].UserID == userID {
		return models.StatusWinning, nil
	}
	for _, b := range ranked[1:] {
		if b.UserID == userID {
			return models.StatusOutbid, nil
		}
	}
	return models.StatusNotBidding, nil
}

// Countdown samples the listing's remaining time at the current instant
func (s *AuctionService) Countdown(listingID string) (countdown.Snapshot, error) {
	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return countdown.Snapshot{}, fmt.Errorf("service: failed to load listing %s: %w", listingID, err)
	}
	return countdown.Remaining(listing.EndDate, s.clock.Now(), s.closingWindow), nil
}

// GetListing returns a single listing by id
func (s *AuctionService) GetListing(listingID string) (models.Listing, error) {
	if listingID == "" {
		return models.Listing{}, fmt.Errorf("service: %w - empty listing ID", auctionerrors.ErrInvalidInput)
	}

	listing, err := s.repo.GetListing(listingID)
	if err != nil {
		return models.Listing{}, fmt.Errorf("service: failed to get listing %s: %w", listingID, err)
	}
	return listing, nil
}

// ListListings returns the listings visible to the given viewer. Public
// listings are visible to everyone; private and unlisted ones only to
// their seller. Visibility is a discovery filter, not an access control.
func (s *AuctionService) ListListings(viewer *models.User) ([]models.Listing, error) {
	listings, err := s.repo.ListListings()
	if err != nil {
		return nil, fmt.Errorf("service: failed to list listings: %w", err)
	}

	visible := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if l.Visibility == models.VisibilityPublic || (viewer != nil && viewer.UserID == l.SellerID) {
			visible = append(visible, l)
		}
	}
	return visible, nil
}

// GetListingsForBidder returns all listings a user has placed bids on
func (s *AuctionService) GetListingsForBidder(userID string) ([]models.Listing, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}

	listings, err := s.repo.GetListingsByBidder(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get listings for user %s: %w", userID, err)
	}
	return listings, nil
}

// WatchListing adds a listing to a user's watchlist
func (s *AuctionService) WatchListing(userID, listingID string) (models.WatchlistItem, error) {
	if userID == "" || listingID == "" {
		return models.WatchlistItem{}, fmt.Errorf("service: %w - missing userID or listingID", auctionerrors.ErrInvalidInput)
	}

	item := models.WatchlistItem{
		UserID:    userID,
		ListingID: listingID,
		AddedAt:   s.clock.Now().UTC(),
	}
	if err := s.repo.AddWatch(item); err != nil {
		return models.WatchlistItem{}, fmt.Errorf("service: failed to watch listing %s for user %s: %w", listingID, userID, err)
	}
	return item, nil
}

// GetWatchlist returns a user's watchlist
func (s *AuctionService) GetWatchlist(userID string) ([]models.WatchlistItem, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}

	items, err := s.repo.GetWatchlist(userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get watchlist for user %s: %w", userID, err)
	}
	return items, nil
}

// JoinWaitlist captures a waitlist signup from the public form
func (s *AuctionService) JoinWaitlist(email, name string) (models.WaitlistEntry, error) {
	if email == "" {
		return models.WaitlistEntry{}, fmt.Errorf("service: %w - empty email", auctionerrors.ErrInvalidInput)
	}

	entry := models.WaitlistEntry{
		EntryID:   utils.GenerateID(),
		Email:     email,
		Name:      name,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.AddWaitlistEntry(entry); err != nil {
		return models.WaitlistEntry{}, fmt.Errorf("service: failed to record waitlist entry for %s: %w", email, err)
	}
	return entry, nil
}
