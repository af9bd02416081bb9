package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionerrors"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/countdown"
	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/services/auction/helpers"
	"github.com/yemichigona-bit/Ycs-BIdding-house/utils"

	"github.com/gin-gonic/gin"
)

type AuctionServiceInterface interface {
	PlaceBid(listingID, userID, userName string, amount float64) (model.Bid, error)
	GetListing(listingID string) (model.Listing, error)
	ListListings(viewer *model.User) ([]model.Listing, error)
	GetBidsForListing(listingID string) ([]model.Bid, error)
	GetWinningBid(listingID string) (model.Bid, error)
	Countdown(listingID string) (countdown.Snapshot, error)
	MyBidStatus(listingID, userID string) (model.BidStatus, error)
	GetListingsForBidder(userID string) ([]model.Listing, error)
	WatchListing(userID, listingID string) (model.WatchlistItem, error)
	GetWatchlist(userID string) ([]model.WatchlistItem, error)
	JoinWaitlist(email, name string) (model.WaitlistEntry, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// PlaceBidHandler handles POST /bids. The bidder is the session user.
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrBadCredentials, "authentication required")
		return
	}

	bid, err := h.service.PlaceBid(req.ListingID, user.UserID, user.Name, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"listing_id": req.ListingID,
			"user_id":    user.UserID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    user.UserID,
		"amount":     bid.Amount,
	})
}

// ListListingsHandler handles GET /listings
func (h *AuctionHandler) ListListingsHandler(c *gin.Context) {
	var viewer *model.User
	if user, ok := helpers.CurrentUser(c); ok {
		viewer = &user
	}

	listings, err := h.service.ListListings(viewer)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListListingsHandler: error listing listings", map[string]any{"error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listings, "listings retrieved successfully")
}

// GetListingHandler handles GET /listings/:listing_id
func (h *AuctionHandler) GetListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	listing, err := h.service.GetListing(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetListingHandler: error retrieving listing", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, listing, "listing retrieved successfully")
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *AuctionHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bids, err := h.service.GetBidsForListing(listingID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByListingHandler: error retrieving bids", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	if bids == nil {
		bids = []model.Bid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByListingHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(bids),
	})
}

// GetWinningBidHandler handles GET /listings/:listing_id/winning
func (h *AuctionHandler) GetWinningBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	bid, err := h.service.GetWinningBid(listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no winning bid found")
			utils.Info("GetWinningBidHandler: no winning bid found", map[string]any{"listing_id": listingID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWinningBidHandler: winning bid error", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "winning bid retrieved successfully")
}

// GetCountdownHandler handles GET /listings/:listing_id/countdown
func (h *AuctionHandler) GetCountdownHandler(c *gin.Context) {
	listingID := c.Param("listing_id")
	snap, err := h.service.Countdown(listingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetCountdownHandler: countdown error", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, snap, "countdown retrieved successfully")
}

// MyBidStatusHandler handles GET /listings/:listing_id/status for the session user
func (h *AuctionHandler) MyBidStatusHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrBadCredentials, "authentication required")
		return
	}

	status, err := h.service.MyBidStatus(listingID, user.UserID)
	if err != nil {
		httpStatus, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, httpStatus, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MyBidStatusHandler: status error", map[string]any{"listing_id": listingID, "user_id": user.UserID, "error": err.Error()})
		return
	}

	resp := helpers.BidStatusResponse{
		ListingID: listingID,
		UserID:    user.UserID,
		Status:    status,
	}
	utils.JSONResponse(c, http.StatusOK, resp, "bid status retrieved successfully")
}

// GetListingsByBidderHandler handles GET /users/:user_id/listings
func (h *AuctionHandler) GetListingsByBidderHandler(c *gin.Context) {
	userID := c.Param("user_id")
	listings, err := h.service.GetListingsForBidder(userID)
	if err != nil && !errors.Is(err, auctionerrors.ErrUserNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetListingsByBidderHandler: error retrieving listings", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if listings == nil {
		listings = []model.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "listings retrieved successfully")
}

// WatchListingHandler handles POST /watchlist for the session user
func (h *AuctionHandler) WatchListingHandler(c *gin.Context) {
	var req helpers.WatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "WatchListingHandler", err)
		return
	}

	user, ok := helpers.CurrentUser(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, auctionerrors.ErrBadCredentials, "authentication required")
		return
	}

	item, err := h.service.WatchListing(user.UserID, req.ListingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("WatchListingHandler: watch error", map[string]any{"listing_id": req.ListingID, "user_id": user.UserID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, item, "listing added to watchlist")
}

// GetWatchlistHandler handles GET /users/:user_id/watchlist
func (h *AuctionHandler) GetWatchlistHandler(c *gin.Context) {
	userID := c.Param("user_id")
	items, err := h.service.GetWatchlist(userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetWatchlistHandler: watchlist error", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	if items == nil {
		items = []model.WatchlistItem{}
	}

	utils.JSONResponse(c, http.StatusOK, items, "watchlist retrieved successfully")
}

// JoinWaitlistHandler handles POST /waitlist (public, fire-and-forget capture)
func (h *AuctionHandler) JoinWaitlistHandler(c *gin.Context) {
	var req helpers.WaitlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "JoinWaitlistHandler", err)
		return
	}

	entry, err := h.service.JoinWaitlist(req.Email, req.Name)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("JoinWaitlistHandler: waitlist error", map[string]any{"email": req.Email, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, entry, "waitlist entry recorded")
	helpers.LogSuccess("JoinWaitlistHandler", "waitlist entry recorded", map[string]any{
		"entry_id": entry.EntryID,
	})
}
