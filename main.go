package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	auction "github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionService"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/config"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/countdown"
	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	orders "github.com/yemichigona-bit/Ycs-BIdding-house/internal/orderService"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/repository"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/server"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/session"
	"github.com/yemichigona-bit/Ycs-BIdding-house/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLogLevel(cfg.LogLevel)

	clock := clockwork.NewRealClock()
	repo := repository.NewMemoryRepo()

	prepopulate(repo, clock)

	auctionSvc := auction.NewAuctionService(repo, clock, cfg.BidIncrement, cfg.ClosingWindow)
	orderSvc := orders.NewOrderService(repo, clock)
	sessionSvc := session.NewService(repo, demoCredentials(), []byte(cfg.JWTSecret), cfg.JWTTTL, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ticker := countdown.NewTicker(clock, cfg.TickInterval, cfg.ClosingWindow)
	watchClosings(ctx, repo, ticker)

	router := server.SetupRouter(auctionSvc, orderSvc, sessionSvc)

	fmt.Printf("Starting auction server on %s...\n", cfg.Addr())
	if err := router.Run(cfg.Addr()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// watchClosings follows each listing's countdown and logs its phase
// transitions, so the server narrates auctions entering their closing
// window and ending.
func watchClosings(ctx context.Context, repo *repository.MemoryRepo, ticker *countdown.Ticker) {
	listings, err := repo.ListListings()
	if err != nil {
		return
	}

	for _, listing := range listings {
		listing := listing
		go func() {
			last := countdown.PhaseOpen
			for snap := range ticker.Watch(ctx, listing.EndDate) {
				if snap.Phase == last {
					continue
				}
				last = snap.Phase
				utils.Info("listing phase change", map[string]any{
					"listing_id": listing.ListingID,
					"phase":      string(snap.Phase),
					"remaining":  snap.Formatted,
				})
			}
		}()
	}
}

// demoCredentials returns the fixed two-account login directory
func demoCredentials() session.Credentials {
	return session.Credentials{
		"admin@chigona.com": "admin123",
		"buyer@chigona.com": "buyer123",
	}
}

// prepopulate seeds the in-memory repo with the demo users and listings
func prepopulate(repo *repository.MemoryRepo, clock clockwork.Clock) {
	users := []model.User{
		{UserID: "host1", Email: "admin@chigona.com", Name: "Chigona Admin", Role: model.RoleHost},
		{UserID: "buyer1", Email: "buyer@chigona.com", Name: "Demo Buyer", Role: model.RoleBuyer},
	}
	for _, user := range users {
		repo.AddUser(user)
	}

	now := clock.Now().UTC()
	listings := []model.Listing{
		{
			ListingID:     "listing1",
			Title:         "Vintage Leather Armchair",
			Description:   "Mid-century armchair, original upholstery",
			Category:      "Furniture",
			Condition:     model.ConditionGood,
			StartingPrice: 120,
			BuyNowPrice:   400,
			Shipping:      25,
			EndDate:       now.Add(48 * time.Hour),
			Visibility:    model.VisibilityPublic,
			DealOfTheDay:  true,
			SellerID:      "host1",
			SellerName:    "Chigona Admin",
			CreatedAt:     now,
		},
		{
			ListingID:     "listing2",
			Title:         "Boxed Film Camera",
			Description:   "35mm rangefinder, tested and working",
			Category:      "Electronics",
			Condition:     model.ConditionLikeNew,
			StartingPrice: 80,
			Shipping:      8,
			EndDate:       now.Add(6 * time.Hour),
			Visibility:    model.VisibilityPublic,
			SellerID:      "host1",
			SellerName:    "Chigona Admin",
			CreatedAt:     now,
		},
		{
			ListingID:     "listing3",
			Title:         "Signed First Edition",
			Description:   "Private sale for returning collectors",
			Category:      "Books",
			Condition:     model.ConditionFair,
			StartingPrice: 250,
			Shipping:      5,
			EndDate:       now.Add(72 * time.Hour),
			Visibility:    model.VisibilityPrivate,
			SellerID:      "host1",
			SellerName:    "Chigona Admin",
			CreatedAt:     now,
		},
	}
	for _, listing := range listings {
		repo.AddListing(listing)
	}
}
