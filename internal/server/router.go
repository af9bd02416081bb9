package server

import (
	auction "github.com/yemichigona-bit/Ycs-BIdding-house/internal/auctionService"
	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	orders "github.com/yemichigona-bit/Ycs-BIdding-house/internal/orderService"
	"github.com/yemichigona-bit/Ycs-BIdding-house/internal/session"
	handler "github.com/yemichigona-bit/Ycs-BIdding-house/services/auction/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(auctionService *auction.AuctionService, orderService *orders.OrderService, sessions *session.Service) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())              // recover from panics
	router.Use(RequestLoggerMiddleware)     // custom request logging
	router.Use(cors.Default())              // browser front-end runs on its own origin
	router.Use(SessionResolver(sessions))   // resolve Bearer token to current user

	auctionHandler := handler.NewAuctionHandler(auctionService)
	orderHandler := handler.NewOrderHandler(orderService)
	authHandler := handler.NewAuthHandler(sessions)

	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.LoginHandler)
		auth.POST("/logout", authHandler.LogoutHandler)
	}

	listings := router.Group("/listings")
	{
		listings.GET("", auctionHandler.ListListingsHandler)
		listings.GET("/:listing_id", auctionHandler.GetListingHandler)
		listings.GET("/:listing_id/bids", auctionHandler.GetBidsByListingHandler)
		listings.GET("/:listing_id/winning", auctionHandler.GetWinningBidHandler)
		listings.GET("/:listing_id/countdown", auctionHandler.GetCountdownHandler)
		listings.GET("/:listing_id/status", RequireAuth, auctionHandler.MyBidStatusHandler)
	}

	bids := router.Group("/bids", RequireAuth, RequireRole(model.RoleBuyer))
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
	}

	users := router.Group("/users", RequireAuth)
	{
		users.GET("/:user_id/listings", auctionHandler.GetListingsByBidderHandler)
		users.GET("/:user_id/watchlist", auctionHandler.GetWatchlistHandler)
	}

	watchlist := router.Group("/watchlist", RequireAuth)
	{
		watchlist.POST("", auctionHandler.WatchListingHandler)
	}

	orderRoutes := router.Group("/orders", RequireAuth)
	{
		orderRoutes.POST("", RequireRole(model.RoleHost), orderHandler.CreateOrderHandler)
		orderRoutes.POST("/:order_id/advance", RequireRole(model.RoleHost), orderHandler.AdvanceOrderHandler)
		orderRoutes.GET("/:order_id", orderHandler.GetOrderHandler)
	}

	hosts := router.Group("/hosts", RequireAuth, RequireRole(model.RoleHost))
	{
		hosts.GET("/:user_id/stats", orderHandler.HostStatsHandler)
	}

	buyers := router.Group("/buyers", RequireAuth)
	{
		buyers.GET("/:user_id/stats", orderHandler.BuyerStatsHandler)
	}

	router.POST("/waitlist", auctionHandler.JoinWaitlistHandler)

	return router
}
