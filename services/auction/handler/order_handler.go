package handler

import (
	"fmt"
	"net/http"

	model "github.com/yemichigona-bit/Ycs-BIdding-house/internal/models"
	"github.com/yemichigona-bit/Ycs-BIdding-house/services/auction/helpers"
	"github.com/yemichigona-bit/Ycs-BIdding-house/utils"

	"github.com/gin-gonic/gin"
)

type OrderServiceInterface interface {
	CreateFromListing(listingID string) (model.Order, error)
	AdvanceStatus(orderID string) (model.Order, error)
	GetOrder(orderID string) (model.Order, error)
	HostStats(userID string) (model.HostStats, error)
	BuyerStats(userID string) (model.BuyerStats, error)
}

type OrderHandler struct {
	service OrderServiceInterface
}

func NewOrderHandler(service OrderServiceInterface) *OrderHandler {
	return &OrderHandler{service: service}
}

// CreateOrderHandler handles POST /orders
func (h *OrderHandler) CreateOrderHandler(c *gin.Context) {
	var req helpers.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateOrderHandler", err)
		return
	}

	order, err := h.service.CreateFromListing(req.ListingID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateOrderHandler: failed to create order", map[string]any{
			"listing_id": req.ListingID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, order, "order created successfully")
	helpers.LogSuccess("CreateOrderHandler", "order created successfully", map[string]any{
		"order_id":   order.OrderID,
		"listing_id": order.ListingID,
		"buyer_id":   order.BuyerID,
		"total":      order.Total,
	})
}

// AdvanceOrderHandler handles POST /orders/:order_id/advance
func (h *OrderHandler) AdvanceOrderHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	order, err := h.service.AdvanceStatus(orderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("AdvanceOrderHandler: advance error", map[string]any{"order_id": orderID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, order, "order status advanced")
	helpers.LogSuccess("AdvanceOrderHandler", "order status advanced", map[string]any{
		"order_id": order.OrderID,
		"status":   order.Status,
	})
}

// GetOrderHandler handles GET /orders/:order_id
func (h *OrderHandler) GetOrderHandler(c *gin.Context) {
	orderID := c.Param("order_id")
	order, err := h.service.GetOrder(orderID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetOrderHandler: error retrieving order", map[string]any{"order_id": orderID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, order, "order retrieved successfully")
}

// HostStatsHandler handles GET /hosts/:user_id/stats
func (h *OrderHandler) HostStatsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	stats, err := h.service.HostStats(userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("HostStatsHandler: stats error", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, stats, "host stats retrieved successfully")
}

// BuyerStatsHandler handles GET /buyers/:user_id/stats
func (h *OrderHandler) BuyerStatsHandler(c *gin.Context) {
	userID := c.Param("user_id")
	stats, err := h.service.BuyerStats(userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("BuyerStatsHandler: stats error", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, stats, "buyer stats retrieved successfully")
}
