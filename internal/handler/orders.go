package handler

import (
	"errors"
	"net/http"
	"strconv"

	"perfume-shop-api/internal/dto"
	"perfume-shop-api/internal/middleware"
	"perfume-shop-api/internal/service"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type OrdersHandler struct {
	orderService service.OrderQueryService
}

func NewOrdersHandler(orderService service.OrderQueryService) *OrdersHandler {
	return &OrdersHandler{
		orderService: orderService,
	}
}

// Orders returns the user's full order history with nested items. Read
// failures degrade to an empty list with a message; this view is not
// critical enough to hard-fail.
func (h *OrdersHandler) Orders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	entries, err := h.orderService.History(ctx, userID)
	if err != nil {
		c.Logger().Errorf("get orders failed (user %d): %v", userID, err)
		return c.JSON(http.StatusOK, dto.OrdersResponse{
			Orders:  []dto.OrderHistoryEntry{},
			Message: "Failed to load orders",
		})
	}

	return c.JSON(http.StatusOK, dto.OrdersResponse{Orders: entries})
}

func (h *OrdersHandler) OrderDetail(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil || orderID <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	entry, err := h.orderService.Detail(ctx, userID, uint(orderID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
		}
		c.Logger().Errorf("get order %d failed (user %d): %v", orderID, userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load order"})
	}

	return c.JSON(http.StatusOK, entry)
}

// RecentOrders returns a capped summary of the newest orders. It always
// answers 200: failures degrade to an empty list with a retry message.
func (h *OrdersHandler) RecentOrders(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, dto.RecentOrdersResponse{
			RecentOrders: []dto.RecentOrder{},
			Message:      "Unauthorized",
		})
	}

	limit := service.RecentOrdersDefault
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	summaries, err := h.orderService.Recent(ctx, userID, limit)
	if err != nil {
		c.Logger().Errorf("recent orders failed (user %d): %v", userID, err)
		return c.JSON(http.StatusOK, dto.RecentOrdersResponse{
			RecentOrders: []dto.RecentOrder{},
			Message:      "Try again",
		})
	}

	message := "Your latest orders"
	if len(summaries) == 0 {
		summaries = []dto.RecentOrder{}
		message = "No orders yet"
	}

	return c.JSON(http.StatusOK, dto.RecentOrdersResponse{
		RecentOrders: summaries,
		Count:        len(summaries),
		Message:      message,
	})
}
