package handler

import (
	"errors"
	"net/http"

	"perfume-shop-api/internal/dto"
	"perfume-shop-api/internal/middleware"
	"perfume-shop-api/internal/service"

	"github.com/labstack/echo/v4"
)

type CheckoutHandler struct {
	checkoutService service.CheckoutService
}

func NewCheckoutHandler(checkoutService service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

func (h *CheckoutHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not authenticated"})
	}

	var req dto.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	resp, err := h.checkoutService.Checkout(ctx, userID, &req)
	if err != nil {
		middleware.RecordOrderOperation("checkout", false)

		var svcErr *service.Error
		if errors.As(err, &svcErr) {
			return c.JSON(svcErr.Status, map[string]string{"error": svcErr.Message})
		}

		// Infrastructure failure: record the cause for operators, never leak
		// it to the caller.
		c.Logger().Errorf("checkout failed (user %d): %v", userID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Order failed. Please try again later."})
	}

	middleware.RecordOrderOperation("checkout", true)
	return c.JSON(http.StatusCreated, resp)
}
