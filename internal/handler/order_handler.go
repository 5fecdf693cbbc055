package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/model"
	"storefront/internal/service"
)

// OrderHandler handles the authenticated order endpoints.
type OrderHandler struct {
	orders service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// PlaceOrderRequest represents an order placement request. Products is an
// opaque structured payload.
type PlaceOrderRequest struct {
	Products []interface{} `json:"products" validate:"required"`
	Amount   string        `json:"amount" validate:"required"`
}

// Place records a pending order for the token's user.
func (h *OrderHandler) Place(c echo.Context) error {
	userID, ok := userIDFromToken(c)
	if !ok {
		return failWith(c, http.StatusUnauthorized, "invalid token", "UNAUTHORIZED")
	}

	var req PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return failWith(c, http.StatusBadRequest, "invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(&req); err != nil {
		return failWith(c, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return failWith(c, http.StatusBadRequest, "amount must be numeric", "VALIDATION_ERROR")
	}

	order, err := h.orders.Place(c.Request().Context(), userID, model.JSONList(req.Products), amount)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "order": order})
}

// List returns the token's user's orders.
func (h *OrderHandler) List(c echo.Context) error {
	userID, ok := userIDFromToken(c)
	if !ok {
		return failWith(c, http.StatusUnauthorized, "invalid token", "UNAUTHORIZED")
	}

	orders, err := h.orders.ListForUser(c.Request().Context(), userID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orders": orders})
}

// userIDFromToken reads the user claim the JWT middleware validated.
func userIDFromToken(c echo.Context) (uint, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["user"].(float64)
	if !ok {
		return 0, false
	}
	return uint(id), true
}
