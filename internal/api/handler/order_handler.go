package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/oakmart/storefront-api/internal/api/middleware"
	"github.com/oakmart/storefront-api/internal/core/ports"
)

// OrderHandler handles the order ledger endpoints.
type OrderHandler struct {
	orderService ports.OrderService
}

func NewOrderHandler(orderService ports.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns the caller's orders, or every order for an admin.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Order
// @Failure      401  {object}  errorResponse
// @Router       /api/orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	orders, err := h.orderService.List(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Create records an order against the caller's identity.
//
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order items and total"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	var req createOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	items := make([]ports.OrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, ports.OrderItemInput{
			ProductRef:   it.ProductRef,
			Quantity:     it.Quantity,
			PriceAtOrder: it.PriceAtOrder,
		})
	}

	order, err := h.orderService.Create(c.Request().Context(), principal, ports.CreateOrderInput{
		Items: items,
		Total: req.Total,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}
