package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/cart"
	"github.com/shopforge/shopforge/internal/customer"
	"github.com/shopforge/shopforge/internal/logging"
	"github.com/shopforge/shopforge/internal/models"
	"github.com/shopforge/shopforge/internal/mykafka"
)

type CartHandler struct {
	DB       *gorm.DB
	Svc      *cart.Service
	Producer *mykafka.Producer
}

// resolveCustomer threads the authenticated identity into an explicit
// customer argument for the cart service.
func (h *CartHandler) resolveCustomer(c echo.Context) (*models.Customer, error) {
	uid, err := userID(c)
	if err != nil {
		return nil, err
	}
	cust, err := customer.Resolve(c.Request().Context(), h.DB, uid)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return cust, nil
}

func (h *CartHandler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}

	req := cart.AddRequest{Quantity: 1}
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	snap, err := h.Svc.AddToCart(ctx, cust.ID, req)
	if err != nil {
		l.Warn("add_to_cart_error", "error", err)
		return cartError(err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(cust.ID), map[string]any{
		"type":       "cart_item_added",
		"customerID": cust.ID,
		"productID":  req.ProductID,
		"variantID":  req.VariantID,
		"quantity":   req.Quantity,
	})

	l.Info("item added to cart", "customer_id", cust.ID, "product_id", req.ProductID)
	return c.JSON(http.StatusOK, snap)
}

func (h *CartHandler) GetCart(c echo.Context) error {
	ctx := c.Request().Context()

	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}

	snap, err := h.Svc.ViewCart(ctx, cust.ID)
	if err != nil {
		return cartError(err)
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *CartHandler) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	snap, removed, err := h.Svc.UpdateItem(ctx, cust.ID, itemID, req.Quantity)
	if err != nil {
		l.Warn("update_cart_item_error", "error", err)
		return cartError(err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(cust.ID), map[string]any{
		"type":       "cart_item_updated",
		"customerID": cust.ID,
		"itemID":     itemID,
		"quantity":   req.Quantity,
		"removed":    removed,
	})

	if removed {
		return c.JSON(http.StatusOK, map[string]any{"message": "item removed", "cart": snap})
	}
	return c.JSON(http.StatusOK, snap)
}

func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}
	itemID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	snap, err := h.Svc.RemoveItem(ctx, cust.ID, itemID)
	if err != nil {
		l.Warn("remove_from_cart_error", "error", err)
		return cartError(err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(cust.ID), map[string]any{
		"type":       "cart_item_removed",
		"customerID": cust.ID,
		"itemID":     itemID,
	})

	return c.JSON(http.StatusOK, snap)
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()

	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Clear(ctx, cust.ID); err != nil {
		return cartError(err)
	}

	publish(c, h.Producer, "cart_events", fmt.Sprint(cust.ID), map[string]any{
		"type":       "cart_cleared",
		"customerID": cust.ID,
	})

	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}

func (h *CartHandler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}

	var req struct {
		Shipping *cart.ShippingInfo `json:"shipping"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	order, err := h.Svc.Checkout(ctx, cust.ID, req.Shipping)
	if err != nil {
		l.Warn("checkout_error", "customer_id", cust.ID, "error", err)
		return cartError(err)
	}

	publish(c, h.Producer, "order_events", fmt.Sprint(cust.ID), map[string]any{
		"type":       "order_created",
		"customerID": cust.ID,
		"orderID":    order.ID,
		"total":      order.TotalAmount,
	})

	l.Info("order created", "customer_id", cust.ID, "order_id", order.ID)
	return c.JSON(http.StatusCreated, map[string]any{
		"message":  "Order created",
		"order_id": order.ID,
	})
}
