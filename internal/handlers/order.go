package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/customer"
	"github.com/shopforge/shopforge/internal/models"
)

// OrderHandler exposes a customer's own orders. Orders are immutable
// snapshots: there is no update path.
type OrderHandler struct {
	DB *gorm.DB
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	cust, err := customer.Resolve(c.Request().Context(), h.DB, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var orders []models.Order
	if err := h.DB.Preload("Items").
		Where("customer_id = ?", cust.ID).
		Order("id DESC").
		Find(&orders).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid, err := userID(c)
	if err != nil {
		return err
	}
	cust, err := customer.Resolve(c.Request().Context(), h.DB, uid)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var order models.Order
	if err := h.DB.Preload("Items").
		Where("id = ? AND customer_id = ?", id, cust.ID).
		First(&order).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "order not found")
	}

	var shipping []models.ShippingAddress
	if err := h.DB.Where("order_id = ?", order.ID).Find(&shipping).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"order":    order,
		"shipping": shipping,
	})
}
