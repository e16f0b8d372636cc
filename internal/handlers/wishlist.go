package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/customer"
	"github.com/shopforge/shopforge/internal/models"
)

type WishlistHandler struct {
	DB *gorm.DB
}

func (h *WishlistHandler) resolveCustomer(c echo.Context) (*models.Customer, error) {
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

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}

	var entries []models.Wishlist
	if err := h.DB.Preload("Product").
		Where("customer_id = ?", cust.ID).
		Order("id ASC").
		Find(&entries).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}

	var req struct {
		ProductID uint `json:"product_id"`
	}
	if err := c.Bind(&req); err != nil || req.ProductID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	var product models.Product
	if err := h.DB.First(&product, req.ProductID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	entry := models.Wishlist{CustomerID: cust.ID, ProductID: req.ProductID}
	if err := h.DB.Where(entry).FirstOrCreate(&entry).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	cust, err := h.resolveCustomer(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	res := h.DB.Where("id = ? AND customer_id = ?", id, cust.ID).Delete(&models.Wishlist{})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "wishlist entry not found")
	}
	return c.NoContent(http.StatusNoContent)
}
