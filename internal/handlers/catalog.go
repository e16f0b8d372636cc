package handlers

import (
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/logging"
	"github.com/shopforge/shopforge/internal/models"
	"github.com/shopforge/shopforge/internal/mykafka"
	"github.com/shopforge/shopforge/internal/service/search"
	"github.com/shopforge/shopforge/internal/util"
)

type ProductHandler struct {
	DB       *gorm.DB
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

type productRequest struct {
	Name          string              `json:"name"`
	Description   string              `json:"description"`
	CategoryID    *uint               `json:"category_id"`
	BrandID       *uint               `json:"brand_id"`
	Price         decimal.Decimal     `json:"price"`
	DiscountPrice decimal.NullDecimal `json:"discount_price"`
	Image         string              `json:"image"`
	Stock         uint                `json:"stock"`
	IsAvailable   *bool               `json:"is_available"`
}

func (h *ProductHandler) index(c echo.Context, p *models.Product) {
	if h.ES == nil {
		return
	}
	if err := search.IndexProduct(c.Request().Context(), h.ES, h.Index, p); err != nil {
		logging.FromContext(c.Request().Context()).Error("es index error", "product_id", p.ID, "error", err)
	}
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var product models.Product
	if err := h.DB.Preload("Variants").First(&product, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) GetProducts(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	var items []models.Product
	if err := h.DB.Preload("Variants").Order("id ASC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": items,
		"meta": map[string]any{
			"page":        page,
			"size":        limit,
			"total":       total,
			"total_pages": (total + int64(limit) - 1) / int64(limit),
			"has_prev":    page > 1,
			"has_next":    int64(offset+limit) < total,
		},
	})
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	prod := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		BrandID:       req.BrandID,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Image:         req.Image,
		Stock:         req.Stock,
		IsAvailable:   true,
	}
	if req.IsAvailable != nil {
		prod.IsAvailable = *req.IsAvailable
	}
	if err := h.DB.Create(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.index(c, &prod)
	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusCreated, prod)
}

func (h *ProductHandler) PatchProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var prod models.Product
	if err := h.DB.First(&prod, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	prod.Name = req.Name
	prod.Description = req.Description
	prod.CategoryID = req.CategoryID
	prod.BrandID = req.BrandID
	prod.Price = req.Price
	prod.DiscountPrice = req.DiscountPrice
	prod.Image = req.Image
	prod.Stock = req.Stock
	if req.IsAvailable != nil {
		prod.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Save(&prod).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.index(c, &prod)
	publish(c, h.Producer, "product_events", fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})

	return c.JSON(http.StatusOK, prod)
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.DB.Delete(&models.Product{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if h.ES != nil {
		if err := search.DeleteProduct(c.Request().Context(), h.ES, h.Index, id); err != nil {
			logging.FromContext(c.Request().Context()).Error("es delete error", "product_id", id, "error", err)
		}
	}
	publish(c, h.Producer, "product_events", fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) CreateVariant(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req struct {
		VariantType     string          `json:"variant_type"`
		VariantValue    string          `json:"variant_value"`
		AdditionalPrice decimal.Decimal `json:"additional_price"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	var product models.Product
	if err := h.DB.First(&product, productID).Error; err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "product not found")
	}

	variant := models.ProductVariant{
		ProductID:       product.ID,
		VariantType:     req.VariantType,
		VariantValue:    req.VariantValue,
		AdditionalPrice: req.AdditionalPrice,
	}
	if err := h.DB.Create(&variant).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, variant)
}

func (h *ProductHandler) DeleteVariant(c echo.Context) error {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	variantID, err := parseIDParam(c, "variant_id")
	if err != nil {
		return err
	}

	res := h.DB.Where("id = ? AND product_id = ?", variantID, productID).Delete(&models.ProductVariant{})
	if res.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, res.Error.Error())
	}
	if res.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "variant not found")
	}
	return c.NoContent(http.StatusNoContent)
}
