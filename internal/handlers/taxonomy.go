package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/models"
)

// TaxonomyHandler serves the category and brand lookup tables.
type TaxonomyHandler struct {
	DB *gorm.DB
}

type taxonomyRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *TaxonomyHandler) GetCategories(c echo.Context) error {
	var categories []models.Category
	if err := h.DB.Order("id ASC").Find(&categories).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *TaxonomyHandler) CreateCategory(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	category := models.Category{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&category).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, category)
}

func (h *TaxonomyHandler) DeleteCategory(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.DB.Delete(&models.Category{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TaxonomyHandler) GetBrands(c echo.Context) error {
	var brands []models.Brand
	if err := h.DB.Order("id ASC").Find(&brands).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, brands)
}

func (h *TaxonomyHandler) CreateBrand(c echo.Context) error {
	var req taxonomyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	brand := models.Brand{Name: req.Name, Description: req.Description}
	if err := h.DB.Create(&brand).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, brand)
}

func (h *TaxonomyHandler) DeleteBrand(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.DB.Delete(&models.Brand{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
