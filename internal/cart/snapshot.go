package cart

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/models"
)

// Snapshot is the cart as returned to clients: every line with its
// product summary and frozen unit price, plus the derived total. The
// total is always computed from the lines, never stored.
type Snapshot struct {
	ID    uint            `json:"id"`
	Items []ItemView      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type ItemView struct {
	ID        uint            `json:"id"`
	Product   ProductView     `json:"product"`
	Variant   *VariantView    `json:"variant"`
	Quantity  uint            `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type ProductView struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type VariantView struct {
	ID              uint            `json:"id"`
	VariantType     string          `json:"variant_type"`
	VariantValue    string          `json:"variant_value"`
	AdditionalPrice decimal.Decimal `json:"additional_price"`
}

func emptySnapshot() *Snapshot {
	return &Snapshot{Items: []ItemView{}, Total: decimal.Zero.Round(2)}
}

func (s *Service) snapshot(tx *gorm.DB, cartID uint) (*Snapshot, error) {
	var items []models.CartItem
	if err := tx.
		Preload("Product").
		Preload("Variant").
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, err
	}

	snap := &Snapshot{ID: cartID, Items: make([]ItemView, 0, len(items)), Total: decimal.Zero}
	for _, it := range items {
		view := ItemView{
			ID:        it.ID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		}
		if it.Product != nil {
			view.Product = ProductView{
				ID:    it.Product.ID,
				Name:  it.Product.Name,
				Price: it.Product.Price,
				Image: it.Product.Image,
			}
		}
		if it.VariantID != 0 && it.Variant != nil {
			view.Variant = &VariantView{
				ID:              it.Variant.ID,
				VariantType:     it.Variant.VariantType,
				VariantValue:    it.Variant.VariantValue,
				AdditionalPrice: it.Variant.AdditionalPrice,
			}
		}
		snap.Items = append(snap.Items, view)
		snap.Total = snap.Total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return snap, nil
}
