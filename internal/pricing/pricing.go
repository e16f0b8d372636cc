package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/shopforge/shopforge/internal/models"
)

// UnitPrice computes the price a cart line is frozen at: the product's
// effective price plus the variant surcharge, rounded half-up to two
// decimal places at the final step only. A nil variant contributes a
// surcharge of exactly zero.
func UnitPrice(product *models.Product, variant *models.ProductVariant) decimal.Decimal {
	base := product.EffectivePrice()
	surcharge := decimal.Zero
	if variant != nil {
		surcharge = variant.AdditionalPrice
	}
	return base.Add(surcharge).Round(2)
}
