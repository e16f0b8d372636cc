package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shopforge/shopforge/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestUnitPriceBasePlusSurcharge(t *testing.T) {
	product := &models.Product{Price: dec("10.00")}
	variant := &models.ProductVariant{AdditionalPrice: dec("1.50")}

	got := UnitPrice(product, variant)
	require.True(t, got.Equal(dec("11.50")), "got %s", got)
}

func TestUnitPriceNoVariant(t *testing.T) {
	product := &models.Product{Price: dec("10.00")}

	got := UnitPrice(product, nil)
	require.True(t, got.Equal(dec("10.00")), "got %s", got)
}

func TestUnitPriceDiscountWins(t *testing.T) {
	product := &models.Product{
		Price:         dec("10.00"),
		DiscountPrice: decimal.NullDecimal{Decimal: dec("8.00"), Valid: true},
	}
	variant := &models.ProductVariant{AdditionalPrice: dec("1.50")}

	got := UnitPrice(product, variant)
	require.True(t, got.Equal(dec("9.50")), "got %s", got)
}

func TestUnitPriceRoundsHalfUp(t *testing.T) {
	product := &models.Product{Price: dec("10.005")}

	got := UnitPrice(product, nil)
	require.True(t, got.Equal(dec("10.01")), "got %s", got)

	product = &models.Product{Price: dec("10.004")}
	variant := &models.ProductVariant{AdditionalPrice: dec("0.001")}
	got = UnitPrice(product, variant)
	require.True(t, got.Equal(dec("10.01")), "rounding happens once at the end, got %s", got)
}

func TestUnitPriceDeterministic(t *testing.T) {
	product := &models.Product{Price: dec("3.33")}
	variant := &models.ProductVariant{AdditionalPrice: dec("0.67")}

	first := UnitPrice(product, variant)
	second := UnitPrice(product, variant)
	require.True(t, first.Equal(second))
	require.True(t, first.Equal(dec("4.00")))
}
