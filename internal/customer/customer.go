package customer

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/models"
)

// Resolve returns the Customer record for an authenticated user,
// creating it on first contact. The unique index on user_id makes
// concurrent first contacts collapse to one row.
func Resolve(ctx context.Context, db *gorm.DB, userID uint) (*models.Customer, error) {
	var cust models.Customer
	if err := db.WithContext(ctx).Where(models.Customer{UserID: userID}).FirstOrCreate(&cust).Error; err != nil {
		return nil, err
	}
	return &cust, nil
}
