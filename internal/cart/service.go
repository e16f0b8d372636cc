package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shopforge/shopforge/internal/models"
	"github.com/shopforge/shopforge/internal/pricing"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
	ErrEmptyCart  = errors.New("cart is empty")
)

// Service owns all mutations of a customer's cart and the conversion of
// a cart into an order. Every operation runs in its own transaction; the
// customer is always an explicit parameter.
type Service struct {
	DB *gorm.DB
}

type AddRequest struct {
	ProductID uint `json:"product_id"`
	VariantID uint `json:"variant_id"`
	Quantity  uint `json:"quantity"`
}

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// AddToCart merges the (product, variant) line into the customer's cart,
// creating the cart on first use. The stored unit price is refreshed
// from the current product and variant state on every add, so a re-add
// corrects price drift while quantities accumulate.
func (s *Service) AddToCart(ctx context.Context, customerID uint, req AddRequest) (*Snapshot, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("product_id is required: %w", ErrValidation)
	}
	if req.Quantity == 0 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	var snap *Snapshot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("product %d: %w", req.ProductID, ErrNotFound)
			}
			return err
		}

		var variant *models.ProductVariant
		if req.VariantID != 0 {
			var v models.ProductVariant
			if err := tx.Where("id = ? AND product_id = ?", req.VariantID, req.ProductID).First(&v).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("variant %d of product %d: %w", req.VariantID, req.ProductID, ErrNotFound)
				}
				return err
			}
			variant = &v
		}

		unitPrice := pricing.UnitPrice(&product, variant)

		var cart models.Cart
		if err := tx.Where(models.Cart{CustomerID: customerID}).FirstOrCreate(&cart).Error; err != nil {
			return err
		}

		// Upsert on the (cart, product, variant) key: an in-place update
		// merges into an existing line, otherwise a fresh line is created.
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ? AND variant_id = ?", cart.ID, req.ProductID, req.VariantID).
			Updates(map[string]any{
				"quantity":   gorm.Expr("quantity + ?", req.Quantity),
				"unit_price": unitPrice,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item := models.CartItem{
				CartID:    cart.ID,
				ProductID: req.ProductID,
				VariantID: req.VariantID,
				Quantity:  req.Quantity,
				UnitPrice: unitPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		var err error
		snap, err = s.snapshot(tx, cart.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ViewCart never creates a cart; a customer without one gets the empty
// snapshot.
func (s *Service) ViewCart(ctx context.Context, customerID uint) (*Snapshot, error) {
	var cart models.Cart
	err := s.DB.WithContext(ctx).Where("customer_id = ?", customerID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return emptySnapshot(), nil
		}
		return nil, err
	}
	return s.snapshot(s.DB.WithContext(ctx), cart.ID)
}

// UpdateItem sets the quantity of a line the customer owns. A quantity
// of zero or less removes the line; that is the documented way to drop a
// line via update, not an error.
func (s *Service) UpdateItem(ctx context.Context, customerID, itemID uint, quantity int) (*Snapshot, bool, error) {
	var (
		snap    *Snapshot
		removed bool
	)
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedItem(tx, customerID, itemID)
		if err != nil {
			return err
		}

		if quantity <= 0 {
			if err := tx.Delete(item).Error; err != nil {
				return err
			}
			removed = true
		} else {
			if err := tx.Model(item).Update("quantity", quantity).Error; err != nil {
				return err
			}
		}

		snap, err = s.snapshot(tx, item.CartID)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	return snap, removed, nil
}

// RemoveItem deletes a single line the customer owns.
func (s *Service) RemoveItem(ctx context.Context, customerID, itemID uint) (*Snapshot, error) {
	var snap *Snapshot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := ownedItem(tx, customerID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(item).Error; err != nil {
			return err
		}
		snap, err = s.snapshot(tx, item.CartID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Clear drops every line of the customer's cart. A missing cart is a
// no-op, not an error.
func (s *Service) Clear(ctx context.Context, customerID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
}

// Checkout converts the cart into an order in a single transaction:
// total and line prices come from the frozen cart prices, never from the
// current product state. Any failure leaves the cart and the order
// tables exactly as they were.
func (s *Service) Checkout(ctx context.Context, customerID uint, shipping *ShippingInfo) (*models.Order, error) {
	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, customerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("customer %d: %w", customerID, ErrNotFound)
			}
			return err
		}

		var cart models.Cart
		if err := tx.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}

		order = models.Order{
			CustomerID:    customerID,
			TotalAmount:   total,
			PaymentStatus: models.PaymentStatusUnpaid,
			OrderStatus:   models.OrderStatusPending,
			TransactionID: uuid.NewString(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range items {
			oi := models.OrderItem{
				OrderID:   order.ID,
				ProductID: it.ProductID,
				VariantID: it.VariantID,
				Quantity:  it.Quantity,
				Price:     it.UnitPrice,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			order.Items = append(order.Items, oi)
		}

		if shipping != nil {
			addr := models.ShippingAddress{
				CustomerID: customerID,
				OrderID:    order.ID,
				Address:    shipping.Address,
				City:       shipping.City,
				ZipCode:    shipping.ZipCode,
				Country:    shipping.Country,
			}
			if err := tx.Create(&addr).Error; err != nil {
				return err
			}
		}

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ownedItem loads a cart line only if it belongs to a cart owned by the
// customer. A line owned by someone else is reported the same way as a
// missing one.
func ownedItem(tx *gorm.DB, customerID, itemID uint) (*models.CartItem, error) {
	var item models.CartItem
	err := tx.
		Joins("JOIN carts ON carts.id = cart_items.cart_id").
		Where("cart_items.id = ? AND carts.customer_id = ?", itemID, customerID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %d: %w", itemID, ErrNotFound)
		}
		return nil, err
	}
	return &item, nil
}
