package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"

	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"unique;not null"          json:"username"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"          json:"id"`
	Token     string `gorm:"unique;not null"     json:"token"`
	UserID    uint   `gorm:"index;not null"      json:"user_id"`
	Role      string `gorm:"not null"            json:"role"`
	ExpiresAt int64  `gorm:"not null"            json:"expires_at"`
	Revoked   bool   `gorm:"default:false"       json:"revoked"`
}

type Customer struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  uint   `gorm:"uniqueIndex;not null"     json:"user_id"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Category struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `json:"description"`
}

type Brand struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"not null"                 json:"name"`
	Description string `json:"description"`
}

type Product struct {
	ID            uint                `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name          string              `gorm:"not null"                    json:"name"`
	Description   string              `json:"description"`
	CategoryID    *uint               `gorm:"index"                       json:"category_id"`
	BrandID       *uint               `gorm:"index"                       json:"brand_id"`
	Price         decimal.Decimal     `gorm:"type:decimal(8,2);not null"  json:"price"`
	DiscountPrice decimal.NullDecimal `gorm:"type:decimal(8,2)"           json:"discount_price"`
	Image         string              `json:"image"`
	Stock         uint                `gorm:"default:0"                   json:"stock"`
	IsAvailable   bool                `gorm:"default:true"                json:"is_available"`
	CreatedAt     time.Time           `json:"created_at"`
	Variants      []ProductVariant    `gorm:"foreignKey:ProductID"        json:"variants,omitempty"`
}

// EffectivePrice is the price cart lines are built from: the discount
// price when one is set, the base price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice.Valid {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}

type ProductVariant struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"          json:"id"`
	ProductID       uint            `gorm:"index;not null"                    json:"product_id"`
	VariantType     string          `gorm:"not null"                          json:"variant_type"`
	VariantValue    string          `gorm:"not null"                          json:"variant_value"`
	AdditionalPrice decimal.Decimal `gorm:"type:decimal(6,2);default:0"       json:"additional_price"`
}

type Cart struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint       `gorm:"uniqueIndex;not null"     json:"customer_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	Items      []CartItem `gorm:"foreignKey:CartID"        json:"items,omitempty"`
}

// CartItem is one cart line. VariantID 0 means "no variant selected";
// keeping the column NOT NULL makes the composite unique index treat
// variantless lines as a single key instead of the NULL-is-always-
// distinct behavior of SQL unique constraints.
type CartItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"                                json:"id"`
	CartID    uint            `gorm:"uniqueIndex:idx_cart_product_variant;not null"           json:"cart_id"`
	ProductID uint            `gorm:"uniqueIndex:idx_cart_product_variant;not null"           json:"product_id"`
	VariantID uint            `gorm:"uniqueIndex:idx_cart_product_variant;not null;default:0" json:"variant_id"`
	Quantity  uint            `gorm:"not null;check:quantity>0"                               json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"                             json:"unit_price"`

	Product *Product        `gorm:"foreignKey:ProductID" json:"-"`
	Variant *ProductVariant `gorm:"foreignKey:VariantID" json:"-"`
}

type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"     json:"id"`
	CustomerID    uint            `gorm:"index;not null"               json:"customer_id"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(10,2);not null"  json:"total_amount"`
	PaymentStatus string          `gorm:"not null;default:unpaid"      json:"payment_status"`
	OrderStatus   string          `gorm:"not null;default:pending"     json:"order_status"`
	TransactionID string          `gorm:"size:36"                      json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID"           json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	ProductID uint            `gorm:"not null"                    json:"product_id"`
	VariantID uint            `gorm:"not null;default:0"          json:"variant_id"`
	Quantity  uint            `gorm:"not null"                    json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

type ShippingAddress struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID uint      `gorm:"index;not null"           json:"customer_id"`
	OrderID    uint      `gorm:"index;not null"           json:"order_id"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	ZipCode    string    `json:"zip_code"`
	Country    string    `json:"country"`
	CreatedAt  time.Time `json:"created_at"`
}

type Wishlist struct {
	ID         uint `gorm:"primaryKey;autoIncrement"                       json:"id"`
	CustomerID uint `gorm:"uniqueIndex:idx_customer_product;not null"      json:"customer_id"`
	ProductID  uint `gorm:"uniqueIndex:idx_customer_product;not null"      json:"product_id"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
