package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one product line in a user's cart. Name, price and image are
// denormalized from the catalog at the time the item was added.
type CartItem struct {
	ID          string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      string          `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_user_product" json:"userId"`
	ProductID   string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_product" json:"productId"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"productName"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	ImageURL    string          `gorm:"column:image_url;type:text" json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

func (c CartItem) LineTotal() decimal.Decimal {
	return c.Price.Mul(decimal.NewFromInt(int64(c.Quantity)))
}
