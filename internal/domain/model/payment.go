package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment is the record of one mock gateway charge against an order.
type Payment struct {
	ID              string          `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID         string          `gorm:"type:varchar(36);not null;index" json:"orderId"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method          PaymentMethod   `gorm:"type:varchar(20);not null" json:"method"`
	Status          PaymentStatus   `gorm:"type:varchar(20);not null" json:"status"`
	TransactionID   string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"transactionId"`
	GatewayResponse map[string]any  `gorm:"serializer:json;type:text" json:"gatewayResponse"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
