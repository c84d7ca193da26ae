package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// 支払い。注文と1対1で、同じトランザクションで作成する。
// payment_methodは自由入力の文字列（固定の列挙にはしない）。
type Payment struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64           `gorm:"not null;uniqueIndex" json:"order_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'PENDING'" json:"payment_status"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}
