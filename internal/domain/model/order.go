package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPlaced OrderStatus = "PLACED"
)

// 注文。確定後は追記のみ（編集しない）。
// TotalAmountは確定時点の合計で、以後再計算しない。
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:order_id" json:"order_id"`
	TableID     int64           `gorm:"not null;index" json:"table_id"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null" json:"status"`
	OrderTime   time.Time       `gorm:"not null;autoCreateTime;column:order_time" json:"order_time"`
}

func (Order) TableName() string {
	return "orders"
}
