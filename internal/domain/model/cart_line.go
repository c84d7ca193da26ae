package model

import "time"

// テーブルのカート明細
// (table_id, menu_id) で一意。数量が1未満になったら行ごと削除する。
type CartLine struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TableID  int64     `gorm:"not null;index;uniqueIndex:uq_cart_table_menu" json:"table_id"`
	MenuID   int64     `gorm:"not null;uniqueIndex:uq_cart_table_menu" json:"menu_id"`
	Quantity int64     `gorm:"not null" json:"quantity"`
	AddedAt  time.Time `gorm:"not null" json:"added_at"`
}

func (CartLine) TableName() string {
	return "cart"
}
