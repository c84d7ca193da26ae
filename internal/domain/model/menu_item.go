package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// メニュー項目（カタログ）
// 管理プロセス側で作成・更新される。注文フローからは読み取り専用。
type MenuItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement;column:menu_id" json:"menu_id"`
	Name        string          `gorm:"type:varchar(255);not null;column:item_name" json:"item_name"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (MenuItem) TableName() string {
	return "menu"
}
