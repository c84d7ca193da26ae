package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	ListByTableID(ctx context.Context, tableID int64) ([]model.CartLine, error)

	//注文確定用。行ロック付きで読む（同一テーブルの確定を直列化する）
	ListByTableForUpdate(ctx context.Context, tableID int64) ([]model.CartLine, error)

	// 同一(table, menu)は数量加算
	Upsert(ctx context.Context, tableID int64, menuID int64, addQty int64) error
	UpdateQuantity(ctx context.Context, tableID int64, menuID int64, qty int64) error
	Delete(ctx context.Context, tableID int64, menuID int64) error
	DeleteByTableID(ctx context.Context, tableID int64) error
}
