package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (int64, error)
	//テーブルの注文履歴（新しい順）
	ListByTableID(ctx context.Context, tableID int64) ([]model.Order, error)
}
