package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// メニューの取得だけを約束。注文フローから書き込みはしない。
type MenuRepository interface {
	List(ctx context.Context) ([]model.MenuItem, error)
	FindByID(ctx context.Context, menuID int64) (model.MenuItem, error)
}
