package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type MenuGormRepository struct {
	db *gorm.DB
}

// DI
func NewMenuGormRepository(db *gorm.DB) *MenuGormRepository {
	return &MenuGormRepository{db: db}
}

// メニュー全件を取得
func (r *MenuGormRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem

	if err := r.db.WithContext(ctx).
		Order("menu_id asc").
		Find(&items).Error; err != nil {
		return []model.MenuItem{}, err
	}

	return items, nil
}

// IDでメニュー項目を取得
func (r *MenuGormRepository) FindByID(ctx context.Context, menuID int64) (model.MenuItem, error) {
	var item model.MenuItem

	err := r.db.WithContext(ctx).
		Where("menu_id = ?", menuID).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.MenuItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}
