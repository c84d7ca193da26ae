package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// テーブルのカート明細を一覧取得
func (r *CartGormRepository) ListByTableID(ctx context.Context, tableID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// 行ロック付きで取得。トランザクション内からだけ呼ぶこと。
// 同じテーブルの確定処理はこのロックで直列になる。
func (r *CartGormRepository) ListByTableForUpdate(ctx context.Context, tableID int64) ([]model.CartLine, error) {
	var lines []model.CartLine

	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("table_id = ?", tableID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.CartLine{}, err
	}

	return lines, nil
}

// 同一(table, menu)は数量加算
func (r *CartGormRepository) Upsert(ctx context.Context, tableID int64, menuID int64, addQty int64) error {

	if addQty <= 0 {
		return errors.New("invalid quantity")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line model.CartLine

		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("table_id = ? AND menu_id = ?", tableID, menuID).
			First(&line).Error

		if err == nil {
			// 既存ありだったら数量を増やしてadded_atも更新
			res := tx.Model(&model.CartLine{}).
				Where("id = ?", line.ID).
				Updates(map[string]interface{}{
					"quantity": line.Quantity + addQty,
					"added_at": time.Now(),
				})

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
			return nil
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		//無い場合は新規作成
		newLine := model.CartLine{
			TableID:  tableID,
			MenuID:   menuID,
			Quantity: addQty,
			AddedAt:  time.Now(),
		}

		if err := tx.Create(&newLine).Error; err != nil {
			return err
		}

		return nil
	})
}

// 明細の数量を更新（added_atも更新する）
func (r *CartGormRepository) UpdateQuantity(ctx context.Context, tableID int64, menuID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartLine{}).
		Where("table_id = ? AND menu_id = ?", tableID, menuID).
		Updates(map[string]interface{}{
			"quantity": qty,
			"added_at": time.Now(),
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 明細を削除
func (r *CartGormRepository) Delete(ctx context.Context, tableID int64, menuID int64) error {
	res := r.db.WithContext(ctx).
		Where("table_id = ? AND menu_id = ?", tableID, menuID).
		Delete(&model.CartLine{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// テーブルの明細を全削除（注文確定の最終ステップ）
func (r *CartGormRepository) DeleteByTableID(ctx context.Context, tableID int64) error {
	return r.db.WithContext(ctx).
		Where("table_id = ?", tableID).
		Delete(&model.CartLine{}).Error
}
