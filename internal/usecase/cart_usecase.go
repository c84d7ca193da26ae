package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// CartUsecase は /api/cart の業務ロジックです。
// カートは(table_id, menu_id)単位の明細行として持つ。
type CartUsecase struct {
	cartRepo repo.CartRepository
	menuRepo repo.MenuRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	menuRepo repo.MenuRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo: cartRepo,
		menuRepo: menuRepo,
	}
}

// price はメニューの現在価格を返す（カートは価格を持たない）。
type CartLineResponse struct {
	MenuID     int64           `json:"menu_id"`
	ItemName   string          `json:"item_name"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	AddedAt    time.Time       `json:"added_at"`
}

type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

type AddCartInput struct {
	TableID  int64
	MenuID   int64
	Quantity int64
}

type UpdateCartInput struct {
	TableID  int64
	MenuID   int64
	Quantity int64
}

// GetCart はテーブルのカートを返す（空なら空のまま返す）。
func (u *CartUsecase) GetCart(ctx context.Context, tableID int64) (CartResponse, error) {
	if tableID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid table_id")
	}

	return u.buildCartResponse(ctx, tableID)
}

// AddLine はカートに追加（同一メニューは数量加算）。
func (u *CartUsecase) AddLine(ctx context.Context, in AddCartInput) (CartResponse, error) {
	if in.TableID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid table_id")
	}
	if in.MenuID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid menu_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// メニューの存在チェック
	_, err := u.menuRepo.FindByID(ctx, in.MenuID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "menu item not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Upsert(ctx, in.TableID, in.MenuID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, in.TableID)
}

// UpdateQuantity は数量変更。1未満は行ごと削除（0個の明細は残さない）。
func (u *CartUsecase) UpdateQuantity(ctx context.Context, in UpdateCartInput) (CartResponse, error) {
	if in.TableID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid table_id")
	}
	if in.MenuID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid menu_id")
	}

	if in.Quantity < 1 {
		err := u.cartRepo.Delete(ctx, in.TableID, in.MenuID)
		//既に無ければ成功扱い
		if err != nil && err != repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, in.TableID)
	}

	if err := u.cartRepo.UpdateQuantity(ctx, in.TableID, in.MenuID, in.Quantity); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, in.TableID)
}

// RemoveLine は明細削除。
func (u *CartUsecase) RemoveLine(ctx context.Context, tableID int64, menuID int64) (CartResponse, error) {
	if tableID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid table_id")
	}
	if menuID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid menu_id")
	}

	if err := u.cartRepo.Delete(ctx, tableID, menuID); err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, tableID)
}

// テーブルの明細をメニューと突き合わせてCartResponseを作る。
func (u *CartUsecase) buildCartResponse(ctx context.Context, tableID int64) (CartResponse, error) {
	lines, err := u.cartRepo.ListByTableID(ctx, tableID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartLineResponse, 0, len(lines))
	total := decimal.Zero

	for _, line := range lines {
		m, err := u.menuRepo.FindByID(ctx, line.MenuID)
		//menuから消えた明細は表示しない
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lineTotal := m.Price.Mul(decimal.NewFromInt(line.Quantity))

		respItems = append(respItems, CartLineResponse{
			MenuID:     line.MenuID,
			ItemName:   m.Name,
			Price:      m.Price,
			Quantity:   line.Quantity,
			TotalPrice: lineTotal,
			AddedAt:    line.AddedAt,
		})

		total = total.Add(lineTotal)
	}

	return CartResponse{Items: respItems, Total: total}, nil
}
