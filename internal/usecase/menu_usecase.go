package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// MenuUsecase は /api/menu の業務ロジックです。
type MenuUsecase struct {
	menuRepo repo.MenuRepository
}

func NewMenuUsecase(menuRepo repo.MenuRepository) *MenuUsecase {
	return &MenuUsecase{menuRepo: menuRepo}
}

type MenuItemResponse struct {
	MenuID      int64           `json:"menu_id"`
	ItemName    string          `json:"item_name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// ListMenu はメニュー全件を返す。
func (u *MenuUsecase) ListMenu(ctx context.Context) ([]MenuItemResponse, error) {
	items, err := u.menuRepo.List(ctx)
	if err != nil {
		return []MenuItemResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	resp := make([]MenuItemResponse, 0, len(items))
	for _, it := range items {
		resp = append(resp, toMenuItemResponse(it))
	}
	return resp, nil
}

func toMenuItemResponse(m model.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		MenuID:      m.ID,
		ItemName:    m.Name,
		Price:       m.Price,
		Description: m.Description,
	}
}
