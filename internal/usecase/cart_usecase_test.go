package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartUsecase_AddLine_InvalidQuantity(t *testing.T) {
	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)
	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.AddLine(context.Background(), usecase.AddCartInput{TableID: 1, MenuID: 1, Quantity: 0})
	assertErrContains(t, err, "invalid quantity")

	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddLine_MenuNotFound(t *testing.T) {
	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	menuRepo.On("FindByID", mock.Anything, int64(99)).Return(model.MenuItem{}, repo.ErrNotFound)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.AddLine(context.Background(), usecase.AddCartInput{TableID: 1, MenuID: 99, Quantity: 1})
	assertErrContains(t, err, "menu item not found")

	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartUsecase_AddLine_Success(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	item := model.MenuItem{ID: 1, Name: "Biryani", Price: decimal.NewFromInt(120)}
	menuRepo.On("FindByID", mock.Anything, int64(1)).Return(item, nil)

	cartRepo.On("Upsert", mock.Anything, int64(7), int64(1), int64(2)).Return(nil)
	cartRepo.On("ListByTableID", mock.Anything, int64(7)).Return([]model.CartLine{
		{ID: 1, TableID: 7, MenuID: 1, Quantity: 2, AddedAt: time.Now()},
	}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.AddLine(ctx, usecase.AddCartInput{TableID: 7, MenuID: 1, Quantity: 2})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(240)), "total=%s", out.Total)

	cartRepo.AssertExpectations(t)
}

// 数量0は行削除になり、その後のカートに出てこない
func TestCartUsecase_UpdateQuantity_BelowOne_DeletesLine(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("Delete", mock.Anything, int64(1), int64(1)).Return(nil)
	cartRepo.On("ListByTableID", mock.Anything, int64(1)).Return([]model.CartLine{}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.UpdateQuantity(ctx, usecase.UpdateCartInput{TableID: 1, MenuID: 1, Quantity: 0})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(out.Items))

	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	cartRepo.AssertExpectations(t)
}

// 既に無い行への数量0はそのまま成功
func TestCartUsecase_UpdateQuantity_BelowOne_AlreadyGone(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("Delete", mock.Anything, int64(1), int64(2)).Return(repo.ErrNotFound)
	cartRepo.On("ListByTableID", mock.Anything, int64(1)).Return([]model.CartLine{}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.UpdateQuantity(ctx, usecase.UpdateCartInput{TableID: 1, MenuID: 2, Quantity: -1})
	assert.NoError(t, err)
}

func TestCartUsecase_UpdateQuantity_Success(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("UpdateQuantity", mock.Anything, int64(1), int64(1), int64(3)).Return(nil)
	cartRepo.On("ListByTableID", mock.Anything, int64(1)).Return([]model.CartLine{
		{ID: 1, TableID: 1, MenuID: 1, Quantity: 3},
	}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(1)).Return(model.MenuItem{
		ID: 1, Name: "Chai", Price: decimal.NewFromInt(20),
	}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.UpdateQuantity(ctx, usecase.UpdateCartInput{TableID: 1, MenuID: 1, Quantity: 3})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Items[0].Quantity)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(60)))
}

func TestCartUsecase_UpdateQuantity_LineNotFound(t *testing.T) {
	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("UpdateQuantity", mock.Anything, int64(1), int64(5), int64(2)).Return(repo.ErrNotFound)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.UpdateQuantity(context.Background(), usecase.UpdateCartInput{TableID: 1, MenuID: 5, Quantity: 2})
	assertErrContains(t, err, "not found")
}

func TestCartUsecase_RemoveLine_NotFound(t *testing.T) {
	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("Delete", mock.Anything, int64(1), int64(9)).Return(repo.ErrNotFound)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.RemoveLine(context.Background(), 1, 9)
	assertErrContains(t, err, "not found")
}

// 2明細のカートの合計計算（100×2 + 50×1 = 250）
func TestCartUsecase_GetCart_Total(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("ListByTableID", mock.Anything, int64(3)).Return([]model.CartLine{
		{ID: 1, TableID: 3, MenuID: 1, Quantity: 2},
		{ID: 2, TableID: 3, MenuID: 2, Quantity: 1},
	}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(1)).Return(model.MenuItem{
		ID: 1, Name: "Thali", Price: decimal.NewFromInt(100),
	}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(2)).Return(model.MenuItem{
		ID: 2, Name: "Lassi", Price: decimal.NewFromInt(50),
	}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.GetCart(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(out.Items))
	assert.True(t, out.Total.Equal(decimal.NewFromInt(250)), "total=%s", out.Total)
	assert.True(t, out.Items[0].TotalPrice.Equal(decimal.NewFromInt(200)))
}

// menuから消えた明細だけ落として残りは返す
func TestCartUsecase_GetCart_SkipsLineMissingFromMenu(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("ListByTableID", mock.Anything, int64(3)).Return([]model.CartLine{
		{ID: 1, TableID: 3, MenuID: 1, Quantity: 2},
		{ID: 2, TableID: 3, MenuID: 2, Quantity: 1},
	}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(1)).Return(model.MenuItem{}, repo.ErrNotFound)
	menuRepo.On("FindByID", mock.Anything, int64(2)).Return(model.MenuItem{
		ID: 2, Name: "Lassi", Price: decimal.NewFromInt(50),
	}, nil)

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	out, err := uc.GetCart(ctx, 3)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(out.Items))
	assert.Equal(t, int64(2), out.Items[0].MenuID)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(50)), "total=%s", out.Total)
}

// NotFound以外のDBエラーは部分的なカートにせず500
func TestCartUsecase_GetCart_MenuLookupError(t *testing.T) {
	cartRepo := new(CartRepoMock)
	menuRepo := new(MenuRepoMock)

	cartRepo.On("ListByTableID", mock.Anything, int64(3)).Return([]model.CartLine{
		{ID: 1, TableID: 3, MenuID: 1, Quantity: 2},
	}, nil)
	menuRepo.On("FindByID", mock.Anything, int64(1)).Return(model.MenuItem{}, errors.New("connection reset"))

	uc := usecase.NewCartUsecase(cartRepo, menuRepo)

	_, err := uc.GetCart(context.Background(), 3)
	assertErrContains(t, err, "db error")
}
