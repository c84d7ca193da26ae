package repository_test

import (
	"context"
	"testing"
	"time"

	infraRepo "app/internal/infra/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func cartColumns() []string {
	return []string{"id", "table_id", "menu_id", "quantity", "added_at"}
}

// 確定処理用のSELECTはFOR UPDATEで行ロックを取ること
func TestCartGormRepository_ListByTableForUpdate_LocksRows(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "cart" WHERE table_id = (.+) ORDER BY id asc FOR UPDATE`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(int64(1), int64(5), int64(1), int64(2), time.Now()).
			AddRow(int64(2), int64(5), int64(3), int64(1), time.Now()))

	r := infraRepo.NewCartGormRepository(gdb)

	lines, err := r.ListByTableForUpdate(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(lines))
	assert.Equal(t, int64(1), lines[0].MenuID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 既存の(table, menu)行があれば数量は加算（3 + 2 = 5）
func TestCartGormRepository_Upsert_ExistingLine_AddsQuantity(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "cart" WHERE table_id = (.+) AND menu_id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(cartColumns()).
			AddRow(int64(10), int64(7), int64(2), int64(3), time.Now()))
	mock.ExpectExec(`UPDATE "cart" SET "added_at"=(.+),"quantity"=(.+) WHERE id = (.+)`).
		WithArgs(sqlmock.AnyArg(), int64(5), int64(10)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := infraRepo.NewCartGormRepository(gdb)

	err := r.Upsert(context.Background(), 7, 2, 2)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 行が無ければ新規作成
func TestCartGormRepository_Upsert_NewLine_Inserts(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "cart" WHERE table_id = (.+) AND menu_id = (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(cartColumns()))
	mock.ExpectQuery(`INSERT INTO "cart" (.+) RETURNING "id"`).
		WithArgs(int64(7), int64(2), int64(3), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectCommit()

	r := infraRepo.NewCartGormRepository(gdb)

	err := r.Upsert(context.Background(), 7, 2, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// 0以下の加算はSQLを発行せずエラー
func TestCartGormRepository_Upsert_InvalidQuantity(t *testing.T) {
	gdb, mock := newMockDB(t)

	r := infraRepo.NewCartGormRepository(gdb)

	err := r.Upsert(context.Background(), 7, 2, 0)
	assert.ErrorContains(t, err, "invalid quantity")
	assert.NoError(t, mock.ExpectationsWereMet())
}
