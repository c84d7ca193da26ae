package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// OrderUsecase は注文確定と注文履歴の業務ロジックです。
// 確定処理は read-compute-write を1トランザクションで行う。
type OrderUsecase struct {
	tx  repo.TransactionManager
	log zerolog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, log zerolog.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, log: log}
}

type PlaceOrderInput struct {
	TableID     int64
	PaymentMode string
}

type PlaceOrderOutput struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type OrderItemOutput struct {
	MenuID   int64           `json:"menu_id"`
	ItemName string          `json:"item_name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int64           `json:"quantity"`
}

type OrderOutput struct {
	OrderID       int64             `json:"order_id"`
	TableID       int64             `json:"table_id"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	Status        string            `json:"status"`
	OrderTime     time.Time         `json:"order_time"`
	PaymentMethod *string           `json:"payment_method"`
	PaymentStatus *string           `json:"payment_status"`
	Items         []OrderItemOutput `json:"items"`
}

// PlaceOrder はテーブルのカートを注文に変換する。
// カート読み取り→合計計算→注文/明細/支払い作成→カート削除まで全部1トランザクション。
// 途中で失敗したら全部rollbackされ、カートは元のまま残る。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if in.TableID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table_id")
	}
	mode := strings.TrimSpace(in.PaymentMode)
	if mode == "" {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_mode")
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//行ロック付きで読む。同じテーブルの確定が同時に走っても
		//後の方はここで待たされて、commit後には空のカートを見る。
		lines, err := r.CartLines().ListByTableForUpdate(ctx, in.TableID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		//合計は固定小数点で計算する（floatは使わない）
		total := decimal.Zero
		items := make([]model.OrderItem, 0, len(lines))

		for _, line := range lines {
			m, err := r.Menu().FindByID(ctx, line.MenuID)
			if err != nil {
				//メニューが消えていたら確定できない。rollbackに回す。
				return err
			}

			items = append(items, model.OrderItem{
				MenuID:            line.MenuID,
				ItemNameSnapshot:  m.Name,
				UnitPriceSnapshot: m.Price,
				Quantity:          line.Quantity,
			})

			total = total.Add(m.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}

		// 注文作成
		orderID, err := r.Orders().Create(ctx, model.Order{
			TableID:     in.TableID,
			TotalAmount: total,
			Status:      model.OrderStatusPlaced,
		})
		if err != nil {
			return err
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return err
		}

		//支払いは注文と1対1。statusはPENDINGのまま（ゲートウェイ連携はしない）。
		if err := r.Payments().Create(ctx, model.Payment{
			OrderID:       orderID,
			Amount:        total,
			PaymentMethod: mode,
			PaymentStatus: model.PaymentStatusPending,
		}); err != nil {
			return err
		}

		//カートを空にする（確定の最終ステップ）
		if err := r.CartLines().DeleteByTableID(ctx, in.TableID); err != nil {
			return err
		}

		out = PlaceOrderOutput{OrderID: orderID, TotalAmount: total}
		return nil
	})

	if err != nil {
		if _, ok := AsHTTPError(err); ok {
			return PlaceOrderOutput{}, err
		}
		//rollback済み。原因は運用向けログに残して、呼び出し側には汎用メッセージだけ返す。
		u.log.Error().Err(err).Int64("table_id", in.TableID).Msg("order placement rolled back")
		return PlaceOrderOutput{}, NewHTTPError(http.StatusInternalServerError, "failed to place order")
	}

	return out, nil
}

// ListOrders はテーブルの注文履歴を新しい順に返す（支払い情報付き）。
func (u *OrderUsecase) ListOrders(ctx context.Context, tableID int64) ([]OrderOutput, error) {
	if tableID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid table_id")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListByTableID(ctx, tableID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			out := toOrderOutput(o, items)

			//LEFT JOIN相当。支払いが無ければnullのまま。
			p, err := r.Payments().FindByOrderID(ctx, o.ID)
			if err == nil {
				method := p.PaymentMethod
				status := string(p.PaymentStatus)
				out.PaymentMethod = &method
				out.PaymentStatus = &status
			} else if err != repo.ErrNotFound {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			outs = append(outs, out)
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MenuID:   it.MenuID,
			ItemName: it.ItemNameSnapshot,
			Price:    it.UnitPriceSnapshot,
			Quantity: it.Quantity,
		})
	}

	return OrderOutput{
		OrderID:     o.ID,
		TableID:     o.TableID,
		TotalAmount: o.TotalAmount,
		Status:      string(o.Status),
		OrderTime:   o.OrderTime,
		Items:       outItems,
	}
}
