package repository

import (
	"context"

	"app/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment model.Payment) error
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)
}
