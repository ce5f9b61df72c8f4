package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrUnknownStyles = errors.New("unknown style ids")
	ErrSizeInUse     = errors.New("size referenced by orders")
)

type SizeRepository interface {
	List(ctx context.Context) ([]domain.Size, error)
	FindByID(ctx context.Context, id uint64) (*domain.Size, error)
	Create(ctx context.Context, size *domain.Size) error
	Update(ctx context.Context, size *domain.Size) error
	Delete(ctx context.Context, id uint64) error
}

type StyleRepository interface {
	List(ctx context.Context) ([]domain.Style, error)
	FindByID(ctx context.Context, id uint64) (*domain.Style, error)
	FindByIDs(ctx context.Context, ids []uint64) ([]domain.Style, error)
	Create(ctx context.Context, style *domain.Style) error
	Update(ctx context.Context, style *domain.Style) error
	// Delete removes the style and every order item pointing at it.
	Delete(ctx context.Context, id uint64) error
}

// OrderRepository methods that touch more than one row run in a single
// transaction.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order, styleIDs []uint64) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	TogglePaid(ctx context.Context, id uint64) (*domain.Order, error)
	RecordPayment(ctx context.Context, id uint64, amount decimal.Decimal) (*domain.Order, error)
	ReplaceStyles(ctx context.Context, id uint64, styleIDs []uint64) (*domain.Order, error)
	UpdateCreatedAt(ctx context.Context, id uint64, at time.Time) error
	Delete(ctx context.Context, id uint64) error
}
