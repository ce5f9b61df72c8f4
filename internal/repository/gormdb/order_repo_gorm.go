package gormdb

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/repository"
	"github.com/shopspring/decimal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

// Create inserts the order row and one item per style id. The order ID is
// populated on success.
func (r *orderRepo) Create(ctx context.Context, order *domain.Order, styleIDs []uint64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if order.ID == 0 {
			return errors.New("failed to assign order ID")
		}
		items, err := insertItems(tx, order.ID, styleIDs)
		if err != nil {
			return err
		}
		order.Items = items
		return nil
	})
	if err != nil {
		log.Printf("order save error: %v", err)
		return err
	}
	log.Printf("order saved with ID: %d (%d items)", order.ID, len(order.Items))
	return nil
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Talla").Preload("Items.Estilo").First(&o, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("order FindByID error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var out []domain.Order
	err := r.db.WithContext(ctx).Preload("Talla").Preload("Items.Estilo").
		Order("created_at DESC").Order("id DESC").Find(&out).Error
	if err != nil {
		log.Printf("order list error: %v", err)
		return nil, err
	}
	return out, nil
}

// TogglePaid flips pagado. Marking paid also sets abonado to the total;
// marking unpaid keeps whatever was recorded.
func (r *orderRepo) TogglePaid(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadOrder(tx, id, &o); err != nil {
			return err
		}
		next := domain.Paid
		if o.Pagado != domain.Unpaid {
			next = domain.Unpaid
		}
		updates := map[string]any{"pagado": next}
		if next == domain.Paid {
			updates["abonado"] = o.Total
			o.Abonado = o.Total
		}
		o.Pagado = next
		return tx.Model(&domain.Order{}).Where("id = ?", id).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// RecordPayment stores the amount paid so far as-is and derives pagado
// from it against the current total.
func (r *orderRepo) RecordPayment(ctx context.Context, id uint64, amount decimal.Decimal) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadOrder(tx, id, &o); err != nil {
			return err
		}
		o.Abonado = amount
		o.Pagado = domain.PaidFlag(amount, o.Total)
		return tx.Model(&domain.Order{}).Where("id = ?", id).
			Updates(map[string]any{"abonado": o.Abonado, "pagado": o.Pagado}).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ReplaceStyles swaps the order's items for styleIDs and rewrites the total
// from current prices. An empty set leaves the order with no items and a
// zero total.
func (r *orderRepo) ReplaceStyles(ctx context.Context, id uint64, styleIDs []uint64) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadOrder(tx, id, &o); err != nil {
			return err
		}
		styles, err := findStyles(tx, styleIDs)
		if err != nil {
			return err
		}
		if len(styles) != len(styleIDs) {
			return repository.ErrUnknownStyles
		}
		if err := tx.Where("pedido_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		items, err := insertItems(tx, id, styleIDs)
		if err != nil {
			return err
		}
		o.Items = items
		o.Total = domain.SumPrices(styles)
		return tx.Model(&domain.Order{}).Where("id = ?", id).Update("total", o.Total).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) UpdateCreatedAt(ctx context.Context, id uint64, at time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o domain.Order
		if err := loadOrder(tx, id, &o); err != nil {
			return err
		}
		return tx.Model(&domain.Order{}).Where("id = ?", id).Update("created_at", at).Error
	})
}

func (r *orderRepo) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pedido_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
}

func loadOrder(tx *gorm.DB, id uint64, o *domain.Order) error {
	if err := tx.First(o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repository.ErrNotFound
		}
		return err
	}
	return nil
}

func insertItems(tx *gorm.DB, orderID uint64, styleIDs []uint64) ([]domain.OrderItem, error) {
	items := make([]domain.OrderItem, 0, len(styleIDs))
	for _, sid := range styleIDs {
		items = append(items, domain.OrderItem{PedidoID: orderID, EstiloID: sid})
	}
	if len(items) == 0 {
		return items, nil
	}
	if err := tx.Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
