package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultShirtName = "Sin nombre"

const (
	Unpaid = 0
	Paid   = 1
)

type Order struct {
	ID        uint64          `json:"id" gorm:"primaryKey;autoIncrement"`
	Persona   string          `json:"persona" gorm:"not null"`
	Nombre    string          `json:"nombre" gorm:"not null"`
	TallaID   uint64          `json:"tallaId" gorm:"column:talla_id;not null;index"`
	Talla     *Size           `json:"talla,omitempty" gorm:"foreignKey:TallaID"`
	Total     decimal.Decimal `json:"total" gorm:"type:decimal(10,2);not null"`
	Pagado    int             `json:"pagado" gorm:"not null;default:0"`
	Abonado   decimal.Decimal `json:"abonado" gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	Items     []OrderItem     `json:"items,omitempty" gorm:"foreignKey:PedidoID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "pedidos" }

func (o *Order) IsPaid() bool { return o.Pagado == Paid }

// Balance is what is still owed. It goes negative when the customer overpaid.
func (o *Order) Balance() decimal.Decimal { return o.Total.Sub(o.Abonado) }

// StyleIDs lists the styles currently linked to the order.
func (o *Order) StyleIDs() []uint64 {
	ids := make([]uint64, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.EstiloID)
	}
	return ids
}

type OrderItem struct {
	ID       uint64 `json:"id" gorm:"primaryKey;autoIncrement"`
	PedidoID uint64 `json:"pedidoId" gorm:"column:pedido_id;not null;index"`
	EstiloID uint64 `json:"estiloId" gorm:"column:estilo_id;not null;index"`
	Estilo   *Style `json:"estilo,omitempty" gorm:"foreignKey:EstiloID;constraint:OnDelete:CASCADE"`
}

func (OrderItem) TableName() string { return "pedido_items" }

// PaidFlag derives pagado from the amount paid so far.
func PaidFlag(abonado, total decimal.Decimal) int {
	if abonado.GreaterThanOrEqual(total) {
		return Paid
	}
	return Unpaid
}
