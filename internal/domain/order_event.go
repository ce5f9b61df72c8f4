package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated        = "order.created"
	EventOrderPaymentUpdated = "order.payment_updated"
	EventOrderDeleted        = "order.deleted"
)

type OrderCreatedEvent struct {
	OrderID   uint64          `json:"orderId"`
	Persona   string          `json:"persona"`
	TallaID   uint64          `json:"tallaId"`
	EstiloIDs []uint64        `json:"estiloIds"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

type OrderPaymentEvent struct {
	OrderID uint64          `json:"orderId"`
	Pagado  int             `json:"pagado"`
	Abonado decimal.Decimal `json:"abonado"`
	Total   decimal.Decimal `json:"total"`
}

type OrderDeletedEvent struct {
	OrderID uint64 `json:"orderId"`
}
