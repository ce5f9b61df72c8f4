package services

import (
	"testing"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func CreateMockOrder(id uint64, total string, pagado int, abonado string) *domain.Order {
	return &domain.Order{
		ID:      id,
		Persona: TestPersona,
		Nombre:  domain.DefaultShirtName,
		TallaID: TestSizeID,
		Total:   decimal.RequireFromString(total),
		Pagado:  pagado,
		Abonado: decimal.RequireFromString(abonado),
	}
}

func CreateMockStyle(id uint64, estilo int, name, price, image string) domain.Style {
	return domain.Style{
		ID:     id,
		Estilo: estilo,
		Nombre: name,
		Imagen: image,
		Precio: decimal.RequireFromString(price),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func strPtr(s string) *string { return &s }

const (
	TestPersona = "Juan"
	TestSizeID  = uint64(1)
	TestOrderID = uint64(1)
)
