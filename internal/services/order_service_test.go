package services

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/mocks"
	"github.com/Ricky06202/tshirt-stryd/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderMocks struct {
	orders   *mocks.MockOrderRepository
	styles   *mocks.MockStyleRepository
	sizes    *mocks.MockSizeRepository
	pub      *mocks.MockPublisher
	verifier *mocks.MockChallengeVerifier
}

func newOrderMocks() *orderMocks {
	return &orderMocks{
		orders:   new(mocks.MockOrderRepository),
		styles:   new(mocks.MockStyleRepository),
		sizes:    new(mocks.MockSizeRepository),
		pub:      new(mocks.MockPublisher),
		verifier: new(mocks.MockChallengeVerifier),
	}
}

func (m *orderMocks) service(withChallenge bool) *OrderService {
	s := NewOrderService(m.orders, m.styles, m.sizes, m.pub)
	if withChallenge {
		s.SetChallengeVerifier(m.verifier)
	}
	return s
}

func (m *orderMocks) assertExpectations(t *testing.T) {
	m.orders.AssertExpectations(t)
	m.styles.AssertExpectations(t)
	m.sizes.AssertExpectations(t)
	m.verifier.AssertExpectations(t)
}

func TestOrderService_Submit(t *testing.T) {
	xl := &domain.Size{ID: TestSizeID, Talla: "XL", Nombre: "Extra Large"}
	classic := CreateMockStyle(10, 1, "Classic", "20", "a.png")
	neon := CreateMockStyle(11, 2, "Neon", "12.50", "b.png")

	tests := []struct {
		name          string
		input         SubmitOrderInput
		withChallenge bool
		setupMocks    func(*orderMocks)
		expectedError error
		expectedTotal string
		expectedName  string
	}{
		{
			name:  "total is the sum of stored prices",
			input: SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{10, 11}},
			setupMocks: func(m *orderMocks) {
				m.sizes.On("FindByID", mock.Anything, TestSizeID).Return(xl, nil)
				m.styles.On("FindByIDs", mock.Anything, []uint64{10, 11}).Return([]domain.Style{classic, neon}, nil)
				m.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order"), []uint64{10, 11}).Return(nil).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Order).ID = 7
				})
			},
			expectedTotal: "32.50",
			expectedName:  domain.DefaultShirtName,
		},
		{
			name:  "print name is kept",
			input: SubmitOrderInput{Persona: " Juan ", Nombre: "EL RAYO", TallaID: TestSizeID, EstiloIDs: []uint64{10}},
			setupMocks: func(m *orderMocks) {
				m.sizes.On("FindByID", mock.Anything, TestSizeID).Return(xl, nil)
				m.styles.On("FindByIDs", mock.Anything, []uint64{10}).Return([]domain.Style{classic}, nil)
				m.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order"), []uint64{10}).Return(nil)
			},
			expectedTotal: "20",
			expectedName:  "EL RAYO",
		},
		{
			name:          "missing persona",
			input:         SubmitOrderInput{Persona: "  ", TallaID: TestSizeID, EstiloIDs: []uint64{10}},
			setupMocks:    func(m *orderMocks) {},
			expectedError: ErrMissingOrderData,
		},
		{
			name:          "missing size",
			input:         SubmitOrderInput{Persona: "Juan", EstiloIDs: []uint64{10}},
			setupMocks:    func(m *orderMocks) {},
			expectedError: ErrMissingOrderData,
		},
		{
			name:          "no styles",
			input:         SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID},
			setupMocks:    func(m *orderMocks) {},
			expectedError: ErrMissingOrderData,
		},
		{
			name:  "unknown size",
			input: SubmitOrderInput{Persona: "Juan", TallaID: 99, EstiloIDs: []uint64{10}},
			setupMocks: func(m *orderMocks) {
				m.sizes.On("FindByID", mock.Anything, uint64(99)).Return(nil, nil)
			},
			expectedError: ErrUnknownSize,
		},
		{
			name:  "one style does not exist",
			input: SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{10, 404}},
			setupMocks: func(m *orderMocks) {
				m.sizes.On("FindByID", mock.Anything, TestSizeID).Return(xl, nil)
				m.styles.On("FindByIDs", mock.Anything, []uint64{10, 404}).Return([]domain.Style{classic}, nil)
			},
			expectedError: ErrUnknownStyles,
		},
		{
			name:  "duplicate style ids are rejected",
			input: SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{10, 10}},
			setupMocks: func(m *orderMocks) {
				m.sizes.On("FindByID", mock.Anything, TestSizeID).Return(xl, nil)
				m.styles.On("FindByIDs", mock.Anything, []uint64{10, 10}).Return([]domain.Style{classic}, nil)
			},
			expectedError: ErrUnknownStyles,
		},
		{
			name:          "challenge token missing",
			input:         SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{10}},
			withChallenge: true,
			setupMocks:    func(m *orderMocks) {},
			expectedError: ErrChallengeRequired,
		},
		{
			name:          "challenge rejected",
			input:         SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{10}, TurnstileToken: "bad", RemoteIP: "1.2.3.4"},
			withChallenge: true,
			setupMocks: func(m *orderMocks) {
				m.verifier.On("Verify", mock.Anything, "bad", "1.2.3.4").Return(false, nil)
			},
			expectedError: ErrChallengeFailed,
		},
		{
			name:          "challenge provider down",
			input:         SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{10}, TurnstileToken: "tok"},
			withChallenge: true,
			setupMocks: func(m *orderMocks) {
				m.verifier.On("Verify", mock.Anything, "tok", "").Return(false, errors.New("timeout"))
			},
			expectedError: ErrChallengeUnavailable,
		},
		{
			name:          "challenge accepted",
			input:         SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{11}, TurnstileToken: "good"},
			withChallenge: true,
			setupMocks: func(m *orderMocks) {
				m.verifier.On("Verify", mock.Anything, "good", "").Return(true, nil)
				m.sizes.On("FindByID", mock.Anything, TestSizeID).Return(xl, nil)
				m.styles.On("FindByIDs", mock.Anything, []uint64{11}).Return([]domain.Style{neon}, nil)
				m.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order"), []uint64{11}).Return(nil)
			},
			expectedTotal: "12.5",
			expectedName:  domain.DefaultShirtName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newOrderMocks()
			m.pub.On("Publish", mock.Anything, domain.EventOrderCreated, mock.Anything).Return(nil).Maybe()
			tt.setupMocks(m)

			result, err := m.service(tt.withChallenge).Submit(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, result)
				m.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assertDecimal(t, tt.expectedTotal, result.Order.Total)
				assert.Equal(t, tt.expectedName, result.Order.Nombre)
				assert.Equal(t, "Juan", result.Order.Persona)
				assert.Equal(t, domain.Unpaid, result.Order.Pagado)
				assertDecimal(t, "0", result.Order.Abonado)
			}
			m.assertExpectations(t)
		})
	}
}

func TestOrderService_SubmitPublishesEvent(t *testing.T) {
	m := newOrderMocks()
	classic := CreateMockStyle(10, 1, "Classic", "20", "a.png")
	m.sizes.On("FindByID", mock.Anything, TestSizeID).Return(&domain.Size{ID: TestSizeID, Talla: "XL"}, nil)
	m.styles.On("FindByIDs", mock.Anything, []uint64{10}).Return([]domain.Style{classic}, nil)
	m.orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order"), []uint64{10}).Return(nil).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Order).ID = 5
	})

	published := make(chan domain.OrderCreatedEvent, 1)
	m.pub.On("Publish", mock.Anything, domain.EventOrderCreated, mock.Anything).Return(errors.New("broker down")).Run(func(args mock.Arguments) {
		published <- args.Get(2).(domain.OrderCreatedEvent)
	})

	result, err := m.service(false).Submit(context.Background(), SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{10}})
	require.NoError(t, err, "a broker failure never fails the order")
	assert.Equal(t, uint64(5), result.Order.ID)

	select {
	case evt := <-published:
		assert.Equal(t, uint64(5), evt.OrderID)
		assert.Equal(t, []uint64{10}, evt.EstiloIDs)
		assertDecimal(t, "20", evt.Total)
	case <-time.After(time.Second):
		t.Fatal("order.created was not published")
	}
}

func TestOrderService_SubmitWhatsAppLink(t *testing.T) {
	m := newOrderMocks()
	m.pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.sizes.On("FindByID", mock.Anything, TestSizeID).Return(&domain.Size{ID: TestSizeID, Talla: "XL"}, nil)
	m.styles.On("FindByIDs", mock.Anything, []uint64{11, 10}).Return([]domain.Style{
		CreateMockStyle(10, 1, "Classic", "20", ""),
		CreateMockStyle(11, 2, "Neon", "15", ""),
	}, nil)
	m.orders.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	s := m.service(false)
	s.SetContact(ContactConfig{WhatsAppPhone: "50766769050", PaymentPhone: "6676-9050"})

	result, err := s.Submit(context.Background(), SubmitOrderInput{Persona: "Juan", TallaID: TestSizeID, EstiloIDs: []uint64{11, 10}})
	require.NoError(t, err)

	u, err := url.Parse(result.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	text := u.Query().Get("text")
	assert.Contains(t, text, "Estilos: *Neon, Classic*")
	assert.Contains(t, text, "Total: *$35*")
}

func TestOrderService_TogglePaid(t *testing.T) {
	tests := []struct {
		name          string
		setupMocks    func(*mocks.MockOrderRepository)
		expectedError error
	}{
		{
			name: "marks paid",
			setupMocks: func(r *mocks.MockOrderRepository) {
				r.On("TogglePaid", mock.Anything, TestOrderID).Return(CreateMockOrder(TestOrderID, "20", domain.Paid, "20"), nil)
			},
		},
		{
			name: "order not found",
			setupMocks: func(r *mocks.MockOrderRepository) {
				r.On("TogglePaid", mock.Anything, TestOrderID).Return(nil, repository.ErrNotFound)
			},
			expectedError: ErrOrderNotFound,
		},
		{
			name: "repository error",
			setupMocks: func(r *mocks.MockOrderRepository) {
				r.On("TogglePaid", mock.Anything, TestOrderID).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newOrderMocks()
			m.pub.On("Publish", mock.Anything, domain.EventOrderPaymentUpdated, mock.Anything).Return(nil).Maybe()
			tt.setupMocks(m.orders)

			o, err := m.service(false).TogglePaid(context.Background(), TestOrderID)

			if tt.expectedError != nil {
				assert.Error(t, err)
				if tt.expectedError == ErrOrderNotFound {
					assert.Equal(t, ErrOrderNotFound, err)
				} else {
					assert.Contains(t, err.Error(), tt.expectedError.Error())
				}
				assert.Nil(t, o)
			} else {
				assert.NoError(t, err)
				assert.True(t, o.IsPaid())
			}
			m.orders.AssertExpectations(t)
		})
	}
}

func TestOrderService_RecordPayment(t *testing.T) {
	m := newOrderMocks()
	m.pub.On("Publish", mock.Anything, domain.EventOrderPaymentUpdated, mock.Anything).Return(nil).Maybe()
	amount := decimal.NewFromInt(-5)
	m.orders.On("RecordPayment", mock.Anything, TestOrderID, amount).Return(CreateMockOrder(TestOrderID, "20", domain.Unpaid, "-5"), nil)
	m.orders.On("RecordPayment", mock.Anything, uint64(2), amount).Return(nil, repository.ErrNotFound)

	o, err := m.service(false).RecordPayment(context.Background(), TestOrderID, amount)
	require.NoError(t, err)
	assertDecimal(t, "-5", o.Abonado)

	_, err = m.service(false).RecordPayment(context.Background(), 2, amount)
	assert.Equal(t, ErrOrderNotFound, err)
	m.orders.AssertExpectations(t)
}

func TestOrderService_ReplaceStyles(t *testing.T) {
	m := newOrderMocks()
	m.orders.On("ReplaceStyles", mock.Anything, TestOrderID, []uint64{}).Return(CreateMockOrder(TestOrderID, "0", domain.Unpaid, "0"), nil)
	m.orders.On("ReplaceStyles", mock.Anything, TestOrderID, []uint64{404}).Return(nil, repository.ErrUnknownStyles)
	m.orders.On("ReplaceStyles", mock.Anything, uint64(9), []uint64{1}).Return(nil, repository.ErrNotFound)

	s := m.service(false)

	o, err := s.ReplaceStyles(context.Background(), TestOrderID, []uint64{})
	require.NoError(t, err)
	assertDecimal(t, "0", o.Total)

	_, err = s.ReplaceStyles(context.Background(), TestOrderID, []uint64{404})
	assert.ErrorIs(t, err, ErrUnknownStyles)

	_, err = s.ReplaceStyles(context.Background(), 9, []uint64{1})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	m.orders.AssertExpectations(t)
}

func TestOrderService_UpdateDate(t *testing.T) {
	m := newOrderMocks()
	want := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	m.orders.On("UpdateCreatedAt", mock.Anything, TestOrderID, want).Return(nil)
	m.orders.On("UpdateCreatedAt", mock.Anything, uint64(2), want).Return(repository.ErrNotFound)

	s := m.service(false)

	at, err := s.UpdateDate(context.Background(), TestOrderID, "2026-03-14T09:30")
	require.NoError(t, err)
	assert.Equal(t, want, at)

	_, err = s.UpdateDate(context.Background(), 2, "2026-03-14T09:30")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	_, err = s.UpdateDate(context.Background(), TestOrderID, "yesterday")
	assert.ErrorIs(t, err, ErrInvalidDate)
	m.orders.AssertExpectations(t)
}

func TestParseOrderDate(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2026-03-14T09:30:00Z", time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)},
		{"2026-03-14T09:30:00-05:00", time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC)},
		{"2026-03-14T09:30:15", time.Date(2026, 3, 14, 9, 30, 15, 0, time.UTC)},
		{"2026-03-14 09:30:15", time.Date(2026, 3, 14, 9, 30, 15, 0, time.UTC)},
		{"2026-03-14", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseOrderDate(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "14/03/2026", "not a date"} {
		_, err := ParseOrderDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestOrderService_DeleteOrder(t *testing.T) {
	m := newOrderMocks()
	m.pub.On("Publish", mock.Anything, domain.EventOrderDeleted, mock.Anything).Return(nil).Maybe()
	m.orders.On("Delete", mock.Anything, TestOrderID).Return(nil)
	m.orders.On("Delete", mock.Anything, uint64(2)).Return(repository.ErrNotFound)

	s := m.service(false)
	assert.NoError(t, s.DeleteOrder(context.Background(), TestOrderID))
	assert.Equal(t, ErrOrderNotFound, s.DeleteOrder(context.Background(), 2))
	m.orders.AssertExpectations(t)
}

func TestOrderService_GetOrder(t *testing.T) {
	m := newOrderMocks()
	m.orders.On("FindByID", mock.Anything, TestOrderID).Return(CreateMockOrder(TestOrderID, "20", 0, "0"), nil)
	m.orders.On("FindByID", mock.Anything, uint64(999)).Return(nil, nil)

	s := m.service(false)
	o, err := s.GetOrder(context.Background(), TestOrderID)
	require.NoError(t, err)
	assert.Equal(t, TestOrderID, o.ID)

	_, err = s.GetOrder(context.Background(), 999)
	assert.Equal(t, ErrOrderNotFound, err)
}
