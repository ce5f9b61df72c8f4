package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/infra"
	rabbit "github.com/Ricky06202/tshirt-stryd/internal/infra/rabbitmq"
	"github.com/Ricky06202/tshirt-stryd/internal/repository"
	"github.com/Ricky06202/tshirt-stryd/internal/wizard"

	"github.com/shopspring/decimal"
)

type SubmitOrderInput struct {
	Persona        string
	Nombre         string
	TallaID        uint64
	EstiloIDs      []uint64
	TurnstileToken string
	RemoteIP       string
}

type SubmitOrderResult struct {
	Order       *domain.Order
	WhatsAppURL string
}

// ContactConfig feeds the messaging deep link shown after an order.
type ContactConfig struct {
	WhatsAppPhone string
	PaymentPhone  string
}

type OrderService struct {
	orders    repository.OrderRepository
	styles    repository.StyleRepository
	sizes     repository.SizeRepository
	verifier  infra.ChallengeVerifier
	publisher rabbit.PublisherInterface
	contact   ContactConfig
}

func NewOrderService(o repository.OrderRepository, st repository.StyleRepository, sz repository.SizeRepository, pub rabbit.PublisherInterface) *OrderService {
	if pub == nil {
		pub = rabbit.NoopPublisher{}
	}
	return &OrderService{
		orders:    o,
		styles:    st,
		sizes:     sz,
		publisher: pub,
	}
}

// SetChallengeVerifier makes a bot-challenge token mandatory on Submit.
func (u *OrderService) SetChallengeVerifier(v infra.ChallengeVerifier) {
	u.verifier = v
}

func (u *OrderService) SetContact(c ContactConfig) {
	u.contact = c
}

// Submit creates an order from the public form. The total is always the
// sum of the referenced styles' current prices.
func (u *OrderService) Submit(ctx context.Context, in SubmitOrderInput) (*SubmitOrderResult, error) {
	persona := strings.TrimSpace(in.Persona)
	if persona == "" || in.TallaID == 0 || len(in.EstiloIDs) == 0 {
		return nil, ErrMissingOrderData
	}

	if err := u.verifyChallenge(ctx, in.TurnstileToken, in.RemoteIP); err != nil {
		return nil, err
	}

	size, err := u.sizes.FindByID(ctx, in.TallaID)
	if err != nil {
		return nil, err
	}
	if size == nil {
		return nil, ErrUnknownSize
	}

	styles, err := u.styles.FindByIDs(ctx, in.EstiloIDs)
	if err != nil {
		return nil, err
	}
	if len(styles) != len(in.EstiloIDs) {
		return nil, ErrUnknownStyles
	}

	nombre := strings.TrimSpace(in.Nombre)
	if nombre == "" {
		nombre = domain.DefaultShirtName
	}

	order := &domain.Order{
		Persona: persona,
		Nombre:  nombre,
		TallaID: size.ID,
		Total:   domain.SumPrices(styles),
		Pagado:  domain.Unpaid,
		Abonado: decimal.Zero,
	}
	if err := u.orders.Create(ctx, order, in.EstiloIDs); err != nil {
		return nil, err
	}

	go u.publish(context.Background(), domain.EventOrderCreated, domain.OrderCreatedEvent{
		OrderID:   order.ID,
		Persona:   order.Persona,
		TallaID:   order.TallaID,
		EstiloIDs: in.EstiloIDs,
		Total:     order.Total,
		CreatedAt: order.CreatedAt,
	})

	return &SubmitOrderResult{
		Order:       order,
		WhatsAppURL: u.whatsAppURL(order, size, styles, in.EstiloIDs, in.Nombre),
	}, nil
}

func (u *OrderService) verifyChallenge(ctx context.Context, token, remoteIP string) error {
	if u.verifier == nil {
		return nil
	}
	if strings.TrimSpace(token) == "" {
		return ErrChallengeRequired
	}
	ok, err := u.verifier.Verify(ctx, token, remoteIP)
	if err != nil {
		log.Printf("challenge verification error: %v", err)
		return fmt.Errorf("%w: %v", ErrChallengeUnavailable, err)
	}
	if !ok {
		return ErrChallengeFailed
	}
	return nil
}

func (u *OrderService) whatsAppURL(order *domain.Order, size *domain.Size, styles []domain.Style, ids []uint64, shirtName string) string {
	if u.contact.WhatsAppPhone == "" {
		return ""
	}
	byID := make(map[uint64]string, len(styles))
	for _, s := range styles {
		byID[s.ID] = s.Nombre
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, byID[id])
	}
	return wizard.WhatsAppLink(u.contact.WhatsAppPhone, wizard.Summary{
		Persona:      order.Persona,
		NombreCamisa: shirtName,
		Talla:        size.Talla,
		Estilos:      names,
		Total:        order.Total,
		PaymentPhone: u.contact.PaymentPhone,
	})
}

func (u *OrderService) GetOrder(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := u.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return u.orders.List(ctx)
}

// TogglePaid flips the paid flag; see repository.OrderRepository.TogglePaid
// for how abonado follows.
func (u *OrderService) TogglePaid(ctx context.Context, id uint64) (*domain.Order, error) {
	o, err := u.orders.TogglePaid(ctx, id)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	u.publishPayment(o)
	return o, nil
}

// RecordPayment stores amount as the total paid so far. Negative and
// over-total amounts are accepted as given.
func (u *OrderService) RecordPayment(ctx context.Context, id uint64, amount decimal.Decimal) (*domain.Order, error) {
	o, err := u.orders.RecordPayment(ctx, id, amount)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	u.publishPayment(o)
	return o, nil
}

func (u *OrderService) ReplaceStyles(ctx context.Context, id uint64, styleIDs []uint64) (*domain.Order, error) {
	o, err := u.orders.ReplaceStyles(ctx, id, styleIDs)
	if err != nil {
		return nil, mapOrderErr(err)
	}
	return o, nil
}

func (u *OrderService) UpdateDate(ctx context.Context, id uint64, raw string) (time.Time, error) {
	at, err := ParseOrderDate(raw)
	if err != nil {
		return time.Time{}, err
	}
	if err := u.orders.UpdateCreatedAt(ctx, id, at); err != nil {
		return time.Time{}, mapOrderErr(err)
	}
	return at, nil
}

func (u *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	if err := u.orders.Delete(ctx, id); err != nil {
		return mapOrderErr(err)
	}
	go u.publish(context.Background(), domain.EventOrderDeleted, domain.OrderDeletedEvent{OrderID: id})
	return nil
}

var orderDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseOrderDate accepts the formats admin forms send and returns UTC.
// Values without a zone are read as UTC.
func ParseOrderDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range orderDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Truncate(time.Second), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func (u *OrderService) publishPayment(o *domain.Order) {
	go u.publish(context.Background(), domain.EventOrderPaymentUpdated, domain.OrderPaymentEvent{
		OrderID: o.ID,
		Pagado:  o.Pagado,
		Abonado: o.Abonado,
		Total:   o.Total,
	})
}

func (u *OrderService) publish(ctx context.Context, pattern string, evt any) {
	if err := u.publisher.Publish(ctx, pattern, evt); err != nil {
		log.Printf("failed to publish %s event: %v", pattern, err)
	}
}

func mapOrderErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrOrderNotFound
	case errors.Is(err, repository.ErrUnknownStyles):
		return ErrUnknownStyles
	default:
		return err
	}
}
