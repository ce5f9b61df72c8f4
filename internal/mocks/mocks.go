package mocks

import (
	"context"
	"io"
	"time"

	"github.com/Ricky06202/tshirt-stryd/internal/domain"
	"github.com/Ricky06202/tshirt-stryd/internal/infra/blob"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

type MockStyleRepository struct {
	mock.Mock
}

type MockSizeRepository struct {
	mock.Mock
}

type MockPublisher struct {
	mock.Mock
}

type MockChallengeVerifier struct {
	mock.Mock
}

type MockBlobStore struct {
	mock.Mock
}

type MockCache struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, message interface{}) error {
	args := m.Called(ctx, topic, message)
	return args.Error(0)
}

func (m *MockChallengeVerifier) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	args := m.Called(ctx, token, remoteIP)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order, styleIDs []uint64) error {
	args := m.Called(ctx, order, styleIDs)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockOrderRepository) TogglePaid(ctx context.Context, id uint64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) RecordPayment(ctx context.Context, id uint64, amount decimal.Decimal) (*domain.Order, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) ReplaceStyles(ctx context.Context, id uint64, styleIDs []uint64) (*domain.Order, error) {
	args := m.Called(ctx, id, styleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateCreatedAt(ctx context.Context, id uint64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStyleRepository) List(ctx context.Context) ([]domain.Style, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Style), args.Error(1)
}

func (m *MockStyleRepository) FindByID(ctx context.Context, id uint64) (*domain.Style, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Style), args.Error(1)
}

func (m *MockStyleRepository) FindByIDs(ctx context.Context, ids []uint64) ([]domain.Style, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Style), args.Error(1)
}

func (m *MockStyleRepository) Create(ctx context.Context, style *domain.Style) error {
	args := m.Called(ctx, style)
	return args.Error(0)
}

func (m *MockStyleRepository) Update(ctx context.Context, style *domain.Style) error {
	args := m.Called(ctx, style)
	return args.Error(0)
}

func (m *MockStyleRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSizeRepository) List(ctx context.Context) ([]domain.Size, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Size), args.Error(1)
}

func (m *MockSizeRepository) FindByID(ctx context.Context, id uint64) (*domain.Size, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Size), args.Error(1)
}

func (m *MockSizeRepository) Create(ctx context.Context, size *domain.Size) error {
	args := m.Called(ctx, size)
	return args.Error(0)
}

func (m *MockSizeRepository) Update(ctx context.Context, size *domain.Size) error {
	args := m.Called(ctx, size)
	return args.Error(0)
}

func (m *MockSizeRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) error {
	args := m.Called(ctx, key, contentType, body)
	return args.Error(0)
}

func (m *MockBlobStore) Get(ctx context.Context, key string) (*blob.Object, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.Object), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}
