package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	cardsDomain "github.com/allisson/cards/internal/cards/domain"
	eventsDomain "github.com/allisson/cards/internal/events/domain"
	plansDomain "github.com/allisson/cards/internal/plans/domain"
)

// passthroughTxManager runs the transactional function directly so
// repository expectations stay visible to the mocks.
type passthroughTxManager struct{}

func (passthroughTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	args := m.Called(ctx, card)
	if args.Get(0) == nil {
		// Simulate database id assignment
		card.ID = 1
	}
	return args.Error(0)
}

func (m *MockCardRepository) Update(ctx context.Context, card *cardsDomain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockCardRepository) GetByID(ctx context.Context, cardID int64) (*cardsDomain.Card, error) {
	args := m.Called(ctx, cardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardRepository) GetByCardNumber(ctx context.Context, cardNumber string) (*cardsDomain.Card, error) {
	args := m.Called(ctx, cardNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardRepository) GetByCardNumberAndAccountID(
	ctx context.Context,
	cardNumber string,
	accountID int64,
) (*cardsDomain.Card, error) {
	args := m.Called(ctx, cardNumber, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardRepository) List(
	ctx context.Context,
	filters ListFilters,
	offset, limit int,
) ([]*cardsDomain.Card, error) {
	args := m.Called(ctx, filters, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cardsDomain.Card), args.Error(1)
}

func (m *MockCardRepository) ExistsDuplicate(
	ctx context.Context,
	userID, accountID int64,
	cardType cardsDomain.CardType,
	network cardsDomain.CardNetwork,
) (bool, error) {
	args := m.Called(ctx, userID, accountID, cardType, network)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardRepository) ExistsByPlanAndUser(ctx context.Context, planID, userID int64) (bool, error) {
	args := m.Called(ctx, planID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCardRepository) CountDistinctUsersByPlan(ctx context.Context, planID int64) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlanCatalog is a mock implementation of PlanCatalog
type MockPlanCatalog struct {
	mock.Mock
}

func (m *MockPlanCatalog) Get(ctx context.Context, planID int64) (*plansDomain.CardPlan, error) {
	args := m.Called(ctx, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plansDomain.CardPlan), args.Error(1)
}

// MockEventRepository is a mock implementation of EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *eventsDomain.CardEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockSensitiveDataGenerator is a mock implementation of service.SensitiveDataGenerator
type MockSensitiveDataGenerator struct {
	mock.Mock
}

func (m *MockSensitiveDataGenerator) Generate(pin string) (*cardsDomain.SensitiveData, error) {
	args := m.Called(pin)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.SensitiveData), args.Error(1)
}
