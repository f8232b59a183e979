package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/core/services"
	"github.com/openbooks/openbooks/internal/dto"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, date time.Time, currency string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, date, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Test Suite ---
type FxServiceTestSuite struct {
	suite.Suite
	mockRepo *MockExchangeRateRepository
	service  portssvc.FxService
}

func (suite *FxServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockExchangeRateRepository)
	suite.service = services.NewFxService(suite.mockRepo, "EGP")
}

// --- Test Cases ---

func (suite *FxServiceTestSuite) TestSetRate_Success() {
	ctx := context.Background()
	req := dto.UpsertRateRequest{Date: "2025-03-14", Currency: "usd", RateToBase: decimal.NewFromFloat(47.25)}

	suite.mockRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.Currency == "USD" && r.RateToBase.Equal(decimal.NewFromFloat(47.25))
	})).Return(nil).Once()

	rate, err := suite.service.SetRate(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Equal("USD", rate.Currency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *FxServiceTestSuite) TestSetRate_RejectsNonPositiveRate() {
	ctx := context.Background()
	req := dto.UpsertRateRequest{Date: "2025-03-14", Currency: "USD", RateToBase: decimal.Zero}

	_, err := suite.service.SetRate(ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRate", mock.Anything, mock.Anything)
}

func (suite *FxServiceTestSuite) TestRateFor_BaseCurrencyIsAlwaysOne() {
	ctx := context.Background()

	rate, err := suite.service.RateFor(ctx, time.Now(), "egp")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
	suite.mockRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FxServiceTestSuite) TestRateFor_MissingRateDefaultsToOne() {
	ctx := context.Background()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("FindRate", ctx, date, "USD").Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.RateFor(ctx, date, "USD")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(1)))
}

func (suite *FxServiceTestSuite) TestRateFor_ReturnsStoredRate() {
	ctx := context.Background()
	date := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	stored := &domain.ExchangeRate{Date: date, Currency: "USD", RateToBase: decimal.NewFromInt(48)}

	suite.mockRepo.On("FindRate", ctx, date, "USD").Return(stored, nil).Once()

	rate, err := suite.service.RateFor(ctx, date, "usd")

	suite.Require().NoError(err)
	suite.True(rate.Equal(decimal.NewFromInt(48)))
}

func TestFxServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FxServiceTestSuite))
}
