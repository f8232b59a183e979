package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/openbooks/openbooks/internal/apperrors"
	"github.com/openbooks/openbooks/internal/core/domain"
	portssvc "github.com/openbooks/openbooks/internal/core/ports/services"
	"github.com/openbooks/openbooks/internal/core/services"
	"github.com/openbooks/openbooks/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountService
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code: "1000",
		Name: "Cash",
		Type: "asset",
		Flags: domain.AccountFlags{
			IsCash: true,
		},
	}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1000" && a.Type == domain.Asset && a.Flags.IsCash && a.CreatedBy == "user-1"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.NotEmpty(account.AccountID)
	suite.Equal("Cash", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsUnknownType() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "9999", Name: "Mystery", Type: "goodwill"}

	_, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RejectsDuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{Code: "1000", Name: "Cash", Type: "asset"}

	suite.mockRepo.On("FindAccountByCode", ctx, "1000").Return(&domain.Account{AccountID: "existing"}, nil).Once()

	_, err := suite.service.CreateAccount(ctx, req, "user-1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestAccountsByID_KeysByAccountID() {
	ctx := context.Background()
	accounts := []domain.Account{
		{AccountID: "a1", Code: "1000"},
		{AccountID: "a2", Code: "4000"},
	}

	suite.mockRepo.On("ListAccounts", ctx).Return(accounts, nil).Once()

	byID, err := suite.service.AccountsByID(ctx)

	suite.Require().NoError(err)
	suite.Len(byID, 2)
	suite.Equal("1000", byID["a1"].Code)
	suite.Equal("4000", byID["a2"].Code)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
