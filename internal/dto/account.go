package dto

import (
	"github.com/openbooks/openbooks/internal/core/domain"
)

// CreateAccountRequest defines the payload for creating a chart-of-accounts
// entry.
type CreateAccountRequest struct {
	Code          string              `json:"code" binding:"required"`
	Name          string              `json:"name" binding:"required"`
	Type          string              `json:"type" binding:"required"`
	ParentID      string              `json:"parentId"`
	Flags         domain.AccountFlags `json:"flags"`
	DepartmentIDs []string            `json:"departmentIds"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	ID            string              `json:"id"`
	Code          string              `json:"code"`
	Name          string              `json:"name"`
	Type          domain.AccountType  `json:"type"`
	ParentID      string              `json:"parentId"`
	Flags         domain.AccountFlags `json:"flags"`
	DepartmentIDs []string            `json:"departmentIds"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:            a.AccountID,
		Code:          a.Code,
		Name:          a.Name,
		Type:          a.Type,
		ParentID:      a.ParentID,
		Flags:         a.Flags,
		DepartmentIDs: a.DepartmentIDs,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
