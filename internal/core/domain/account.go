package domain

// AccountType defines the fundamental accounting type of an account.
// The type drives statement placement and presentation sign.
type AccountType string

const (
	Asset        AccountType = "asset"
	Liability    AccountType = "liability"
	Equity       AccountType = "equity"
	Revenue      AccountType = "revenue"
	COGS         AccountType = "cogs"
	Expense      AccountType = "expense"
	OtherIncome  AccountType = "other_income"
	OtherExpense AccountType = "other_expense"
	Tax          AccountType = "tax"
)

// AccountTypes lists every recognized account type.
var AccountTypes = []AccountType{
	Asset, Liability, Equity, Revenue, COGS, Expense, OtherIncome, OtherExpense, Tax,
}

// IsValid reports whether t is one of the recognized account types.
func (t AccountType) IsValid() bool {
	for _, known := range AccountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsPnL reports whether accounts of this type belong on the profit-and-loss
// statement. Everything else, including unrecognized/blank types, lands on
// the balance sheet.
func (t AccountType) IsPnL() bool {
	switch t {
	case Revenue, COGS, Expense, OtherIncome, OtherExpense, Tax:
		return true
	}
	return false
}

// SignForType returns the presentation sign applied to an account's net
// (debit minus credit) when summing statement rows. Income types are
// credit-nature, so their net is negated to present revenue as a positive
// figure; expense types are debit-nature and already positive. Net income
// then carries the same sign as cash generated, which the indirect
// cash-flow derivation depends on.
func SignForType(t AccountType) int {
	switch t {
	case Revenue, OtherIncome:
		return -1
	case COGS, Expense, OtherExpense, Tax:
		return 1
	}
	return 1
}

// AccountFlags mark roles an account plays in cash-flow and working-capital
// derivation.
type AccountFlags struct {
	IsCash       bool `json:"isCash"`
	IsAR         bool `json:"isAR"`
	IsAP         bool `json:"isAP"`
	IsInventory  bool `json:"isInventory"`
	IsFxMonetary bool `json:"isFxMonetary"`
}

// Account represents a chart-of-accounts entry. Identity is immutable; the
// type determines statement placement and sign convention.
type Account struct {
	AccountID     string       `json:"id"`
	Code          string       `json:"code"`
	Name          string       `json:"name"`
	Type          AccountType  `json:"type"`
	ParentID      string       `json:"parentId"`
	Flags         AccountFlags `json:"flags"`
	DepartmentIDs []string     `json:"departmentIds"`
	AuditFields
}
