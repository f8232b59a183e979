package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate from a currency to the base
// currency on a specific date. Keyed by (date, currency); absence of a rate
// defaults to 1 (treated as base currency).
type ExchangeRate struct {
	Date       time.Time       `json:"date"`
	Currency   string          `json:"currency"`
	RateToBase decimal.Decimal `json:"rateToBase"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}
