package dto

import "github.com/shopspring/decimal"

// UpsertRateRequest defines the payload for setting an exchange rate for a
// (date, currency) pair.
type UpsertRateRequest struct {
	Date       string          `json:"date" binding:"required,datetime=2006-01-02"`
	Currency   string          `json:"currency" binding:"required,len=3"`
	RateToBase decimal.Decimal `json:"rateToBase" binding:"required"`
}
