package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a dated, signed monetary amount attributed to a
// person. Amount carries no currency and no sign restriction: a
// negative amount is a refund or income.
type Transaction struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	PersonID    int64           `json:"personId"`
}
