package presenter

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money is an amount in a currency, as shown to the customer.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// Rubles lifts a whole-ruble price into Money.
func Rubles(amount int64) Money {
	return Money{
		Amount:   decimal.NewFromInt(amount),
		Currency: currency.RUB,
	}
}
