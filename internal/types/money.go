// README: Common money value object used across modules.
package types

import "github.com/shopspring/decimal"

// DefaultCurrency is the currency every fare and wallet in Lagos is quoted in.
const DefaultCurrency = "NGN"

type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

func NGN(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: DefaultCurrency}
}

func NGNInt(amount int64) Money {
	return NGN(decimal.NewFromInt(amount))
}
