package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative amount. Arithmetic is exact; conversion to float
// only happens at the transport edge.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{amount: amount}, nil
}

func NewMoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MoneyFromInt is used by the synthesis formulas whose prices are whole units.
func MoneyFromInt(amount int64) Money {
	if amount < 0 {
		amount = 0
	}
	return Money{amount: decimal.NewFromInt(amount)}
}

func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a line-item count.
func (m Money) Times(count int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(count)))}
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Float64() float64 {
	return m.amount.InexactFloat64()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) String() string {
	return m.amount.String()
}
