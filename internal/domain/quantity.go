package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity amount specification for a trade.
// At least one of FixedAmount and BalancePercentage is valid.
// When both are set no precedence is implied; interpretation belongs to the strategy.
type Quantity struct {
	FixedAmount       decimal.NullDecimal
	BalancePercentage decimal.NullDecimal
}

// NewQuantity creates a validated Quantity. fragment describes the source and
// is only used in the error.
func NewQuantity(fixedAmount, balancePercentage decimal.NullDecimal, fragment string) (Quantity, error) {
	if !fixedAmount.Valid && !balancePercentage.Valid {
		return Quantity{}, &MissingQuantityError{Fragment: fragment}
	}

	return Quantity{
		FixedAmount:       fixedAmount,
		BalancePercentage: balancePercentage,
	}, nil
}

// HasFixedAmount reports whether a fixed amount was configured.
func (q Quantity) HasFixedAmount() bool {
	return q.FixedAmount.Valid
}

// HasBalancePercentage reports whether a balance percentage was configured.
func (q Quantity) HasBalancePercentage() bool {
	return q.BalancePercentage.Valid
}

// String returns the string representation.
func (q Quantity) String() string {
	switch {
	case q.FixedAmount.Valid && q.BalancePercentage.Valid:
		return fmt.Sprintf("%s|%s%%", q.FixedAmount.Decimal.String(), q.BalancePercentage.Decimal.String())
	case q.FixedAmount.Valid:
		return q.FixedAmount.Decimal.String()
	case q.BalancePercentage.Valid:
		return q.BalancePercentage.Decimal.String() + "%"
	default:
		return "<none>"
	}
}
