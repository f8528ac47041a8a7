package config

import (
	"github.com/vadiminshakov/atd/internal/domain"
)

// ParseQuantity reads a quantity fragment with optional fixed_amount and
// balance_percentage numbers. At least one must be present.
func ParseQuantity(n Node) (domain.Quantity, error) {
	fixedAmount, err := n.Key("fixed_amount").OptionalDecimal()
	if err != nil {
		return domain.Quantity{}, err
	}

	balancePercentage, err := n.Key("balance_percentage").OptionalDecimal()
	if err != nil {
		return domain.Quantity{}, err
	}

	return domain.NewQuantity(fixedAmount, balancePercentage, n.Dump())
}
