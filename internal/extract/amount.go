// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/statement-tools/pkg/types"
)

// numericRun matches an amount with optional thousands separators and an
// optional fractional part.
var numericRun = regexp.MustCompile(`[\d,]+\.?\d*`)

// ParseAmount reads a transaction amount cell. A leading "-" or "($" marks a
// debit, which is stored negated. Both results are nil when the cell holds no
// number.
func ParseAmount(s string) (*decimal.Decimal, *types.TransactionKind) {
	s = strings.TrimSpace(s)
	debit := strings.HasPrefix(s, "-") || strings.HasPrefix(s, "($")

	v := firstNumber(strings.ReplaceAll(s, "$", ""))
	if v == nil {
		return nil, nil
	}

	kind := types.KindCredit
	if debit {
		neg := v.Neg()
		v = &neg
		kind = types.KindDebit
	}
	return v, &kind
}

// ParseBalance reads a running balance cell as an unsigned amount.
func ParseBalance(s string) *decimal.Decimal {
	return firstNumber(strings.ReplaceAll(s, "$", ""))
}

func firstNumber(s string) *decimal.Decimal {
	run := numericRun.FindString(s)
	if run == "" {
		return nil
	}
	return parseDecimal(run)
}

// parseDecimal strips thousands separators and parses the rest. It returns
// nil for runs such as "," that hold no digits.
func parseDecimal(run string) *decimal.Decimal {
	cleaned := strings.TrimSuffix(strings.ReplaceAll(run, ",", ""), ".")
	if cleaned == "" {
		return nil
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return nil
	}
	return &d
}
