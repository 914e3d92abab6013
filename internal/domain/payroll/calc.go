package payroll

import "github.com/shopspring/decimal"

// NetSalary is basic + allowances - deductions, rounded to cents.
func NetSalary(basic, allowances, deductions decimal.Decimal) decimal.Decimal {
	return basic.Add(allowances).Sub(deductions).Round(2)
}

func validateAmounts(amounts ...decimal.Decimal) error {
	for _, amount := range amounts {
		if amount.IsNegative() {
			return ErrNegativeAmount
		}
	}
	return nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < MinYear || year > MaxYear {
		return ErrInvalidPeriod
	}
	return nil
}

func orZero(value *decimal.Decimal) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	return *value
}
