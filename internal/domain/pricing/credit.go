package pricing

import "github.com/shopspring/decimal"

// Settlement describes how a grand total is paid once store credit has been
// applied.
type Settlement struct {
	GrandTotal   decimal.Decimal
	CreditUsed   decimal.Decimal
	AmountDue    decimal.Decimal
	CashReceived decimal.Decimal
	ChangeGiven  decimal.Decimal
}

// ApplyCredit spends up to requested store credit against grandTotal. The
// credit used never exceeds the grand total; asking for more than the
// customer holds fails with ErrInsufficientCredit.
func ApplyCredit(grandTotal, available, requested decimal.Decimal) (Settlement, error) {
	if requested.IsNegative() {
		return Settlement{}, invalid("creditUsed", "must not be negative")
	}
	if requested.GreaterThan(available) {
		return Settlement{}, ErrInsufficientCredit
	}

	used := decimal.Min(requested, grandTotal)
	return Settlement{
		GrandTotal: grandTotal,
		CreditUsed: used,
		AmountDue:  grandTotal.Sub(used),
	}, nil
}

// Tender records cash handed over for the remaining amount due and computes
// the change.
func (s Settlement) Tender(cashReceived decimal.Decimal) (Settlement, error) {
	if cashReceived.LessThan(s.AmountDue) {
		return s, invalid("cashReceived", "does not cover the amount due")
	}
	s.CashReceived = cashReceived
	s.ChangeGiven = cashReceived.Sub(s.AmountDue)
	return s, nil
}
