package finance

import apperrors "github.com/paisawise/pw-mobile-go/internal/errors"

// Loan is a coarse record of an outstanding loan.
type Loan struct {
	Name        string  `json:"name"`
	Principal   float64 `json:"principal"`
	Outstanding float64 `json:"outstanding"`
	EMI         float64 `json:"emi,omitempty"`
}

// Investment is a coarse record of a holding (mutual fund, stock, FD, ...).
type Investment struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind,omitempty"`
	Amount float64 `json:"amount"`
}

// Insurance is a coarse record of a policy.
type Insurance struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind,omitempty"`
	Cover   float64 `json:"cover"`
	Premium float64 `json:"premium,omitempty"`
}

// Profile is the user's coarse financial profile: the inputs behind the
// loans, portfolio, and insurance screens. The backend stores it as a single
// document per user.
type Profile struct {
	MonthlySalary float64      `json:"monthly_salary"`
	Investments   []Investment `json:"investments,omitempty"`
	Loans         []Loan       `json:"loans,omitempty"`
	Insurance     []Insurance  `json:"insurance,omitempty"`
}

// Validate rejects obviously inconsistent profiles before upload.
func (p Profile) Validate() error {
	if p.MonthlySalary < 0 {
		return apperrors.ValidationField("monthly_salary", "salary cannot be negative")
	}
	for _, l := range p.Loans {
		if l.Outstanding < 0 || l.Principal < 0 {
			return apperrors.ValidationField("loans", "loan amounts cannot be negative")
		}
	}
	for _, i := range p.Investments {
		if i.Amount < 0 {
			return apperrors.ValidationField("investments", "investment amounts cannot be negative")
		}
	}
	return nil
}

// TotalInvested sums all investment amounts.
func (p Profile) TotalInvested() float64 {
	var sum float64
	for _, i := range p.Investments {
		sum += i.Amount
	}
	return sum
}

// TotalOutstandingDebt sums outstanding loan balances.
func (p Profile) TotalOutstandingDebt() float64 {
	var sum float64
	for _, l := range p.Loans {
		sum += l.Outstanding
	}
	return sum
}
