package reimbursement

import (
	"github.com/reimburse/reimburse/internal/platform/money"
)

// reimbursementCap is the fixed per-visit maximum, applied identically to
// both calculation paths.
var reimbursementCap = money.MustFromString("150.00")

// Calculator computes reimbursement amounts. It is pure: no side effects,
// same inputs always yield the same output.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate computes the reimbursement using the consultation's own
// coverage percentage.
func (*Calculator) Calculate(cons *Consultation) (money.Money, error) {
	if err := validateConsultation(cons); err != nil {
		return money.Money{}, err
	}
	if cons.CoveragePercentage == nil || !cons.CoveragePercentage.InRange() {
		return money.Money{}, NewInvalidInput("coverage percentage must be between 0 and 1")
	}
	return compute(*cons.Amount, *cons.CoveragePercentage), nil
}

// CalculateWithPlan computes the reimbursement using the plan's coverage
// percentage; the consultation's own percentage, if any, is ignored.
func (*Calculator) CalculateWithPlan(cons *Consultation, plan Plan) (money.Money, error) {
	if err := validateConsultation(cons); err != nil {
		return money.Money{}, err
	}
	if plan == nil {
		return money.Money{}, NewInvalidInput("insurance plan is required")
	}
	return compute(*cons.Amount, plan.CoveragePercentage()), nil
}

func validateConsultation(cons *Consultation) error {
	if cons == nil {
		return NewInvalidInput("consultation is required")
	}
	if cons.Amount == nil || cons.Amount.IsNegative() {
		return NewInvalidInput("amount must be non-negative")
	}
	return nil
}

// compute multiplies, rounds to two places half-up, then caps.
func compute(amount money.Money, pct money.Percent) money.Money {
	return money.Min(amount.Mul(pct), reimbursementCap)
}
