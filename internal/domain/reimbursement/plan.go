package reimbursement

import (
	"strings"

	"github.com/reimburse/reimburse/internal/platform/money"
)

// Plan is a named, stateless policy that fixes a coverage percentage.
type Plan interface {
	CoveragePercentage() money.Percent
	DisplayName() string
}

var (
	basicCoverage   = money.MustPercentFromString("0.50")
	premiumCoverage = money.MustPercentFromString("0.80")
)

// BasicPlan covers 50% of the consultation amount.
type BasicPlan struct{}

func (BasicPlan) CoveragePercentage() money.Percent { return basicCoverage }
func (BasicPlan) DisplayName() string               { return "Plano Básico" }

// PremiumPlan covers 80% of the consultation amount.
type PremiumPlan struct{}

func (PremiumPlan) CoveragePercentage() money.Percent { return premiumCoverage }
func (PremiumPlan) DisplayName() string               { return "Plano Premium" }

// ParsePlan resolves a plan tag from the request. Unknown tags are a client
// input error raised here, at the boundary, not inside the calculator.
// "basico" is accepted as a legacy alias for "basic".
func ParsePlan(planType string) (Plan, error) {
	switch strings.ToLower(strings.TrimSpace(planType)) {
	case "basic", "basico":
		return BasicPlan{}, nil
	case "premium":
		return PremiumPlan{}, nil
	default:
		return nil, NewInvalidInput("unknown plan type: %s", planType)
	}
}
