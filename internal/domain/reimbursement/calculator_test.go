package reimbursement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reimburse/reimburse/internal/platform/money"
)

func newConsultation(amount, pct string) *Consultation {
	cons := &Consultation{ID: uuid.New()}
	if amount != "" {
		m := money.MustFromString(amount)
		cons.Amount = &m
	}
	if pct != "" {
		p := money.MustPercentFromString(pct)
		cons.CoveragePercentage = &p
	}
	return cons
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		pct    string
		want   string
	}{
		{"seventy percent", "200.00", "0.70", "140.00"},
		{"full coverage at cap", "150.00", "1.00", "150.00"},
		{"capped", "300.00", "1.00", "150.00"},
		{"half coverage", "200.00", "0.50", "100.00"},
		{"zero coverage", "200.00", "0.00", "0.00"},
		{"zero amount", "0.00", "0.70", "0.00"},
		{"rounds half up", "33.35", "0.50", "16.68"},
	}

	calc := NewCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := calc.Calculate(newConsultation(tt.amount, tt.pct))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	calc := NewCalculator()
	cons := newConsultation("200.00", "0.70")

	first, err := calc.Calculate(cons)
	require.NoError(t, err)
	second, err := calc.Calculate(cons)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
}

func TestCalculateValidation(t *testing.T) {
	calc := NewCalculator()

	tests := []struct {
		name string
		cons *Consultation
	}{
		{"nil consultation", nil},
		{"missing amount", newConsultation("", "0.70")},
		{"negative amount", newConsultation("-1.00", "0.70")},
		{"missing percentage", newConsultation("200.00", "")},
		{"percentage above one", newConsultation("200.00", "1.01")},
		{"negative percentage", newConsultation("200.00", "-0.10")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Calculate(tt.cons)
			require.Error(t, err)
			assert.True(t, IsInvalidInput(err))
		})
	}
}

func TestCalculateWithPlan(t *testing.T) {
	calc := NewCalculator()

	got, err := calc.CalculateWithPlan(newConsultation("200.00", ""), BasicPlan{})
	require.NoError(t, err)
	assert.Equal(t, "100.00", got.String())

	// 150.00 at 80% stays below the cap, so the plan rate is visible.
	got, err = calc.CalculateWithPlan(newConsultation("150.00", ""), PremiumPlan{})
	require.NoError(t, err)
	assert.Equal(t, "120.00", got.String())
}

func TestCalculateWithPlanIgnoresConsultationPercentage(t *testing.T) {
	calc := NewCalculator()

	// Consultation carries 10% but the plan says 80%.
	got, err := calc.CalculateWithPlan(newConsultation("100.00", "0.10"), PremiumPlan{})
	require.NoError(t, err)
	assert.Equal(t, "80.00", got.String())
}

func TestCalculateWithPlanAppliesCap(t *testing.T) {
	calc := NewCalculator()

	got, err := calc.CalculateWithPlan(newConsultation("500.00", ""), PremiumPlan{})
	require.NoError(t, err)
	assert.Equal(t, "150.00", got.String())
}

func TestCalculateWithPlanRequiresPlan(t *testing.T) {
	calc := NewCalculator()

	_, err := calc.CalculateWithPlan(newConsultation("200.00", ""), nil)
	require.Error(t, err)
	assert.True(t, IsInvalidInput(err))
}
