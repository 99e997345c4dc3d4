package reimbursement

import (
	"context"

	"github.com/reimburse/reimburse/internal/platform/money"
)

// Service orchestrates one calculation request through a fixed pipeline:
// authorize, audit, calculate, persist. Authorization gates everything
// downstream; auditing happens only for authorized attempts; history is
// written only on calculation success.
type Service struct {
	calc       *Calculator
	history    HistoryRepository
	authorizer Authorizer
	auditor    Auditor
}

func NewService(calc *Calculator, history HistoryRepository) *Service {
	return &Service{calc: calc, history: history}
}

// SetAuthorizer attaches an optional authorization check. Without one,
// every consultation is treated as authorized.
func (s *Service) SetAuthorizer(a Authorizer) {
	s.authorizer = a
}

// SetAuditor attaches an optional audit recorder.
func (s *Service) SetAuditor(a Auditor) {
	s.auditor = a
}

// CalculateReimbursement runs the pipeline using the consultation's own
// coverage percentage.
func (s *Service) CalculateReimbursement(ctx context.Context, cons *Consultation) (money.Money, error) {
	return s.run(ctx, cons, nil, false)
}

// CalculateReimbursementWithPlan runs the pipeline using the plan's
// coverage percentage. A missing plan fails at the calculation stage so
// that authorization and auditing still run in order.
func (s *Service) CalculateReimbursementWithPlan(ctx context.Context, cons *Consultation, plan Plan) (money.Money, error) {
	return s.run(ctx, cons, plan, true)
}

func (s *Service) run(ctx context.Context, cons *Consultation, plan Plan, usePlan bool) (money.Money, error) {
	patient := PlaceholderPatient()

	if s.authorizer != nil {
		res := s.authorizer.Authorize(cons, patient)
		if !res.Authorized {
			reason := res.DenialReason
			if reason == "" {
				reason = "reimbursement not authorized"
			}
			return money.Money{}, NewUnauthorized("%s", reason)
		}
	}

	if s.auditor != nil {
		s.auditor.RecordAttempt(ctx, cons)
	}

	var (
		amount money.Money
		err    error
	)
	if usePlan {
		amount, err = s.calc.CalculateWithPlan(cons, plan)
	} else {
		amount, err = s.calc.Calculate(cons)
	}
	if err != nil {
		return money.Money{}, err
	}

	if err := s.history.SaveWithAmount(ctx, cons, patient, amount); err != nil {
		return money.Money{}, err
	}
	return amount, nil
}

// History returns every recorded calculation in insertion order.
func (s *Service) History(ctx context.Context) ([]*HistoryEntry, error) {
	return s.history.FindAll(ctx)
}

// HistoryByPatient returns the recorded calculations for one tax id.
func (s *Service) HistoryByPatient(ctx context.Context, taxID string) ([]*HistoryEntry, error) {
	return s.history.FindByPatient(ctx, taxID)
}
