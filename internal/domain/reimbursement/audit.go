package reimbursement

import (
	"context"

	"github.com/rs/zerolog"
)

// Auditor records that a calculation was attempted, independent of outcome.
// Fire-and-forget: implementations must not fail the pipeline. Optional
// collaborator of the Service.
type Auditor interface {
	RecordAttempt(ctx context.Context, cons *Consultation)
}

// LogAuditor writes audit records as structured log events.
type LogAuditor struct {
	logger zerolog.Logger
}

func NewLogAuditor(logger zerolog.Logger) *LogAuditor {
	return &LogAuditor{logger: logger}
}

func (a *LogAuditor) RecordAttempt(_ context.Context, cons *Consultation) {
	evt := a.logger.Info().Str("type", "reimbursement_audit")
	if cons != nil {
		evt = evt.Str("consultation_id", cons.ID.String())
		if cons.Amount != nil {
			evt = evt.Str("amount", cons.Amount.String())
		}
		if cons.CoveragePercentage != nil {
			evt = evt.Str("coverage_percentage", cons.CoveragePercentage.String())
		}
	}
	evt.Msg("calculation attempt")
}
