package reimbursement

import (
	"context"

	"github.com/reimburse/reimburse/internal/platform/money"
)

// HistoryRepository is the append-only store of past calculations. Entries
// are keyed by consultation identity and queried by patient tax id; they
// are never updated or deleted.
//
// FindAll and FindByPatient return only entries for which a reimbursed
// amount was recorded, in insertion order. Unknown or empty tax ids yield
// an empty slice, never an error.
type HistoryRepository interface {
	Save(ctx context.Context, cons *Consultation, patient *Patient) error
	SaveWithAmount(ctx context.Context, cons *Consultation, patient *Patient, amount money.Money) error
	FindAll(ctx context.Context) ([]*HistoryEntry, error)
	FindByPatient(ctx context.Context, taxID string) ([]*HistoryEntry, error)
}
