package reimbursement

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/reimburse/reimburse/internal/platform/money"
)

// HistoryRepoMem is the in-memory history store: a process-lifetime record
// with no durability. A single mutex guards every index so a concurrent
// reader never observes a consultation registered in one index but not
// another.
type HistoryRepoMem struct {
	mu            sync.Mutex
	order         []uuid.UUID
	consultations map[uuid.UUID]*Consultation
	patients      map[uuid.UUID]Patient
	amounts       map[uuid.UUID]money.Money
	byPatient     map[string][]uuid.UUID
}

func NewHistoryRepoMem() *HistoryRepoMem {
	return &HistoryRepoMem{
		consultations: make(map[uuid.UUID]*Consultation),
		patients:      make(map[uuid.UUID]Patient),
		amounts:       make(map[uuid.UUID]money.Money),
		byPatient:     make(map[string][]uuid.UUID),
	}
}

func (r *HistoryRepoMem) Save(ctx context.Context, cons *Consultation, patient *Patient) error {
	if cons == nil || patient == nil {
		return NewInvalidInput("consultation and patient are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveLocked(cons, patient)
	return nil
}

func (r *HistoryRepoMem) SaveWithAmount(ctx context.Context, cons *Consultation, patient *Patient, amount money.Money) error {
	if cons == nil || patient == nil {
		return NewInvalidInput("consultation and patient are required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveLocked(cons, patient)
	r.amounts[cons.ID] = amount
	return nil
}

func (r *HistoryRepoMem) saveLocked(cons *Consultation, patient *Patient) {
	r.order = append(r.order, cons.ID)
	r.consultations[cons.ID] = cons
	r.patients[cons.ID] = *patient
	r.byPatient[patient.TaxID] = append(r.byPatient[patient.TaxID], cons.ID)
}

func (r *HistoryRepoMem) FindAll(ctx context.Context) ([]*HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collectLocked(r.order), nil
}

func (r *HistoryRepoMem) FindByPatient(ctx context.Context, taxID string) ([]*HistoryEntry, error) {
	if taxID == "" {
		return []*HistoryEntry{}, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.collectLocked(r.byPatient[taxID]), nil
}

// collectLocked assembles entries in insertion order, silently skipping
// consultations saved without a reimbursed amount.
func (r *HistoryRepoMem) collectLocked(ids []uuid.UUID) []*HistoryEntry {
	entries := make([]*HistoryEntry, 0, len(ids))
	for _, id := range ids {
		amount, ok := r.amounts[id]
		if !ok {
			continue
		}
		entries = append(entries, &HistoryEntry{
			Consultation:     r.consultations[id],
			Patient:          r.patients[id],
			ReimbursedAmount: amount,
			Status:           StatusSuccess,
		})
	}
	return entries
}
