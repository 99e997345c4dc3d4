package reimbursement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/reimburse/reimburse/internal/platform/money"
)

// HistoryRepoPG is a Postgres-backed drop-in for the in-memory history
// store, wired when DATABASE_URL is configured. Same contract: append-only,
// insertion order, amount-less rows excluded from queries.
type HistoryRepoPG struct {
	pool *pgxpool.Pool
}

func NewHistoryRepoPG(pool *pgxpool.Pool) *HistoryRepoPG {
	return &HistoryRepoPG{pool: pool}
}

// Init creates the history table when it does not exist yet.
func (r *HistoryRepoPG) Init(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS reimbursement_history (
			seq                 BIGSERIAL PRIMARY KEY,
			consultation_id     UUID NOT NULL UNIQUE,
			amount              NUMERIC(12,2) NOT NULL,
			coverage_percentage NUMERIC(5,4),
			patient_name        TEXT NOT NULL,
			patient_tax_id      TEXT NOT NULL,
			reimbursed_amount   NUMERIC(12,2),
			created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_reimbursement_history_tax_id
			ON reimbursement_history (patient_tax_id)`)
	if err != nil {
		return fmt.Errorf("init reimbursement history table: %w", err)
	}
	return nil
}

func (r *HistoryRepoPG) Save(ctx context.Context, cons *Consultation, patient *Patient) error {
	return r.insert(ctx, cons, patient, nil)
}

func (r *HistoryRepoPG) SaveWithAmount(ctx context.Context, cons *Consultation, patient *Patient, amount money.Money) error {
	s := amount.String()
	return r.insert(ctx, cons, patient, &s)
}

func (r *HistoryRepoPG) insert(ctx context.Context, cons *Consultation, patient *Patient, reimbursed *string) error {
	if cons == nil || patient == nil {
		return NewInvalidInput("consultation and patient are required")
	}
	var pct *string
	if cons.CoveragePercentage != nil {
		s := cons.CoveragePercentage.String()
		pct = &s
	}
	var amount *string
	if cons.Amount != nil {
		s := cons.Amount.String()
		amount = &s
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reimbursement_history
			(consultation_id, amount, coverage_percentage, patient_name, patient_tax_id, reimbursed_amount)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		cons.ID, amount, pct, patient.Name, patient.TaxID, reimbursed)
	if err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}
	return nil
}

func (r *HistoryRepoPG) FindAll(ctx context.Context) ([]*HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT consultation_id::text, amount::text, coverage_percentage::text,
		       patient_name, patient_tax_id, reimbursed_amount::text
		FROM reimbursement_history
		WHERE reimbursed_amount IS NOT NULL
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *HistoryRepoPG) FindByPatient(ctx context.Context, taxID string) ([]*HistoryEntry, error) {
	if taxID == "" {
		return []*HistoryEntry{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT consultation_id::text, amount::text, coverage_percentage::text,
		       patient_name, patient_tax_id, reimbursed_amount::text
		FROM reimbursement_history
		WHERE reimbursed_amount IS NOT NULL AND patient_tax_id = $1
		ORDER BY seq`, taxID)
	if err != nil {
		return nil, fmt.Errorf("query history by patient: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*HistoryEntry, error) {
	entries := []*HistoryEntry{}
	for rows.Next() {
		var (
			idStr, amountStr, name, taxID, reimbursedStr string
			pctStr                                       *string
		)
		if err := rows.Scan(&idStr, &amountStr, &pctStr, &name, &taxID, &reimbursedStr); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse consultation id: %w", err)
		}
		amount, err := money.FromString(amountStr)
		if err != nil {
			return nil, err
		}
		reimbursed, err := money.FromString(reimbursedStr)
		if err != nil {
			return nil, err
		}
		cons := &Consultation{ID: id, Amount: &amount}
		if pctStr != nil {
			pct, err := money.PercentFromString(*pctStr)
			if err != nil {
				return nil, err
			}
			cons.CoveragePercentage = &pct
		}
		entries = append(entries, &HistoryEntry{
			Consultation:     cons,
			Patient:          Patient{Name: name, TaxID: taxID},
			ReimbursedAmount: reimbursed,
			Status:           StatusSuccess,
		})
	}
	return entries, rows.Err()
}
