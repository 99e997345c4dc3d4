package reimbursement

import (
	"github.com/google/uuid"

	"github.com/reimburse/reimburse/internal/platform/money"
)

// Consultation is a single medical consultation submitted for reimbursement.
// Amount and CoveragePercentage are pointers because both may be absent in a
// request: a missing amount is a validation error, a missing percentage is
// legal when an insurance plan supplies the rate instead.
//
// ID is assigned at the API boundary and is the identity the history store
// joins on. Two consultations with identical values are distinct entries.
type Consultation struct {
	ID                 uuid.UUID      `json:"-"`
	Amount             *money.Money   `json:"amount"`
	CoveragePercentage *money.Percent `json:"coveragePercentage"`
}

// Patient identifies who the reimbursement is owed to. TaxID is the history
// lookup key.
type Patient struct {
	Name  string `json:"name"`
	TaxID string `json:"taxId"`
}

// PlaceholderPatient is the synthesized identity used when the caller does
// not supply a real patient.
func PlaceholderPatient() *Patient {
	return &Patient{Name: "Dummy", TaxID: "000.000.000-00"}
}

// HistoryEntry records one successful calculation. Entries are immutable
// once created.
type HistoryEntry struct {
	Consultation     *Consultation
	Patient          Patient
	ReimbursedAmount money.Money
	Status           string
}

// StatusSuccess marks history entries for completed calculations.
const StatusSuccess = "success"
