package reimbursement

import (
	"github.com/reimburse/reimburse/internal/platform/money"
)

// AuthorizationResult is the outcome of one eligibility check. It is
// produced fresh per check and never persisted.
type AuthorizationResult struct {
	Authorized   bool
	DenialReason string
}

// Authorizer decides whether a consultation is eligible for reimbursement.
// It is an optional collaborator of the Service: when none is configured,
// every consultation is treated as authorized.
type Authorizer interface {
	Authorize(cons *Consultation, patient *Patient) AuthorizationResult
}

var authorizationLimit = money.MustFromString("2000.00")

// LimitAuthorizer denies consultations whose amount strictly exceeds a
// fixed limit. A consultation at exactly the limit is authorized.
type LimitAuthorizer struct {
	limit money.Money
}

func NewLimitAuthorizer() *LimitAuthorizer {
	return &LimitAuthorizer{limit: authorizationLimit}
}

func (a *LimitAuthorizer) Authorize(cons *Consultation, _ *Patient) AuthorizationResult {
	if cons == nil || cons.Amount == nil {
		return AuthorizationResult{DenialReason: "invalid consultation data"}
	}
	if cons.Amount.GreaterThan(a.limit) {
		return AuthorizationResult{
			DenialReason: "consultation amount exceeds the reimbursement limit of " + a.limit.String(),
		}
	}
	return AuthorizationResult{Authorized: true}
}
