// Package verification holds the rules of the background-verification workflow:
// check kinds, per-check scoring policy, the candidate status state machine and
// the error taxonomy shared by providers and the pipeline.
package verification

import (
	"fmt"
	"strings"
)

// CheckKind names one of the five independent background checks.
type CheckKind string

const (
	CheckIdentity    CheckKind = "identity"
	CheckEmployment  CheckKind = "employment"
	CheckCourt       CheckKind = "court"
	CheckAML         CheckKind = "aml"
	CheckBankAccount CheckKind = "bankAccount"
)

// AllChecks lists every check in pipeline order.
var AllChecks = []CheckKind{CheckIdentity, CheckEmployment, CheckCourt, CheckAML, CheckBankAccount}

// ScoredChecks are the checks whose report score feeds the candidate aggregate.
// Employment is tracked but not scored.
var ScoredChecks = []CheckKind{CheckIdentity, CheckCourt, CheckAML, CheckBankAccount}

// ParseCheckKind accepts the route spelling of a check (case-insensitive,
// "bank", "bank_account" and "bankAccount" all map to CheckBankAccount).
func ParseCheckKind(s string) (CheckKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identity":
		return CheckIdentity, nil
	case "employment":
		return CheckEmployment, nil
	case "court":
		return CheckCourt, nil
	case "aml":
		return CheckAML, nil
	case "bank", "bankaccount", "bank_account":
		return CheckBankAccount, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCheck, s)
}

func (k CheckKind) Scored() bool {
	return k != CheckEmployment
}

func (k CheckKind) Valid() bool {
	for _, c := range AllChecks {
		if c == k {
			return true
		}
	}
	return false
}

// CheckStatus is the per-check state stored on the candidate.
type CheckStatus string

const (
	CheckPending    CheckStatus = "pending"
	CheckAPIFailed  CheckStatus = "api_failed"
	CheckFailed     CheckStatus = "failed"
	CheckVerified   CheckStatus = "verified"
	CheckInProgress CheckStatus = "in_progress"
)
