package verification

import (
	"errors"
	"time"
)

// OutcomeState tells "not run" apart from "ran and failed" and "ran and succeeded".
type OutcomeState string

const (
	OutcomeSucceeded OutcomeState = "succeeded"
	OutcomeSkipped   OutcomeState = "skipped"
	OutcomeFailed    OutcomeState = "failed"
)

// Outcome is the tagged result of one check attempt.
type Outcome struct {
	Kind  CheckKind
	State OutcomeState
	// Reason is set for skipped and failed outcomes.
	Reason error
	// Apis holds raw provider payloads keyed by the name they are stored under
	// in the report's apis map.
	Apis       map[string]Payload
	Evaluation Evaluation
	Duration   time.Duration

	// Write-backs onto candidate records found while running the check.
	ResolvedUAN     string
	BeneficiaryName string
}

func Succeeded(kind CheckKind, apis map[string]Payload, eval Evaluation) Outcome {
	return Outcome{Kind: kind, State: OutcomeSucceeded, Apis: apis, Evaluation: eval}
}

func Skipped(kind CheckKind, reason error) Outcome {
	return Outcome{Kind: kind, State: OutcomeSkipped, Reason: reason}
}

func Failed(kind CheckKind, reason error) Outcome {
	return Outcome{Kind: kind, State: OutcomeFailed, Reason: reason}
}

// OutcomeFromError classifies a check error: missing input is a skip, anything
// else a failure.
func OutcomeFromError(kind CheckKind, err error) Outcome {
	if errors.Is(err, ErrMissingInput) {
		return Skipped(kind, err)
	}
	return Failed(kind, err)
}

// RunResult summarizes a pipeline invocation for the caller.
type RunResult struct {
	CandidateID uint
	Status      Status
	Score       int
	Outcomes    []Outcome
}

// Outcome returns the outcome recorded for kind, if any.
func (r *RunResult) Outcome(kind CheckKind) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			return o, true
		}
	}
	return Outcome{}, false
}
