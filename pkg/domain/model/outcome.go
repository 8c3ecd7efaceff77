package model

import "github.com/slipway-dev/slipway/pkg/domain/types"

// OutcomeStatus is the terminal state of one release pass
type OutcomeStatus string

const (
	StatusCreated OutcomeStatus = "created"
	StatusSkipped OutcomeStatus = "skipped"
	StatusFailed  OutcomeStatus = "failed"
)

// Outcome is the terminal, externally reported result of a release pass.
// Exactly one of Release, Reason and Err is meaningful depending on Status.
type Outcome struct {
	Status  OutcomeStatus
	Release *PublishedRelease // set when Status is StatusCreated
	Reason  string            // set when Status is StatusSkipped
	Err     error             // set when Status is StatusFailed
}

// Created builds the outcome for a successfully published release
func Created(rel *PublishedRelease) *Outcome {
	return &Outcome{Status: StatusCreated, Release: rel}
}

// Skipped builds the neutral outcome for a run that had nothing to publish
func Skipped(reason string) *Outcome {
	return &Outcome{Status: StatusSkipped, Reason: reason}
}

// Failed builds the outcome for a run that ended in an error
func Failed(err error) *Outcome {
	return &Outcome{Status: StatusFailed, Err: err}
}

// ExitCode maps the outcome to the process exit code reported by one-shot runs
func (o *Outcome) ExitCode() int {
	switch o.Status {
	case StatusCreated:
		return types.ExitDone
	case StatusSkipped:
		return types.ExitSkipped
	default:
		return types.ExitFailed
	}
}
