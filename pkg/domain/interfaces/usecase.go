package interfaces

import (
	"context"

	"github.com/slipway-dev/slipway/pkg/domain/model"
)

// ReleaseUseCase defines the merge-to-release flow
type ReleaseUseCase interface {
	// ProcessMerge runs the guard, validate and publish sequence for a
	// single merge event and reports the terminal outcome
	ProcessMerge(ctx context.Context, ev *model.MergeEvent) (*model.Outcome, error)
}

// EventProcessor consumes parsed webhook payloads
type EventProcessor interface {
	// ProcessEvent processes one webhook delivery
	ProcessEvent(ctx context.Context, eventType string, payload any) error
}
