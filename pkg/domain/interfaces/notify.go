package interfaces

import (
	"context"

	"github.com/slipway-dev/slipway/pkg/domain/model"
)

// Notifier announces a published release to an external channel
type Notifier interface {
	NotifyRelease(ctx context.Context, rel *model.PublishedRelease) error
}
