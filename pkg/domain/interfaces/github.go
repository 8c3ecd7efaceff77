package interfaces

import (
	"context"

	"github.com/slipway-dev/slipway/pkg/domain/model"
)

// ReleasePublisher defines operations against the release hosting API
type ReleasePublisher interface {
	// CreateRelease creates a non-draft release tagged req.TagName. When a
	// release with the same tag already exists the returned error carries
	// types.ErrTagConflict; nothing is duplicated or overwritten.
	CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error)
}
