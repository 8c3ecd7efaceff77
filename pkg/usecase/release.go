package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/slipway-dev/slipway/pkg/domain/interfaces"
	"github.com/slipway-dev/slipway/pkg/domain/model"
	"github.com/slipway-dev/slipway/pkg/domain/types"
)

// RetryPolicy bounds the publish call. Only transient publisher errors are
// retried; the delay doubles after each failed attempt.
type RetryPolicy struct {
	MaxAttempts int           // Total attempts including the first one
	BaseDelay   time.Duration // Delay before the first retry
	Timeout     time.Duration // Per-attempt timeout on the API call
}

// DefaultRetryPolicy returns the bounds used when nothing is configured
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		Timeout:     30 * time.Second,
	}
}

type releaseUseCase struct {
	publisher    interfaces.ReleasePublisher
	notifier     interfaces.Notifier
	targetBranch string
	retry        RetryPolicy
}

// Option configures the release use case
type Option func(*releaseUseCase)

// WithNotifier enables release announcements after a successful publish
func WithNotifier(n interfaces.Notifier) Option {
	return func(uc *releaseUseCase) {
		uc.notifier = n
	}
}

// WithTargetBranch overrides the branch releases are cut from (default "main")
func WithTargetBranch(branch string) Option {
	return func(uc *releaseUseCase) {
		if branch != "" {
			uc.targetBranch = branch
		}
	}
}

// WithRetryPolicy overrides the publish retry bounds
func WithRetryPolicy(p RetryPolicy) Option {
	return func(uc *releaseUseCase) {
		if p.MaxAttempts > 0 {
			uc.retry = p
		}
	}
}

// NewRelease creates a new instance of ReleaseUseCase
func NewRelease(publisher interfaces.ReleasePublisher, opts ...Option) interfaces.ReleaseUseCase {
	uc := &releaseUseCase{
		publisher:    publisher,
		targetBranch: "main",
		retry:        DefaultRetryPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// ProcessMerge runs the guard, validate and publish sequence for one merge
// event. Unmerged closes and base branch mismatches end as Skipped without
// ever touching the publisher; an invalid title or a publish failure ends as
// Failed with the error returned alongside.
func (uc *releaseUseCase) ProcessMerge(ctx context.Context, ev *model.MergeEvent) (*model.Outcome, error) {
	logger := ctxlog.From(ctx)

	logger.Info("Processing merge event",
		"owner", ev.Owner,
		"repo", ev.Repo,
		"number", ev.Number,
		"title", ev.Title,
		"merged", ev.Merged,
		"base_branch", ev.BaseBranch,
	)

	if !ev.Merged {
		logger.Info("Skipping: pull request closed without merge", "number", ev.Number)
		return model.Skipped("pull request not merged"), nil
	}

	if ev.BaseBranch != uc.targetBranch {
		logger.Info("Skipping: base branch does not match release target",
			"base_branch", ev.BaseBranch,
			"target_branch", uc.targetBranch,
		)
		return model.Skipped("base branch mismatch"), nil
	}

	req, err := model.NewReleaseRequest(ev)
	if err != nil {
		logger.Error("Rejected release title", "error", err, "title", ev.Title)
		return model.Failed(err), err
	}

	rel, err := uc.publish(ctx, req)
	if err != nil {
		logger.Error("Failed to publish release", "error", err, "tag", req.TagName)
		return model.Failed(err), err
	}

	logger.Info("Published release",
		"release_id", rel.ID,
		"tag", rel.TagName,
		"url", rel.HTMLURL,
	)

	if uc.notifier != nil {
		// Announcements are best effort; the release itself already succeeded.
		if err := uc.notifier.NotifyRelease(ctx, rel); err != nil {
			logger.Warn("Failed to send release notification", "error", err)
		}
	}

	return model.Created(rel), nil
}

// publish calls the publisher with a bounded per-attempt timeout, retrying
// transient failures with exponential backoff. Conflict and fatal errors are
// returned immediately.
func (uc *releaseUseCase) publish(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
	logger := ctxlog.From(ctx)

	delay := uc.retry.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= uc.retry.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, uc.retry.Timeout)
		rel, err := uc.publisher.CreateRelease(attemptCtx, req)
		cancel()

		if err == nil {
			return rel, nil
		}

		if !goerr.HasTag(err, types.ErrTagTransient) {
			return nil, err
		}

		lastErr = err
		if attempt == uc.retry.MaxAttempts {
			break
		}

		logger.Warn("Transient publish failure, retrying",
			"error", err,
			"attempt", attempt,
			"delay", delay.String(),
		)

		select {
		case <-ctx.Done():
			return nil, goerr.Wrap(ctx.Err(), "publish cancelled",
				goerr.V("tag", req.TagName),
				goerr.T(types.ErrTagTransient),
			)
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, goerr.Wrap(lastErr, "publish retries exhausted",
		goerr.V("attempts", uc.retry.MaxAttempts),
		goerr.V("tag", req.TagName),
		goerr.T(types.ErrTagTransient),
	)
}
