package github

import (
	"context"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"

	"github.com/slipway-dev/slipway/pkg/domain/interfaces"
	"github.com/slipway-dev/slipway/pkg/domain/model"
	"github.com/slipway-dev/slipway/pkg/domain/types"
)

// EventProcessor turns GitHub webhook payloads into release runs
type EventProcessor struct {
	releaseUC interfaces.ReleaseUseCase
}

// NewEventProcessor creates a new GitHub event processor
func NewEventProcessor(releaseUC interfaces.ReleaseUseCase) *EventProcessor {
	return &EventProcessor{
		releaseUC: releaseUC,
	}
}

// ProcessEvent processes a GitHub webhook event
func (p *EventProcessor) ProcessEvent(ctx context.Context, eventType string, payload any) error {
	logger := ctxlog.From(ctx)

	switch eventType {
	case "pull_request":
		return p.processPullRequestEvent(ctx, payload)
	default:
		logger.Info("Ignoring unsupported event type", "event_type", eventType)
		return nil
	}
}

// processPullRequestEvent handles a pull_request event. Only the closed
// action is acted on; the merged flag is checked downstream so an unmerged
// close lands as a skip, not an error.
func (p *EventProcessor) processPullRequestEvent(ctx context.Context, payload any) error {
	logger := ctxlog.From(ctx)

	prEvent, ok := payload.(*github.PullRequestEvent)
	if !ok {
		logger.Warn("Invalid pull request event payload")
		return nil
	}

	if prEvent.GetAction() != "closed" {
		logger.Info("Ignoring pull request event with non-closed action",
			"action", prEvent.GetAction(),
		)
		return nil
	}

	ev, err := ExtractMergeEvent(prEvent)
	if err != nil {
		logger.Error("Failed to extract merge event", "error", err)
		return err
	}

	outcome, err := p.releaseUC.ProcessMerge(ctx, ev)
	if err != nil {
		return err
	}

	logger.Info("Merge event processed",
		"status", outcome.Status,
		"reason", outcome.Reason,
	)

	return nil
}

// ExtractMergeEvent pulls the fields that drive a release run out of a
// pull_request event. An absent body becomes the empty string; a missing
// repository, pull request or base branch is a malformed payload.
func ExtractMergeEvent(event *github.PullRequestEvent) (*model.MergeEvent, error) {
	if event.GetRepo() == nil {
		return nil, goerr.New("missing repository in pull request event",
			goerr.T(types.ErrTagMalformedPayload))
	}
	if event.GetPullRequest() == nil {
		return nil, goerr.New("missing pull request in event payload",
			goerr.T(types.ErrTagMalformedPayload))
	}

	owner := event.GetRepo().GetOwner().GetLogin()
	repo := event.GetRepo().GetName()
	pr := event.GetPullRequest()

	if owner == "" || repo == "" {
		return nil, goerr.New("missing required repository fields",
			goerr.V("owner", owner),
			goerr.V("repo", repo),
			goerr.T(types.ErrTagMalformedPayload),
		)
	}

	if pr.GetBase().GetRef() == "" {
		return nil, goerr.New("missing base branch in pull request",
			goerr.T(types.ErrTagMalformedPayload))
	}

	return &model.MergeEvent{
		Owner:          owner,
		Repo:           repo,
		Number:         pr.GetNumber(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		Merged:         pr.GetMerged(),
		BaseBranch:     pr.GetBase().GetRef(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
		Sender:         event.GetSender().GetLogin(),
	}, nil
}
