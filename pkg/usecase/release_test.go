package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/slipway-dev/slipway/pkg/domain/model"
	"github.com/slipway-dev/slipway/pkg/domain/types"
	"github.com/slipway-dev/slipway/pkg/usecase"
)

// MockPublisher is a mock implementation of ReleasePublisher
type MockPublisher struct {
	createReleaseFunc func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error)
	createCalls       []*model.ReleaseRequest
}

func (m *MockPublisher) CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
	m.createCalls = append(m.createCalls, req)
	if m.createReleaseFunc != nil {
		return m.createReleaseFunc(ctx, req)
	}
	return nil, goerr.New("mock not configured")
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	notifyFunc  func(ctx context.Context, rel *model.PublishedRelease) error
	notifyCalls []*model.PublishedRelease
}

func (m *MockNotifier) NotifyRelease(ctx context.Context, rel *model.PublishedRelease) error {
	m.notifyCalls = append(m.notifyCalls, rel)
	if m.notifyFunc != nil {
		return m.notifyFunc(ctx, rel)
	}
	return nil
}

func mergedEvent() *model.MergeEvent {
	return &model.MergeEvent{
		Owner:          "slipway-dev",
		Repo:           "demo",
		Number:         42,
		Title:          "v1.2.0",
		Body:           "Notes",
		Merged:         true,
		BaseBranch:     "main",
		MergeCommitSHA: "abc123",
	}
}

func fastRetry(attempts int) usecase.RetryPolicy {
	return usecase.RetryPolicy{
		MaxAttempts: attempts,
		BaseDelay:   time.Millisecond,
		Timeout:     time.Second,
	}
}

func TestProcessMerge_Done(t *testing.T) {
	ctx := context.Background()

	mock := &MockPublisher{
		createReleaseFunc: func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
			return &model.PublishedRelease{
				ID:      123,
				TagName: req.TagName,
				Name:    req.Name,
				HTMLURL: "https://github.com/slipway-dev/demo/releases/tag/" + req.TagName,
			}, nil
		},
	}

	uc := usecase.NewRelease(mock)

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.NoError(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusCreated)
	gt.Value(t, outcome.Release.ID).Equal(int64(123))
	gt.Value(t, outcome.Release.TagName).Equal("v1.2.0")

	gt.Number(t, len(mock.createCalls)).Equal(1)
	req := mock.createCalls[0]
	gt.Value(t, req.TagName).Equal("v1.2.0")
	gt.Value(t, req.Name).Equal("Release v1.2.0")
	gt.Value(t, req.Body).Equal("Notes")
	gt.Value(t, req.Draft).Equal(false)
	gt.Value(t, req.Prerelease).Equal(false)
}

func TestProcessMerge_SkippedNotMerged(t *testing.T) {
	ctx := context.Background()
	mock := &MockPublisher{}
	uc := usecase.NewRelease(mock)

	ev := mergedEvent()
	ev.Merged = false

	outcome, err := uc.ProcessMerge(ctx, ev)
	gt.NoError(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusSkipped)
	gt.Value(t, outcome.Reason).Equal("pull request not merged")
	gt.Number(t, len(mock.createCalls)).Equal(0)
}

func TestProcessMerge_SkippedBranchMismatch(t *testing.T) {
	ctx := context.Background()
	mock := &MockPublisher{}
	uc := usecase.NewRelease(mock, usecase.WithTargetBranch("release"))

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.NoError(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusSkipped)
	gt.Value(t, outcome.Reason).Equal("base branch mismatch")
	gt.Number(t, len(mock.createCalls)).Equal(0)
}

func TestProcessMerge_InvalidFormat(t *testing.T) {
	ctx := context.Background()
	mock := &MockPublisher{}
	uc := usecase.NewRelease(mock)

	ev := mergedEvent()
	ev.Title = "1.2.0"

	outcome, err := uc.ProcessMerge(ctx, ev)
	gt.Error(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusFailed)
	gt.Value(t, goerr.HasTag(err, types.ErrTagInvalidFormat)).Equal(true)
	gt.Number(t, len(mock.createCalls)).Equal(0)
}

func TestProcessMerge_Conflict(t *testing.T) {
	ctx := context.Background()

	mock := &MockPublisher{
		createReleaseFunc: func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
			return nil, goerr.New("release tag already exists", goerr.T(types.ErrTagConflict))
		},
	}

	uc := usecase.NewRelease(mock, usecase.WithRetryPolicy(fastRetry(3)))

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.Error(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusFailed)
	gt.Value(t, goerr.HasTag(err, types.ErrTagConflict)).Equal(true)

	// Conflicts are never retried.
	gt.Number(t, len(mock.createCalls)).Equal(1)
}

func TestProcessMerge_FatalNotRetried(t *testing.T) {
	ctx := context.Background()

	mock := &MockPublisher{
		createReleaseFunc: func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
			return nil, goerr.New("bad credentials", goerr.T(types.ErrTagFatal))
		},
	}

	uc := usecase.NewRelease(mock, usecase.WithRetryPolicy(fastRetry(3)))

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.Error(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusFailed)
	gt.Value(t, goerr.HasTag(err, types.ErrTagFatal)).Equal(true)
	gt.Number(t, len(mock.createCalls)).Equal(1)
}

func TestProcessMerge_TransientThenSuccess(t *testing.T) {
	ctx := context.Background()

	attempt := 0
	mock := &MockPublisher{
		createReleaseFunc: func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
			attempt++
			if attempt < 3 {
				return nil, goerr.New("server error", goerr.T(types.ErrTagTransient))
			}
			return &model.PublishedRelease{ID: 7, TagName: req.TagName}, nil
		},
	}

	uc := usecase.NewRelease(mock, usecase.WithRetryPolicy(fastRetry(3)))

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.NoError(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusCreated)
	gt.Number(t, len(mock.createCalls)).Equal(3)
}

func TestProcessMerge_TransientExhausted(t *testing.T) {
	ctx := context.Background()

	mock := &MockPublisher{
		createReleaseFunc: func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
			return nil, goerr.New("server error", goerr.T(types.ErrTagTransient))
		},
	}

	uc := usecase.NewRelease(mock, usecase.WithRetryPolicy(fastRetry(3)))

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.Error(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusFailed)
	gt.Value(t, goerr.HasTag(err, types.ErrTagTransient)).Equal(true)
	gt.Number(t, len(mock.createCalls)).Equal(3)
}

func TestProcessMerge_NotifierCalled(t *testing.T) {
	ctx := context.Background()

	mock := &MockPublisher{
		createReleaseFunc: func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
			return &model.PublishedRelease{ID: 9, TagName: req.TagName}, nil
		},
	}
	notifier := &MockNotifier{}

	uc := usecase.NewRelease(mock, usecase.WithNotifier(notifier))

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.NoError(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusCreated)
	gt.Number(t, len(notifier.notifyCalls)).Equal(1)
	gt.Value(t, notifier.notifyCalls[0].TagName).Equal("v1.2.0")
}

func TestProcessMerge_NotifierFailureIsBestEffort(t *testing.T) {
	ctx := context.Background()

	mock := &MockPublisher{
		createReleaseFunc: func(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
			return &model.PublishedRelease{ID: 9, TagName: req.TagName}, nil
		},
	}
	notifier := &MockNotifier{
		notifyFunc: func(ctx context.Context, rel *model.PublishedRelease) error {
			return goerr.New("slack is down")
		},
	}

	uc := usecase.NewRelease(mock, usecase.WithNotifier(notifier))

	outcome, err := uc.ProcessMerge(ctx, mergedEvent())
	gt.NoError(t, err)
	gt.Value(t, outcome.Status).Equal(model.StatusCreated)
}
