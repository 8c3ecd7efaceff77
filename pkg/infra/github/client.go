package github

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"github.com/slipway-dev/slipway/pkg/domain/interfaces"
	"github.com/slipway-dev/slipway/pkg/domain/model"
	"github.com/slipway-dev/slipway/pkg/domain/types"
)

type client struct {
	githubClient *github.Client
}

// Option adjusts the underlying API client
type Option func(*github.Client) error

// WithBaseURL overrides the API endpoint, e.g. for GitHub Enterprise.
// The URL must end with a slash.
func WithBaseURL(rawURL string) Option {
	return func(c *github.Client) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return goerr.Wrap(err, "invalid API base URL", goerr.V("url", rawURL))
		}
		c.BaseURL = u
		return nil
	}
}

// NewTokenClient creates a release publisher authenticated with a personal
// access token
func NewTokenClient(ctx context.Context, token string, opts ...Option) (interfaces.ReleasePublisher, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return newClient(github.NewClient(oauth2.NewClient(ctx, ts)), opts)
}

// NewAppClient creates a release publisher with GitHub App installation
// authentication
func NewAppClient(appID, installationID int64, privateKey []byte, opts ...Option) (interfaces.ReleasePublisher, error) {
	itr, err := ghinstallation.New(http.DefaultTransport, appID, installationID, privateKey)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GitHub App transport")
	}

	return newClient(github.NewClient(&http.Client{Transport: itr}), opts)
}

func newClient(ghc *github.Client, opts []Option) (interfaces.ReleasePublisher, error) {
	for _, opt := range opts {
		if err := opt(ghc); err != nil {
			return nil, err
		}
	}

	return &client{githubClient: ghc}, nil
}

// CreateRelease creates a non-draft, non-prerelease release for the request
func (c *client) CreateRelease(ctx context.Context, req *model.ReleaseRequest) (*model.PublishedRelease, error) {
	rel := &github.RepositoryRelease{
		TagName:    github.Ptr(req.TagName),
		Name:       github.Ptr(req.Name),
		Body:       github.Ptr(req.Body),
		Draft:      github.Ptr(req.Draft),
		Prerelease: github.Ptr(req.Prerelease),
	}
	if req.TargetCommitish != "" {
		rel.TargetCommitish = github.Ptr(req.TargetCommitish)
	}

	created, _, err := c.githubClient.Repositories.CreateRelease(ctx, req.Owner, req.Repo, rel)
	if err != nil {
		return nil, classifyError(err, req)
	}

	return &model.PublishedRelease{
		ID:      created.GetID(),
		TagName: created.GetTagName(),
		Name:    created.GetName(),
		HTMLURL: created.GetHTMLURL(),
	}, nil
}

// classifyError maps a release API failure onto the error taxonomy: an
// existing tag is a conflict, rate limits and server errors are transient,
// every other HTTP rejection is fatal. Errors without an HTTP response are
// transport failures and count as transient.
func classifyError(err error, req *model.ReleaseRequest) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return goerr.Wrap(err, "release API rate limited",
			goerr.V("tag", req.TagName),
			goerr.T(types.ErrTagTransient),
		)
	}

	var errResp *github.ErrorResponse
	if !errors.As(err, &errResp) {
		return goerr.Wrap(err, "failed to call release API",
			goerr.V("tag", req.TagName),
			goerr.T(types.ErrTagTransient),
		)
	}

	status := 0
	if errResp.Response != nil {
		status = errResp.Response.StatusCode
	}

	switch {
	case status == http.StatusUnprocessableEntity && hasExistingTagError(errResp):
		return goerr.Wrap(err, "release tag already exists",
			goerr.V("tag", req.TagName),
			goerr.T(types.ErrTagConflict),
		)
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return goerr.Wrap(err, "release API temporarily unavailable",
			goerr.V("status", status),
			goerr.T(types.ErrTagTransient),
		)
	default:
		return goerr.Wrap(err, "release API rejected the request",
			goerr.V("status", status),
			goerr.V("tag", req.TagName),
			goerr.T(types.ErrTagFatal),
		)
	}
}

// hasExistingTagError reports whether a 422 carries the already_exists code
// on the tag_name field
func hasExistingTagError(errResp *github.ErrorResponse) bool {
	for _, e := range errResp.Errors {
		if e.Code == "already_exists" && e.Field == "tag_name" {
			return true
		}
	}
	return false
}
