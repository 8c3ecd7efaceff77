package cli

import (
	"context"
	"os"

	"github.com/google/go-github/v75/github"
	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/slipway-dev/slipway/pkg/cli/config"
	githubctrl "github.com/slipway-dev/slipway/pkg/controller/github"
	"github.com/slipway-dev/slipway/pkg/domain/model"
	"github.com/slipway-dev/slipway/pkg/domain/types"
	"github.com/slipway-dev/slipway/pkg/usecase"
)

func cmdRun() *cli.Command {
	var (
		githubCfg  config.GitHub
		releaseCfg config.Release
		slackCfg   config.Slack
		eventFile  string
	)

	flags := append(githubCfg.Flags(), releaseCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "event-file",
		Usage:       "Path to the pull_request event payload JSON (e.g. $GITHUB_EVENT_PATH)",
		Required:    true,
		Destination: &eventFile,
		Sources:     cli.EnvVars("SLIPWAY_EVENT_FILE", "GITHUB_EVENT_PATH"),
	})

	return &cli.Command{
		Name:  "run",
		Usage: "Publish a release for a single merge event payload",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx).With("run_id", uuid.NewString())
			ctx = ctxlog.With(ctx, logger)

			ev, err := loadMergeEvent(eventFile)
			if err != nil {
				logger.Error("Failed to load event payload", "error", err, "path", eventFile)
				return cli.Exit(err.Error(), types.ExitFailed)
			}

			publisher, err := githubCfg.NewPublisher(ctx)
			if err != nil {
				logger.Error("Failed to configure publisher", "error", err)
				return cli.Exit(err.Error(), types.ExitFailed)
			}

			opts := []usecase.Option{
				usecase.WithTargetBranch(releaseCfg.TargetBranch),
				usecase.WithRetryPolicy(releaseCfg.Policy()),
			}
			if slackCfg.Enabled() {
				opts = append(opts, usecase.WithNotifier(slackCfg.NewNotifier()))
			}

			uc := usecase.NewRelease(publisher, opts...)

			outcome, err := uc.ProcessMerge(ctx, ev)
			if err != nil {
				code := types.ExitFailed
				if outcome != nil {
					code = outcome.ExitCode()
				}
				return cli.Exit(err.Error(), code)
			}

			if outcome.Status == model.StatusSkipped {
				logger.Info("Nothing to publish", "reason", outcome.Reason)
				return cli.Exit("", outcome.ExitCode())
			}

			logger.Info("Release published",
				"tag", outcome.Release.TagName,
				"url", outcome.Release.HTMLURL,
			)
			return nil
		},
	}
}

// loadMergeEvent reads a pull_request event payload from disk and extracts
// the merge event
func loadMergeEvent(path string) (*model.MergeEvent, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read event payload", goerr.V("path", path))
	}

	payload, err := github.ParseWebHook("pull_request", raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse event payload",
			goerr.T(types.ErrTagMalformedPayload))
	}

	prEvent, ok := payload.(*github.PullRequestEvent)
	if !ok {
		return nil, goerr.New("payload is not a pull_request event",
			goerr.T(types.ErrTagMalformedPayload))
	}

	return githubctrl.ExtractMergeEvent(prEvent)
}
