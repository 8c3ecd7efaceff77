package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/slipway-dev/slipway/pkg/domain/interfaces"
	githubinfra "github.com/slipway-dev/slipway/pkg/infra/github"
)

// GitHub holds GitHub credentials. Either a personal access token or the
// App triple (ID, installation ID, private key) must be configured.
type GitHub struct {
	Token          string `masq:"secret"`
	WebhookSecret  string `masq:"secret"`
	AppID          int64
	InstallationID int64
	PrivateKeyFile string
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub personal access token",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SLIPWAY_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.Int64Flag{
			Name:        "github-app-id",
			Usage:       "GitHub App ID",
			Destination: &c.AppID,
			Sources:     cli.EnvVars("SLIPWAY_GITHUB_APP_ID"),
		},
		&cli.Int64Flag{
			Name:        "github-installation-id",
			Usage:       "GitHub App installation ID",
			Destination: &c.InstallationID,
			Sources:     cli.EnvVars("SLIPWAY_GITHUB_INSTALLATION_ID"),
		},
		&cli.StringFlag{
			Name:        "github-private-key-file",
			Usage:       "Path to the GitHub App private key",
			Destination: &c.PrivateKeyFile,
			Sources:     cli.EnvVars("SLIPWAY_GITHUB_PRIVATE_KEY_FILE"),
		},
	}
}

// WebhookFlags returns the flags only the webhook server needs
func (c *GitHub) WebhookFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-webhook-secret",
			Usage:       "GitHub webhook secret",
			Required:    true,
			Destination: &c.WebhookSecret,
			Sources:     cli.EnvVars("SLIPWAY_GITHUB_WEBHOOK_SECRET"),
		},
	}
}

// NewPublisher builds a release publisher from whichever credential set is
// configured, preferring the token when both are present
func (c *GitHub) NewPublisher(ctx context.Context) (interfaces.ReleasePublisher, error) {
	if c.Token != "" {
		return githubinfra.NewTokenClient(ctx, c.Token)
	}

	if c.AppID != 0 && c.InstallationID != 0 && c.PrivateKeyFile != "" {
		key, err := os.ReadFile(c.PrivateKeyFile)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read App private key",
				goerr.V("path", c.PrivateKeyFile))
		}
		return githubinfra.NewAppClient(c.AppID, c.InstallationID, key)
	}

	return nil, goerr.New("no GitHub credentials configured: set a token or App credentials")
}
