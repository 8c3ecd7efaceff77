package config

import (
	"github.com/urfave/cli/v3"

	"github.com/slipway-dev/slipway/pkg/domain/interfaces"
	slackinfra "github.com/slipway-dev/slipway/pkg/infra/slack"
)

// Slack holds the optional release announcement configuration
type Slack struct {
	Token   string `masq:"secret"`
	Channel string
}

// Flags returns CLI flags for Slack configuration
func (c *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-token",
			Usage:       "Slack bot token for release announcements",
			Destination: &c.Token,
			Sources:     cli.EnvVars("SLIPWAY_SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel for release announcements",
			Destination: &c.Channel,
			Sources:     cli.EnvVars("SLIPWAY_SLACK_CHANNEL"),
		},
	}
}

// Enabled reports whether announcements are configured
func (c *Slack) Enabled() bool {
	return c.Token != "" && c.Channel != ""
}

// NewNotifier creates the Slack notifier; call only when Enabled
func (c *Slack) NewNotifier() interfaces.Notifier {
	return slackinfra.New(c.Token, c.Channel)
}
