package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/slipway-dev/slipway/pkg/usecase"
)

// Release holds the release policy configuration
type Release struct {
	TargetBranch string
	MaxAttempts  int
	Timeout      time.Duration
}

// Flags returns CLI flags for release policy configuration
func (c *Release) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "target-branch",
			Usage:       "Branch merges are released from",
			Value:       "main",
			Destination: &c.TargetBranch,
			Sources:     cli.EnvVars("SLIPWAY_TARGET_BRANCH"),
		},
		&cli.IntFlag{
			Name:        "publish-max-attempts",
			Usage:       "Publish attempts before giving up on transient failures",
			Value:       3,
			Destination: &c.MaxAttempts,
			Sources:     cli.EnvVars("SLIPWAY_PUBLISH_MAX_ATTEMPTS"),
		},
		&cli.DurationFlag{
			Name:        "publish-timeout",
			Usage:       "Timeout per publish attempt",
			Value:       30 * time.Second,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("SLIPWAY_PUBLISH_TIMEOUT"),
		},
	}
}

// Policy converts the configuration into the use case retry policy
func (c *Release) Policy() usecase.RetryPolicy {
	p := usecase.DefaultRetryPolicy()
	if c.MaxAttempts > 0 {
		p.MaxAttempts = c.MaxAttempts
	}
	if c.Timeout > 0 {
		p.Timeout = c.Timeout
	}
	return p
}
