package slack

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/slipway-dev/slipway/pkg/domain/interfaces"
	"github.com/slipway-dev/slipway/pkg/domain/model"
)

type notifier struct {
	client  *slack.Client
	channel string
}

// New creates a Slack notifier that announces releases to the given channel
func New(token, channel string) interfaces.Notifier {
	return &notifier{
		client:  slack.New(token),
		channel: channel,
	}
}

// NotifyRelease posts a short announcement of the published release
func (n *notifier) NotifyRelease(ctx context.Context, rel *model.PublishedRelease) error {
	text := fmt.Sprintf(":ship: %s is out: %s", rel.Name, rel.HTMLURL)

	if _, _, err := n.client.PostMessageContext(ctx, n.channel,
		slack.MsgOptionText(text, false),
	); err != nil {
		return goerr.Wrap(err, "failed to post release notification",
			goerr.V("channel", n.channel),
			goerr.V("tag", rel.TagName),
		)
	}

	return nil
}
