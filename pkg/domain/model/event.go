package model

import "time"

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePullRequest WebhookEventType = "pull_request"
	EventTypeUnknown     WebhookEventType = "unknown"
)

// WebhookEvent represents a webhook event received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	Action     string           // Event action (e.g., opened, closed)
	Repository string           // Repository full name
	Sender     string           // Sender username
	ReceivedAt time.Time        // Time when the event was received
	RawPayload []byte           // Raw JSON payload
}

// IsSupportedEvent checks if the event can trigger a release. Only a closed
// pull request qualifies; whether it was actually merged is decided
// downstream so unmerged closes end up as a skip, not an error.
func (e *WebhookEvent) IsSupportedEvent() bool {
	return e.Type == EventTypePullRequest && e.Action == "closed"
}

// MergeEvent holds the fields of a pull request close that drive a release
// run. It is built once per invocation and never mutated.
type MergeEvent struct {
	Owner          string // Repository owner
	Repo           string // Repository name
	Number         int    // Pull request number
	Title          string // Pull request title, used as the release tag
	Body           string // Pull request body; empty when the PR has no description
	Merged         bool   // Whether the pull request was merged
	BaseBranch     string // Branch the pull request targeted
	MergeCommitSHA string // Merge commit the release tag will point at
	Sender         string // User who triggered the event
}
