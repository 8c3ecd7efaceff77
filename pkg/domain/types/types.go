package types

// Version is the application version, overridden at build time via ldflags.
var Version = "0.1.0"

// Exit codes reported by the run command. ExitSkipped follows the old
// GitHub Actions "neutral" convention so CI can tell a no-op from a failure.
const (
	ExitDone    = 0
	ExitFailed  = 1
	ExitSkipped = 78
)
