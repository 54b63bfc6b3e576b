package constants

import "time"

const (
	// LaunchCheckDelay is the minimum delay before an update check, used at
	// first launch and whenever a check is overdue.
	LaunchCheckDelay = time.Second

	// UpdateCheckInterval is the period between automatic update checks.
	UpdateCheckInterval = 24 * time.Hour

	// UpdateCheckTimeout bounds a single network check.
	UpdateCheckTimeout = 30 * time.Second

	// DefaultUpdateFeedURL is the latest-version document queried by the
	// update checker.
	DefaultUpdateFeedURL = "https://snipkit.github.io/snipd/latest.json"
)
