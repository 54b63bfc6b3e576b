package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Checker performs one update check. A nil VersionInfo with a nil error
// means no update is available. Implementations must honor the context.
type Checker interface {
	Check(ctx context.Context) (*VersionInfo, error)
}

// latestRelease is the latest-version document served by the update feed.
type latestRelease struct {
	Version      string `json:"version"`
	DownloadURL  string `json:"downloadUrl"`
	ReleaseNotes string `json:"releaseNotes"`
}

// HTTPChecker queries a JSON update feed and compares the published version
// against the running one.
type HTTPChecker struct {
	client       *http.Client
	feedURL      string
	currentMajor int
	currentMinor int
}

// NewHTTPChecker creates a checker for the given feed URL and running
// version. A nil client falls back to http.DefaultClient.
func NewHTTPChecker(client *http.Client, feedURL string, currentMajor, currentMinor int) *HTTPChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPChecker{
		client:       client,
		feedURL:      feedURL,
		currentMajor: currentMajor,
		currentMinor: currentMinor,
	}
}

// Check fetches the latest-version document and reports a VersionInfo when
// the published version is newer than the running one.
func (c *HTTPChecker) Check(ctx context.Context) (*VersionInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build update feed request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query update feed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("update feed returned status %d", resp.StatusCode)
	}

	var release latestRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode update feed: %w", err)
	}

	major, minor, err := ParseVersion(release.Version)
	if err != nil {
		return nil, fmt.Errorf("update feed has malformed version: %w", err)
	}

	info := &VersionInfo{
		Major:        major,
		Minor:        minor,
		DownloadURL:  release.DownloadURL,
		ReleaseNotes: release.ReleaseNotes,
	}
	if !info.NewerThan(c.currentMajor, c.currentMinor) {
		return nil, nil
	}
	return info, nil
}
