// Package update replaces the running dsdm binary with the latest GitHub release.
package update

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/creativeprojects/go-selfupdate"
)

const (
	repoOwner = "cameronsjo"
	repoName  = "dsdm"
)

// Release contains information about an available update.
type Release struct {
	Version     string
	ReleaseURL  string
	PublishedAt string
	Changelog   string
}

// Highlights returns at most n non-empty changelog lines and how many
// further lines were left out.
func (r *Release) Highlights(n int) ([]string, int) {
	var lines []string
	for _, line := range strings.Split(r.Changelog, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r "))
		}
	}
	if len(lines) <= n {
		return lines, 0
	}
	return lines[:n], len(lines) - n
}

// latest finds the newest release. It returns nil when currentVersion is
// already the newest.
func latest(ctx context.Context, currentVersion string) (*selfupdate.Updater, *selfupdate.Release, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, nil, fmt.Errorf("creating update source: %w", err)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{Source: source})
	if err != nil {
		return nil, nil, fmt.Errorf("creating updater: %w", err)
	}

	rel, found, err := updater.DetectLatest(ctx, selfupdate.NewRepositorySlug(repoOwner, repoName))
	if err != nil {
		return nil, nil, fmt.Errorf("detecting latest version: %w", err)
	}
	if !found {
		return nil, nil, fmt.Errorf("no releases found for %s/%s", repoOwner, repoName)
	}
	if rel.LessOrEqual(currentVersion) {
		return updater, nil, nil
	}

	return updater, rel, nil
}

func toRelease(rel *selfupdate.Release) *Release {
	return &Release{
		Version:     rel.Version(),
		ReleaseURL:  rel.URL,
		PublishedAt: rel.PublishedAt.Format("2006-01-02"),
		Changelog:   rel.ReleaseNotes,
	}
}

// CheckForUpdate reports whether a newer version is available.
func CheckForUpdate(ctx context.Context, currentVersion string) (*Release, bool, error) {
	_, rel, err := latest(ctx, currentVersion)
	if err != nil {
		return nil, false, err
	}
	if rel == nil {
		return nil, false, nil
	}
	return toRelease(rel), true, nil
}

// Update downloads and installs the latest version. It returns nil when
// already up to date.
func Update(ctx context.Context, currentVersion string) (*Release, error) {
	updater, rel, err := latest(ctx, currentVersion)
	if err != nil {
		return nil, err
	}
	if rel == nil {
		return nil, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("getting executable path: %w", err)
	}

	if err := updater.UpdateTo(ctx, rel, exe); err != nil {
		return nil, fmt.Errorf("updating binary: %w", err)
	}

	return toRelease(rel), nil
}

// GetPlatformInfo returns the current platform information.
func GetPlatformInfo() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
