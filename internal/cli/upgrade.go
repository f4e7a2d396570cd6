package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/minio/selfupdate"
	"github.com/spf13/cobra"

	"github.com/griffithind/runcompose/internal/ui"
	"github.com/griffithind/runcompose/internal/version"
)

const (
	repoOwner = "griffithind"
	repoName  = "runcompose"
)

// releasesURL is the GitHub API endpoint for the latest release.
var releasesURL = fmt.Sprintf("https://api.github.com/repos/%s/%s/releases/latest", repoOwner, repoName)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade runcompose to the latest version",
	Long: `Check for and install the latest version of runcompose from GitHub releases.

The binary will be replaced in-place. If the current version is already
the latest, no action is taken.`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

type githubRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// assetURL returns the download URL of the binary built for goos/goarch.
func (r *githubRelease) assetURL(goos, goarch string) (string, bool) {
	name := binaryName(goos, goarch)
	for _, asset := range r.Assets {
		if asset.Name == name {
			return asset.BrowserDownloadURL, true
		}
	}
	return "", false
}

func binaryName(goos, goarch string) string {
	return fmt.Sprintf("%s-%s-%s", repoName, goos, goarch)
}

// upToDate reports whether current already matches latest, ignoring a "v" prefix.
func upToDate(current, latest string) bool {
	return strings.TrimPrefix(current, "v") == strings.TrimPrefix(latest, "v")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
	defer cancel()

	ui.Println(ui.FormatLabel("Current version", version.Version))

	release, err := getLatestRelease(ctx, releasesURL)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	ui.Println(ui.FormatLabel("Latest version", release.TagName))

	if upToDate(version.Version, release.TagName) {
		ui.Success("Already up to date")
		return nil
	}
	if version.Version == "dev" {
		ui.Info("Running development version, upgrading to latest release")
	}

	downloadURL, ok := release.assetURL(runtime.GOOS, runtime.GOARCH)
	if !ok {
		return fmt.Errorf("no binary available for %s/%s", runtime.GOOS, runtime.GOARCH)
	}

	spinner := ui.StartSpinner(fmt.Sprintf("Downloading %s", binaryName(runtime.GOOS, runtime.GOARCH)))
	if err := applyUpdate(ctx, downloadURL); err != nil {
		spinner.Fail("Upgrade failed")
		return err
	}
	spinner.Success(fmt.Sprintf("Upgraded to %s", release.TagName))

	ui.Println(ui.FormatLabel("Release notes", release.HTMLURL))
	return nil
}

// applyUpdate downloads the binary at url and replaces the running executable.
func applyUpdate(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	if err := selfupdate.Apply(resp.Body, selfupdate.Options{}); err != nil {
		if rerr := selfupdate.RollbackError(err); rerr != nil {
			return fmt.Errorf("failed to install and rollback failed: %w", rerr)
		}
		return fmt.Errorf("failed to install: %w", err)
	}
	return nil
}

func getLatestRelease(ctx context.Context, url string) (*githubRelease, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned %d", resp.StatusCode)
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}

	return &release, nil
}
