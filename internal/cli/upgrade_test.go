package cli

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLatestRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"tag_name": "v1.2.0",
			"html_url": "https://github.com/griffithind/runcompose/releases/tag/v1.2.0",
			"assets": [
				{"name": "runcompose-linux-amd64", "browser_download_url": "https://example.invalid/linux"},
				{"name": "runcompose-darwin-arm64", "browser_download_url": "https://example.invalid/darwin"}
			]
		}`))
	}))
	defer srv.Close()

	release, err := getLatestRelease(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", release.TagName)

	url, ok := release.assetURL("darwin", "arm64")
	assert.True(t, ok)
	assert.Equal(t, "https://example.invalid/darwin", url)

	_, ok = release.assetURL("windows", "386")
	assert.False(t, ok)
}

func TestGetLatestRelease_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := getLatestRelease(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "403")
}

func TestUpToDate(t *testing.T) {
	assert.True(t, upToDate("v1.0.0", "1.0.0"))
	assert.True(t, upToDate("1.0.0", "v1.0.0"))
	assert.False(t, upToDate("dev", "v1.0.0"))
	assert.False(t, upToDate("v1.0.0", "v1.0.1"))
}

func TestBinaryName(t *testing.T) {
	assert.Equal(t, "runcompose-linux-amd64", binaryName("linux", "amd64"))
}
