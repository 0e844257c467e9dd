package releases

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roemer/extupdate/pkg/common"
	"github.com/stretchr/testify/assert"
)

const releaseJson = `{
	"tag_name": "v1.4.0",
	"name": "Release 1.4.0",
	"assets": [
		{"name": "source.zip", "browser_download_url": "https://example.com/source.zip"},
		{"name": "tiles.aseprite-extension", "browser_download_url": "https://example.com/tiles.aseprite-extension"}
	]
}`

func newTestFetcher(hostRules ...*common.HostRule) *Fetcher {
	return NewFetcher(&FetcherSettings{
		Logger:    slog.Default(),
		HostRules: hostRules,
	})
}

func TestFetchRelease(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(releaseJson))
	}))
	defer server.Close()

	release, err := newTestFetcher().Fetch(context.Background(), server.URL+"/repos/a/b/releases/latest")
	assert.NoError(err)
	assert.Equal("v1.4.0", release.TagLabel)
	assert.Len(release.Assets, 2)
	assert.Equal("source.zip", release.Assets[0].Name)
	assert.Equal("https://example.com/tiles.aseprite-extension", release.Assets[1].DownloadUrl)
}

func TestFetchReleaseWithoutAssets(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name": "2.0.0"}`))
	}))
	defer server.Close()

	release, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.NoError(err)
	assert.Equal("2.0.0", release.TagLabel)
	assert.Empty(release.Assets)
}

func TestFetchFollowsRedirects(t *testing.T) {
	assert := assert.New(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(releaseJson))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	release, err := newTestFetcher().Fetch(context.Background(), server.URL+"/old")
	assert.NoError(err)
	assert.Equal("v1.4.0", release.TagLabel)
}

func TestFetchInvalidJsonIsParseError(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.ErrorIs(err, common.ErrParse)
	assert.NotErrorIs(err, common.ErrNetwork)
}

func TestFetchMissingTagIsParseError(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"assets": []}`))
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.ErrorIs(err, common.ErrParse)
}

func TestFetchServerErrorIsNetworkError(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message": "Not Found"}`))
	}))
	defer server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), server.URL)
	assert.ErrorIs(err, common.ErrNetwork)
}

func TestFetchUnreachableIsNetworkError(t *testing.T) {
	assert := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := newTestFetcher().Fetch(context.Background(), endpoint)
	assert.ErrorIs(err, common.ErrNetwork)
}

func TestFetchAddsTokenFromHostRule(t *testing.T) {
	assert := assert.New(t)

	t.Setenv("EXTUPDATE_TEST_TOKEN", "secret")
	var authHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		w.Write([]byte(releaseJson))
	}))
	defer server.Close()

	fetcher := newTestFetcher(&common.HostRule{MatchHost: "127.0.0.1", Token: "$EXTUPDATE_TEST_TOKEN"})
	_, err := fetcher.Fetch(context.Background(), server.URL)
	assert.NoError(err)
	assert.Equal("Bearer secret", authHeader)
}

func TestExpandEndpoint(t *testing.T) {
	assert := assert.New(t)

	fetcher := newTestFetcher()
	expanded, err := fetcher.ExpandEndpoint("github:owner/repo")
	assert.NoError(err)
	assert.Equal("https://api.github.com/repos/owner/repo/releases/latest", expanded)

	fetcher = NewFetcher(&FetcherSettings{Logger: slog.Default(), GitHubApiUrl: "https://git.example.com/api/v3/"})
	expanded, err = fetcher.ExpandEndpoint("github:owner/repo")
	assert.NoError(err)
	assert.Equal("https://git.example.com/api/v3/repos/owner/repo/releases/latest", expanded)

	expanded, err = fetcher.ExpandEndpoint("https://example.com/latest.json")
	assert.NoError(err)
	assert.Equal("https://example.com/latest.json", expanded)

	_, err = fetcher.ExpandEndpoint("github:owner")
	assert.Error(err)
	_, err = fetcher.ExpandEndpoint("ftp://example.com/latest.json")
	assert.Error(err)
}
