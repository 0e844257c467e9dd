// Package releases queries release endpoints and selects the installable bundle of a release.
package releases

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v80/github"
	"github.com/roemer/extupdate/pkg/common"
	"github.com/samber/lo"
)

type FetcherSettings struct {
	// The logger to use for the fetcher.
	Logger *slog.Logger
	// Host rules that might apply when querying an endpoint.
	HostRules []*common.HostRule
	// The base url used to expand "github:owner/repo" endpoints.
	GitHubApiUrl string
	// The http client to use. Defaults to the default client.
	HttpClient *http.Client
}

// Fetches the latest release from endpoints that speak the GitHub release format.
type Fetcher struct {
	logger   *slog.Logger
	settings *FetcherSettings
}

func NewFetcher(settings *FetcherSettings) *Fetcher {
	return &Fetcher{
		logger:   settings.Logger.With(slog.String("component", "fetcher")),
		settings: settings,
	}
}

// Expands shorthand endpoints to a full url.
func (f *Fetcher) ExpandEndpoint(endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	if repository, ok := strings.CutPrefix(endpoint, common.GITHUB_SHORTHAND_PREFIX); ok {
		parts := strings.Split(strings.Trim(repository, "/"), "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", fmt.Errorf("invalid GitHub shorthand '%s', expected 'github:owner/repo'", endpoint)
		}
		apiUrl := lo.Ternary(f.settings.GitHubApiUrl != "", f.settings.GitHubApiUrl, common.DEFAULT_GITHUB_API_URL)
		return url.JoinPath(apiUrl, "repos", parts[0], parts[1], "releases", "latest")
	}
	parsedUrl, err := url.Parse(endpoint)
	if err != nil {
		return "", err
	}
	if parsedUrl.Scheme != "http" && parsedUrl.Scheme != "https" {
		return "", fmt.Errorf("unsupported update url '%s'", endpoint)
	}
	return endpoint, nil
}

// Queries the endpoint once and converts the answer into a release.
func (f *Fetcher) Fetch(ctx context.Context, endpoint string) (*common.ReleaseInfo, error) {
	endpointUrl, err := f.ExpandEndpoint(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	f.logger.Debug(fmt.Sprintf("Fetching release from %s", endpointUrl))

	client := f.getClient(endpointUrl)
	request, err := client.NewRequest(http.MethodGet, endpointUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	// Read the raw body so parsing errors can be told apart from transport errors
	var body bytes.Buffer
	if _, err := client.Do(ctx, request, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	return parseRelease(body.Bytes())
}

func (f *Fetcher) getClient(endpointUrl string) *github.Client {
	client := github.NewClient(f.settings.HttpClient)
	parsedUrl, err := url.Parse(endpointUrl)
	if err != nil {
		return client
	}
	relevantHostRule := common.GetHostRuleForHost(f.settings.HostRules, parsedUrl.Host)
	if relevantHostRule != nil {
		if token := relevantHostRule.TokendExpanded(); len(token) > 0 {
			client = client.WithAuthToken(token)
		}
	}
	return client
}

func parseRelease(body []byte) (*common.ReleaseInfo, error) {
	release := &github.RepositoryRelease{}
	if err := json.Unmarshal(body, release); err != nil {
		return nil, fmt.Errorf("%w: release is not valid json: %v", common.ErrParse, err)
	}
	if release.GetTagName() == "" {
		return nil, fmt.Errorf("%w: release has no 'tag_name'", common.ErrParse)
	}
	assets := lo.Map(release.Assets, func(asset *github.ReleaseAsset, _ int) *common.Asset {
		return &common.Asset{
			Name:        asset.GetName(),
			DownloadUrl: asset.GetBrowserDownloadURL(),
		}
	})
	return &common.ReleaseInfo{
		TagLabel: release.GetTagName(),
		Assets:   assets,
	}, nil
}
