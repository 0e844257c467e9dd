package common

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

// Unexported type
type httpUtil struct{}

// exported global variable
var HttpUtil httpUtil

func (h httpUtil) DownloadToMemory(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file '%s'. Status code: %d", url, resp.StatusCode)
	}
	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return bodyBytes, nil
}

// Downloads the given url into the given file. The file is only created when the download succeeded.
func (h httpUtil) DownloadToFile(ctx context.Context, client *http.Client, downloadUrl string, filePath string, hostRules []*HostRule) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadUrl, nil)
	if err != nil {
		return err
	}
	if parsedUrl, err := url.Parse(downloadUrl); err == nil {
		if hostRule := GetHostRuleForHost(hostRules, parsedUrl.Host); hostRule != nil {
			h.AddBearerToRequest(request, hostRule.TokendExpanded())
			h.AddBasicAuth(request, hostRule.UsernameExpanded(), hostRule.PasswordExpanded())
		}
	}
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download file '%s'. Status code: %d", downloadUrl, resp.StatusCode)
	}

	// Write into a temporary file next to the target and move it once complete
	if err := os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
		return err
	}
	tempFile, err := os.CreateTemp(filepath.Dir(filePath), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tempFile.Name())
	if _, err := io.Copy(tempFile, resp.Body); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write file '%s': %w", filePath, err)
	}
	if err := tempFile.Close(); err != nil {
		return err
	}
	return os.Rename(tempFile.Name(), filePath)
}

func (h httpUtil) AddBearerToRequest(request *http.Request, token string) {
	if len(token) > 0 {
		request.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	}
}

func (h httpUtil) AddBasicAuth(request *http.Request, username, password string) {
	if len(username) > 0 && len(password) > 0 {
		request.SetBasicAuth(username, password)
	}
}
