package kaggle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// Client defines the Kaggle API operations the fetch pipeline needs.
type Client interface {
	DownloadDataset(ctx context.Context, dataset Dataset, destPath string) error
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type ClientConfig struct {
	BaseURL     string
	Credentials Credentials
	UserAgent   string
	HTTPClient  httpDoer
}

type HTTPClient struct {
	baseURL     string
	credentials Credentials
	userAgent   string
	httpClient  httpDoer
}

func NewClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("base URL is required")
	}
	baseURL = strings.TrimRight(baseURL, "/")

	parsedBase, err := url.Parse(baseURL)
	if err != nil || parsedBase.Scheme == "" || parsedBase.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", cfg.BaseURL)
	}

	if strings.TrimSpace(cfg.Credentials.Username) == "" || strings.TrimSpace(cfg.Credentials.Key) == "" {
		return nil, errors.New("credentials username and key are required")
	}

	doer := cfg.HTTPClient
	if doer == nil {
		doer = &http.Client{Timeout: 5 * time.Minute}
	}

	return &HTTPClient{
		baseURL:     baseURL,
		credentials: cfg.Credentials,
		userAgent:   strings.TrimSpace(cfg.UserAgent),
		httpClient:  doer,
	}, nil
}

// Dataset addresses a Kaggle dataset as owner/slug.
type Dataset struct {
	Owner string
	Slug  string
}

func ParseDataset(value string) (Dataset, error) {
	parts := strings.Split(strings.TrimSpace(value), "/")
	if len(parts) != 2 {
		return Dataset{}, fmt.Errorf("invalid dataset reference %q, expected owner/slug", value)
	}

	owner := strings.TrimSpace(parts[0])
	slug := strings.TrimSpace(parts[1])
	if owner == "" || slug == "" {
		return Dataset{}, fmt.Errorf("invalid dataset reference %q, expected owner/slug", value)
	}
	return Dataset{Owner: owner, Slug: slug}, nil
}

func (d Dataset) String() string {
	return d.Owner + "/" + d.Slug
}

// DownloadDataset streams the dataset archive to destPath.
func (c *HTTPClient) DownloadDataset(ctx context.Context, dataset Dataset, destPath string) error {
	endpointPath := fmt.Sprintf(
		"/api/v1/datasets/download/%s/%s",
		url.PathEscape(dataset.Owner),
		url.PathEscape(dataset.Slug),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpointPath, nil)
	if err != nil {
		return fmt.Errorf("create request GET %s: %w", endpointPath, err)
	}

	req.SetBasicAuth(c.credentials.Username, c.credentials.Key)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download dataset %s failed: %w", dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf(
			"download dataset %s failed with status %d: %s",
			dataset,
			resp.StatusCode,
			strings.TrimSpace(string(responseBody)),
		)
	}

	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create archive file %s: %w", destPath, err)
	}

	if _, err := io.Copy(file, resp.Body); err != nil {
		_ = file.Close()
		return fmt.Errorf("write archive file %s: %w", destPath, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close archive file %s: %w", destPath, err)
	}

	return nil
}
