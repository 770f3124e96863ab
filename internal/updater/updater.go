package updater

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/tilt-network/tilt/internal/branding"
)

const defaultAPIBase = "https://api.github.com"

// Release is the subset of a GitHub release the check needs.
type Release struct {
	TagName   string    `json:"tag_name"`
	HTMLURL   string    `json:"html_url"`
	Published time.Time `json:"published_at"`
}

// Status is the outcome of a version check.
type Status struct {
	Current         string
	Latest          *Release
	UpdateAvailable bool
}

// Checker looks up the latest release of the CLI.
type Checker struct {
	currentVersion string
	httpClient     *http.Client
	apiBase        string
	repo           string
}

// Option configures a Checker.
type Option func(*Checker)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(ch *Checker) {
		ch.httpClient = c
	}
}

// WithAPIBase points the checker at a GitHub API compatible host.
func WithAPIBase(base string) Option {
	return func(ch *Checker) {
		ch.apiBase = strings.TrimRight(base, "/")
	}
}

// New creates a Checker for the running version.
func New(currentVersion string, opts ...Option) *Checker {
	c := &Checker{
		currentVersion: currentVersion,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		apiBase:        defaultAPIBase,
		repo:           branding.GitHubRepo(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check fetches the latest release and compares it with the running version.
// A development build ("dev" or any non-semver string) never reports an update.
func (c *Checker) Check(ctx context.Context) (*Status, error) {
	rel, err := c.latest(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{Current: c.currentVersion, Latest: rel}
	newer, err := IsNewer(c.currentVersion, rel.TagName)
	if err == nil {
		st.UpdateAvailable = newer
	}
	return st, nil
}

func (c *Checker) latest(ctx context.Context) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.apiBase, c.repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", branding.CLIName()+"-updater")

	// Support optional GitHub token for higher rate limits.
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		req.Header.Set("Authorization", "token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching release: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("no published release for %s", c.repo)
	case http.StatusForbidden:
		return nil, fmt.Errorf("GitHub API rate limit exceeded. Set GITHUB_TOKEN for higher limits")
	default:
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, fmt.Errorf("parsing release JSON: %w", err)
	}
	if rel.TagName == "" {
		return nil, fmt.Errorf("release has no tag")
	}
	return &rel, nil
}

// IsNewer reports whether latest is a higher semantic version than current.
// Both may carry a leading "v".
func IsNewer(current, latest string) (bool, error) {
	cv, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing current version %q: %w", current, err)
	}
	lv, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("parsing latest version %q: %w", latest, err)
	}
	return lv.GreaterThan(cv), nil
}
