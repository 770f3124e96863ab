package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tilt-network/tilt/internal/logger"
)

const (
	defaultUserAgent = "tilt-cli"
	defaultTimeout   = 10 * time.Second

	// maxErrorBody caps how much of a rejected response body is kept.
	maxErrorBody = 64 << 10
)

// Client talks to the Tilt remote service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the per-request timeout on a dedicated HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogger sets the logger used for request traces.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		cl.logger = l
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New creates a Client for baseURL with the given options.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logger.Discard(),
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SignIn exchanges a secret key for a session token.
func (c *Client) SignIn(ctx context.Context, secretKey string) (*SignInResponse, error) {
	const op = "signing in"
	body, err := json.Marshal(map[string]string{"secret_key": secretKey})
	if err != nil {
		return nil, fmt.Errorf("%s: encoding request: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/sign_in/api_key", "", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out SignInResponse
	if err := c.doJSON(op, req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, fmt.Errorf("%s: response did not contain a token", op)
	}
	return &out, nil
}

// ListOrganizations returns the organizations visible to token, in service order.
func (c *Client) ListOrganizations(ctx context.Context, token string) ([]Organization, error) {
	const op = "listing organizations"
	req, err := c.newRequest(ctx, http.MethodGet, "/organizations", token, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var page Page[[]Organization]
	if err := c.doJSON(op, req, &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

// SelectOrganization confirms organizationID for the session and returns the
// token the service issues for it. The service may rotate the token.
func (c *Client) SelectOrganization(ctx context.Context, token, organizationID string) (string, error) {
	const op = "selecting organization"
	body, err := json.Marshal(map[string]string{"organization_id": organizationID})
	if err != nil {
		return "", fmt.Errorf("%s: encoding request: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/organizations/select", token, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out SelectOrganizationResponse
	if err := c.doJSON(op, req, &out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("%s: response did not contain a token", op)
	}
	return out.Token, nil
}

// ListPrograms returns one page of programs owned by organizationID.
// A missing or null data field is an empty page, not an error.
func (c *Client) ListPrograms(ctx context.Context, token, organizationID string, page, pageSize int) (*Page[[]Program], error) {
	const op = "listing programs"
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	q.Set("organization_id", organizationID)

	req, err := c.newRequest(ctx, http.MethodGet, "/programs?"+q.Encode(), token, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var out Page[[]Program]
	if err := c.doJSON(op, req, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		out.Data = []Program{}
	}
	return &out, nil
}

// UploadProgram sends u as a single multipart request. Any 2xx is success;
// other statuses are returned as *StatusError.
func (c *Client) UploadProgram(ctx context.Context, token string, u *Upload) (*UploadResult, error) {
	const op = "uploading program"
	body, contentType, err := encodeUpload(u)
	if err != nil {
		return nil, fmt.Errorf("%s: encoding form: %w", op, err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/programs", token, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, &NetworkError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if !isSuccess(resp.StatusCode) {
		return nil, &StatusError{Op: op, Status: resp.StatusCode, Body: string(data)}
	}
	return &UploadResult{Status: resp.StatusCode, Body: string(data)}, nil
}

// encodeUpload builds the multipart body: name, description, organization_id
// text parts followed by the binary program part.
func encodeUpload(u *Upload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct{ name, value string }{
		{"name", u.Name},
		{"description", u.Description},
		{"organization_id", u.OrganizationID},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="program"; filename=%q`, u.FileName))
	h.Set("Content-Type", u.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(u.Content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func (c *Client) newRequest(ctx context.Context, method, path, token string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends req and converts transport failures into *NetworkError.
func (c *Client) do(op string, req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()),
			slog.String("error", err.Error()),
		)
		return nil, &NetworkError{Op: op, Err: err}
	}
	c.logger.Debug("request completed",
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

// doJSON sends req and decodes a 2xx JSON body into out.
func (c *Client) doJSON(op string, req *http.Request, out any) error {
	resp, err := c.do(op, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Op: op, Status: resp.StatusCode, Body: string(data)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: fmt.Errorf("reading response body: %w", err)}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
