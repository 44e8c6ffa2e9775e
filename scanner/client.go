package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the hosted scan API.
	DefaultBaseURL = "https://api.webscan.dev"
	// DefaultSiteURL is the public site, used as the details link whenever
	// no shareable report exists.
	DefaultSiteURL = "https://webscan.dev"
	// PricingURL is shown when the free scan limit is reached.
	PricingURL = "https://webscan.dev/pricing"

	// DefaultTimeout bounds a scan call end to end. The server enforces its
	// own budget; this one exists so a hung connection can never stall a
	// pipeline.
	DefaultTimeout = 30 * time.Second

	// reportTimeout bounds the report-creation call. It is deliberately
	// fixed and independent of the scan timeout: the report is a nicety and
	// not worth waiting long for.
	reportTimeout = 10 * time.Second

	scanPath   = "/v1/scan"
	reportPath = "/v1/reports"
)

// Options configures a Client. The zero value works: anonymous scans
// against the hosted API with the default timeout.
type Options struct {
	// APIKey authenticates paid-tier scans. Empty means anonymous.
	APIKey string
	// BaseURL overrides the API endpoint, mainly for tests.
	BaseURL string
	// Timeout bounds each scan call. Zero means DefaultTimeout.
	Timeout time.Duration
	// HTTPClient overrides the transport. Nil means a plain http.Client;
	// per-call deadlines come from contexts, not the client.
	HTTPClient *http.Client
	// Logger receives request diagnostics at debug level. Nil means none.
	Logger *zap.Logger
}

// Client talks to the WebScan API. Endpoints are plain configuration data
// so tests can point a Client at a local server.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
	logger  *zap.Logger
}

// NewClient builds a Client, filling in defaults for anything unset.
func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: base,
		apiKey:  opts.APIKey,
		timeout: timeout,
		http:    httpClient,
		logger:  logger,
	}
}

// Scan runs a single scan with default settings. Embedders that need
// endpoint or transport control build a Client instead.
func Scan(ctx context.Context, target string, opts Options) (*ScanResult, error) {
	return NewClient(opts).Scan(ctx, target)
}

// Scan submits target to the scan endpoint and decodes the result. The
// request is aborted once the client timeout elapses, independent of any
// server-side budget. All failures come back as *InvalidTargetError or
// *ScanError.
func (c *Client) Scan(ctx context.Context, target string) (*ScanResult, error) {
	if err := ValidateTarget(target); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := ScanRequest{URL: target, APIKey: c.apiKey}
	var result ScanResult
	if err := c.postJSON(ctx, scanPath, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// reportFinding pads a Finding into the report schema. The extra fields are
// populated server-side; the client always submits them empty.
type reportFinding struct {
	Title    string `json:"title"`
	Severity string `json:"severity"`
	Category string `json:"category"`
	Summary  string `json:"summary"`
	Evidence string `json:"evidence"`
	Fix      string `json:"fix"`
}

type reportRequest struct {
	TargetURL       string                    `json:"target_url"`
	Findings        []reportFinding           `json:"findings"`
	Categories      map[string]CategoryResult `json:"categories"`
	TotalIssues     int                       `json:"total_issues"`
	ScanTimeSeconds float64                   `json:"scan_time_seconds"`
	Message         string                    `json:"message,omitempty"`
}

// CreateReport persists a shareable report for a completed scan and returns
// its public URL. It runs under its own fixed deadline so a slow report
// service cannot hold a finished scan hostage. Failures here are expected
// to be swallowed by callers; the scan result stands on its own.
func (c *Client) CreateReport(ctx context.Context, res *ScanResult, message string) (*Report, error) {
	findings := make([]reportFinding, 0, len(res.Findings))
	for _, f := range res.Findings {
		findings = append(findings, reportFinding{
			Title:    f.Title,
			Severity: string(f.Severity),
			Category: f.Category,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, reportTimeout)
	defer cancel()

	req := reportRequest{
		TargetURL:       res.URL,
		Findings:        findings,
		Categories:      res.Categories,
		TotalIssues:     res.TotalIssues,
		ScanTimeSeconds: res.ScanTimeSeconds,
		Message:         message,
	}
	var report Report
	if err := c.postJSON(ctx, reportPath, req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ResolveDetailsURL returns the link shown on the details line: the
// shareable report when one was requested and could be created, otherwise
// the public site. Report creation is attempted only for completed scans;
// its failure is logged at debug level and never surfaces.
func (c *Client) ResolveDetailsURL(ctx context.Context, res *ScanResult, share bool, message string) string {
	if !share || res == nil {
		return DefaultSiteURL
	}
	if res.Status != StatusClean && res.Status != StatusIssuesFound {
		return DefaultSiteURL
	}
	report, err := c.CreateReport(ctx, res, message)
	if err != nil {
		c.logger.Debug("report creation failed", zap.String("target", res.URL), zap.Error(err))
		return DefaultSiteURL
	}
	if report.URL == "" {
		return DefaultSiteURL
	}
	return report.URL
}

func (c *Client) postJSON(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return &ScanError{Kind: KindDecode, Message: fmt.Sprintf("encode request: %v", err), Err: err}
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return &ScanError{Kind: KindTransport, Message: fmt.Sprintf("build request for %s: %v", url, err), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	budget := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		budget = time.Until(deadline).Round(time.Second)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return normalizeTransportError(url, budget, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalizeTransportError(url, budget, err)
	}

	c.logger.Debug("api call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ScanError{
			Kind:       KindHTTP,
			StatusCode: resp.StatusCode,
			Message:    apiErrorMessage(resp.StatusCode, data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ScanError{
			Kind:    KindDecode,
			Message: "the scan service returned a response that could not be read",
			Err:     err,
		}
	}
	return nil
}

func normalizeTransportError(url string, budget time.Duration, err error) *ScanError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &ScanError{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("the scan did not finish within %s", budget),
			Err:     err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &ScanError{Kind: KindTransport, Message: "the scan was cancelled", Err: err}
	}
	return &ScanError{
		Kind:    KindTransport,
		Message: fmt.Sprintf("could not reach %s: %v", url, err),
		Err:     err,
	}
}

// apiErrorMessage extracts the human-readable message from an error body.
// The service uses "detail" for validation failures and "message" for
// everything else; an unreadable body falls back to the bare status.
func apiErrorMessage(status int, body []byte) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}
