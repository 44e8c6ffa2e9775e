package scanner

import (
	"fmt"
	"sort"
	"strings"
)

// ScanStatus is the top-level outcome reported by the scan service.
type ScanStatus string

const (
	StatusClean        ScanStatus = "clean"
	StatusIssuesFound  ScanStatus = "issues_found"
	StatusLimitReached ScanStatus = "limit_reached"
	StatusError        ScanStatus = "error"
)

// Severity classifies a single finding. The service may introduce new
// levels at any time; unknown values rank at zero and never break callers.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// Rank maps a severity onto the fixed ordering used for sorting and
// threshold comparisons. Higher means worse.
func (s Severity) Rank() int {
	switch Severity(strings.ToLower(string(s))) {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseFailThreshold validates a --fail-on value. Only the three levels
// that make sense as blocking gates are accepted.
func ParseFailThreshold(raw string) (Severity, error) {
	switch s := Severity(strings.ToLower(strings.TrimSpace(raw))); s {
	case SeverityHigh, SeverityMedium, SeverityLow:
		return s, nil
	default:
		return "", fmt.Errorf("invalid fail-on value %q (use high, medium, or low)", raw)
	}
}

// ScanRequest is the payload submitted to the scan endpoint. Built once per
// target and never mutated afterwards.
type ScanRequest struct {
	URL    string `json:"url"`
	APIKey string `json:"api_key,omitempty"`
}

// Finding is a single issue the service reported for a target.
type Finding struct {
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
}

// CategoryResult summarizes one check category for a target.
type CategoryResult struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// ScanResult is the service response for one target. It flows read-only
// through interpretation and rendering; total_issues is trusted for display
// only, while pass/fail decisions always walk Findings.
type ScanResult struct {
	Status          ScanStatus                `json:"status"`
	TotalIssues     int                       `json:"total_issues"`
	Findings        []Finding                 `json:"findings"`
	Categories      map[string]CategoryResult `json:"categories"`
	ScanTimeSeconds float64                   `json:"scan_time_seconds"`
	Message         string                    `json:"message,omitempty"`
	URL             string                    `json:"url"`
}

// Report is the response of the report-creation endpoint.
type Report struct {
	URL string `json:"url"`
}

// Category keys the service reports on. CategoryOrder is the display order,
// which is deliberately not alphabetical.
const (
	CategorySSL        = "ssl"
	CategoryHeaders    = "headers"
	CategoryBlocklists = "blocklists"
)

var CategoryOrder = []string{CategorySSL, CategoryHeaders, CategoryBlocklists}

// CategoryLabel returns the human label for a category key. Unknown keys
// come back unchanged so new server-side categories still render.
func CategoryLabel(key string) string {
	switch key {
	case CategorySSL:
		return "SSL/TLS"
	case CategoryHeaders:
		return "Security headers"
	case CategoryBlocklists:
		return "Blocklist status"
	default:
		return key
	}
}

// SortFindings orders findings worst-first. The sort is stable so findings
// of equal severity keep the order the service returned them in.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Severity.Rank() > findings[j].Severity.Rank()
	})
}

// SortedFindings returns a worst-first copy, leaving the result untouched.
func (r *ScanResult) SortedFindings() []Finding {
	out := append([]Finding(nil), r.Findings...)
	SortFindings(out)
	return out
}

// MaxSeverityRank returns the rank of the worst finding, or zero when there
// are none.
func (r *ScanResult) MaxSeverityRank() int {
	max := 0
	for _, f := range r.Findings {
		if rank := f.Severity.Rank(); rank > max {
			max = rank
		}
	}
	return max
}
