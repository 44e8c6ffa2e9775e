package scanner

// DefaultFailThreshold is the severity gate applied when --fail is set
// without an explicit --fail-on.
const DefaultFailThreshold = SeverityHigh

// ShouldFail decides whether a result warrants a failing exit code. It is
// the only place that decision is made.
//
// The answer is true exactly when the caller opted into blocking behavior,
// the scan completed with issues_found, and at least one finding meets the
// threshold. Service errors, rate limits, and clean results never fail, so
// an outage can never break a pipeline that scans during CI.
func ShouldFail(res *ScanResult, failRequested bool, threshold Severity) bool {
	if !failRequested || res == nil || res.Status != StatusIssuesFound {
		return false
	}
	want := threshold.Rank()
	if want == 0 {
		want = DefaultFailThreshold.Rank()
	}
	for _, f := range res.Findings {
		if f.Severity.Rank() >= want {
			return true
		}
	}
	return false
}
