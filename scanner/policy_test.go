package scanner

import "testing"

func issuesResult(severities ...Severity) *ScanResult {
	findings := make([]Finding, 0, len(severities))
	for _, s := range severities {
		findings = append(findings, Finding{Title: "finding", Severity: s})
	}
	return &ScanResult{
		Status:      StatusIssuesFound,
		TotalIssues: len(findings),
		Findings:    findings,
	}
}

func TestShouldFail(t *testing.T) {
	tests := []struct {
		name      string
		res       *ScanResult
		fail      bool
		threshold Severity
		want      bool
	}{
		{
			name:      "fail not requested",
			res:       issuesResult(SeverityCritical),
			fail:      false,
			threshold: SeverityHigh,
			want:      false,
		},
		{
			name:      "clean result never fails",
			res:       &ScanResult{Status: StatusClean},
			fail:      true,
			threshold: SeverityHigh,
			want:      false,
		},
		{
			name:      "medium findings below default threshold",
			res:       issuesResult(SeverityMedium, SeverityMedium),
			fail:      true,
			threshold: SeverityHigh,
			want:      false,
		},
		{
			name:      "same findings fail once threshold drops",
			res:       issuesResult(SeverityMedium, SeverityMedium),
			fail:      true,
			threshold: SeverityMedium,
			want:      true,
		},
		{
			name:      "high finding meets high threshold",
			res:       issuesResult(SeverityLow, SeverityHigh),
			fail:      true,
			threshold: SeverityHigh,
			want:      true,
		},
		{
			name:      "critical exceeds high threshold",
			res:       issuesResult(SeverityCritical),
			fail:      true,
			threshold: SeverityHigh,
			want:      true,
		},
		{
			name:      "high finding exceeds low threshold",
			res:       issuesResult(SeverityHigh),
			fail:      true,
			threshold: SeverityLow,
			want:      true,
		},
		{
			name:      "info never reaches low threshold",
			res:       issuesResult(SeverityInfo),
			fail:      true,
			threshold: SeverityLow,
			want:      false,
		},
		{
			name:      "unknown severity ranks at zero",
			res:       issuesResult(Severity("weird")),
			fail:      true,
			threshold: SeverityLow,
			want:      false,
		},
		{
			name:      "service error never fails",
			res:       &ScanResult{Status: StatusError, Message: "backend exploded"},
			fail:      true,
			threshold: SeverityLow,
			want:      false,
		},
		{
			name:      "limit reached never fails",
			res:       &ScanResult{Status: StatusLimitReached},
			fail:      true,
			threshold: SeverityLow,
			want:      false,
		},
		{
			name:      "nil result never fails",
			res:       nil,
			fail:      true,
			threshold: SeverityHigh,
			want:      false,
		},
		{
			name:      "empty threshold falls back to high",
			res:       issuesResult(SeverityMedium),
			fail:      true,
			threshold: "",
			want:      false,
		},
		{
			name:      "empty threshold still catches high",
			res:       issuesResult(SeverityHigh),
			fail:      true,
			threshold: "",
			want:      true,
		},
		{
			name: "status says issues but findings are empty",
			res: &ScanResult{
				Status:      StatusIssuesFound,
				TotalIssues: 3,
				Findings:    nil,
			},
			fail:      true,
			threshold: SeverityLow,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldFail(tt.res, tt.fail, tt.threshold); got != tt.want {
				t.Fatalf("ShouldFail() = %v, want %v", got, tt.want)
			}
		})
	}
}
