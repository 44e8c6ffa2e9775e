package output

import (
	"math/rand"

	"github.com/khanhnv2901/webscan-cli/scanner"
)

// Message pools, keyed by how rough the scan went. One quip is picked per
// result; the pick is display-only and never feeds the exit policy.
var (
	highSeverityMessages = []string{
		"Patch the high-severity findings first. Everything else can wait.",
		"This needs attention today, not this sprint.",
		"The red ones bite. Start there.",
		"High severity means high priority. You know what to do.",
	}
	cleanMessages = []string{
		"All checks passed. Go ship something.",
		"Spotless. Your future self says thanks.",
		"Nothing to see here, and that's the point.",
		"Clean scan. Frame it.",
	}
	fewIssuesMessages = []string{
		"So close to clean. A couple of loose ends to tie off.",
		"Minor nits only. You'll be done by lunch.",
		"Almost there. A little housekeeping left.",
		"Nearly spotless. One quick pass should do it.",
	}
	someIssuesMessages = []string{
		"A handful of issues. Worth an afternoon.",
		"Not bad, not great. Time to fix a few things.",
		"A few things crept in. Sweep them out.",
		"Several findings to work through. Pick them off one by one.",
	}
	manyIssuesMessages = []string{
		"Quite a list. Start at the top and keep going.",
		"The scanner had a busy day. Now it's your turn.",
		"That's a backlog, not a report. Chip away at it.",
		"Plenty to do here. Severity order is your friend.",
	}
)

// Picker chooses the result message. The randomness source is injectable
// so tests can pin the choice; production uses math/rand.
type Picker struct {
	intn func(n int) int
}

// NewPicker builds a Picker. Passing nil selects the default source.
func NewPicker(intn func(int) int) *Picker {
	if intn == nil {
		intn = rand.Intn
	}
	return &Picker{intn: intn}
}

// For returns one message for a completed scan. Special statuses carry no
// message line (they render fixed blocks instead), so they get "".
//
// Any high or critical finding selects the high-severity pool regardless
// of the issue count; otherwise the pool follows total_issues.
func (p *Picker) For(res *scanner.ScanResult) string {
	if res == nil {
		return ""
	}
	if res.Status != scanner.StatusClean && res.Status != scanner.StatusIssuesFound {
		return ""
	}
	pool := poolFor(res)
	return pool[p.intn(len(pool))]
}

func poolFor(res *scanner.ScanResult) []string {
	if res.MaxSeverityRank() >= scanner.SeverityHigh.Rank() {
		return highSeverityMessages
	}
	switch n := res.TotalIssues; {
	case n <= 0:
		return cleanMessages
	case n <= 2:
		return fewIssuesMessages
	case n <= 5:
		return someIssuesMessages
	default:
		return manyIssuesMessages
	}
}
