package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/khanhnv2901/webscan-cli/scanner"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "
)

// Renderer formats scan results for the terminal. Every write goes to Out
// or Err so tests can capture bytes; nothing here touches the network, and
// no method mutates the result it renders.
type Renderer struct {
	Out io.Writer
	Err io.Writer
}

// NewRenderer builds a Renderer. Nil writers default to stdout and stderr.
func NewRenderer(out, errW io.Writer) *Renderer {
	if out == nil {
		out = os.Stdout
	}
	if errW == nil {
		errW = os.Stderr
	}
	return &Renderer{Out: out, Err: errW}
}

// JSON prints the result exactly as the service returned it, indented.
// No message injection, no reordering, and the special statuses get the
// same raw treatment.
func (r *Renderer) JSON(res *scanner.ScanResult) error {
	data, err := json.MarshalIndent(res, jsonPrefix, jsonIndent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Out, string(data))
	return err
}

// JSONAll prints a batch of raw results as one array, in input order.
func (r *Renderer) JSONAll(results []*scanner.ScanResult) error {
	data, err := json.MarshalIndent(results, jsonPrefix, jsonIndent)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Out, string(data))
	return err
}

// Quiet prints the one-line summary. The special statuses fall through to
// the same fixed blocks Full renders, so quiet mode never hides an upsell
// or an apology.
func (r *Renderer) Quiet(res *scanner.ScanResult) {
	if r.renderSpecial(res) {
		return
	}
	r.mismatchNotice(res)

	if res.Status == scanner.StatusClean {
		fmt.Fprintf(r.Out, "%s No issues found%s\n", colorSuccess("✓"), elapsedSuffix(res))
		return
	}
	fmt.Fprintf(r.Out, "%s %s found%s\n", colorError("✗"), issueCountLabel(res.TotalIssues), elapsedSuffix(res))
}

// Full prints the category summary, the findings worst-first, the chosen
// message, and the details line. The message and detailsURL are resolved
// by the caller before rendering starts; Full only formats them.
func (r *Renderer) Full(res *scanner.ScanResult, message, detailsURL string) {
	if r.renderSpecial(res) {
		return
	}
	r.mismatchNotice(res)

	fmt.Fprintln(r.Out)
	for _, key := range OrderedCategoryKeys(res.Categories) {
		cat := res.Categories[key]
		label := scanner.CategoryLabel(key)
		if cat.Count > 0 {
			fmt.Fprintf(r.Out, "  %s %s (%s)\n", colorError("✗"), label, issueCountLabel(cat.Count))
			continue
		}
		fmt.Fprintf(r.Out, "  %s %s\n", colorSuccess("✓"), label)
	}

	if len(res.Findings) > 0 {
		fmt.Fprintln(r.Out)
		for _, f := range res.SortedFindings() {
			line := fmt.Sprintf("  %s %s", severityColor(f.Severity)(severityLabel(f.Severity)), f.Title)
			if f.Category != "" {
				line += fmt.Sprintf(" (%s)", scanner.CategoryLabel(f.Category))
			}
			fmt.Fprintln(r.Out, line)
		}
	}

	if message != "" {
		fmt.Fprintln(r.Out)
		fmt.Fprintf(r.Out, "  %s\n", colorInfo(message))
	}
	if detailsURL != "" {
		fmt.Fprintf(r.Out, "  Details: %s%s\n", detailsURL, elapsedSuffix(res))
	}
}

// Target prints the per-target header used when scanning several URLs.
func (r *Renderer) Target(target string) {
	fmt.Fprintf(r.Out, "\n%s %s\n", colorInfo("▸"), target)
}

// Failure prints the block for a scan that never produced a result. It
// writes to Err so machine-readable stdout stays clean, and it exists
// precisely because these failures must stay non-blocking.
func (r *Renderer) Failure(target string, err error) {
	fmt.Fprintln(r.Err)
	fmt.Fprintf(r.Err, "  %s %s could not be scanned\n", colorError("✗"), target)
	if err != nil {
		fmt.Fprintf(r.Err, "  %s\n", err.Error())
	}
	fmt.Fprintln(r.Err, "  The exit code is not affected. Please try again in a few minutes.")
}

// renderSpecial handles limit_reached and error statuses, which render
// identically in quiet and full modes. Returns true when it printed.
func (r *Renderer) renderSpecial(res *scanner.ScanResult) bool {
	switch res.Status {
	case scanner.StatusLimitReached:
		fmt.Fprintln(r.Out)
		fmt.Fprintf(r.Out, "  %s\n", colorWarn("You've hit the free scan limit for today."))
		fmt.Fprintln(r.Out, "  Unlimited scans and deeper checks are available on the paid plans:")
		fmt.Fprintf(r.Out, "  %s\n", colorInfo(scanner.PricingURL))
		return true
	case scanner.StatusError:
		fmt.Fprintln(r.Out)
		fmt.Fprintf(r.Out, "  %s\n", colorError("Sorry, this scan could not be completed."))
		if res.Message != "" {
			fmt.Fprintf(r.Out, "  %s\n", res.Message)
		}
		fmt.Fprintln(r.Out, "  The exit code is not affected. Please try again in a few minutes.")
		return true
	}
	return false
}

// mismatchNotice flags a disagreement between the service's total_issues
// and the findings it actually returned. Display keeps trusting the count;
// the exit policy never does.
func (r *Renderer) mismatchNotice(res *scanner.ScanResult) {
	if res.Status != scanner.StatusIssuesFound {
		return
	}
	if res.TotalIssues == len(res.Findings) {
		return
	}
	fmt.Fprintf(r.Err, "%s the service reported %d issue(s) but returned %d finding(s)\n",
		colorWarn("Note:"), res.TotalIssues, len(res.Findings))
}

// OrderedCategoryKeys lists the known categories in their fixed display
// order, then any categories the service added that we do not know yet,
// alphabetically so output stays deterministic.
func OrderedCategoryKeys(categories map[string]scanner.CategoryResult) []string {
	keys := make([]string, 0, len(categories))
	for _, key := range scanner.CategoryOrder {
		if _, ok := categories[key]; ok {
			keys = append(keys, key)
		}
	}
	known := make(map[string]struct{}, len(scanner.CategoryOrder))
	for _, key := range scanner.CategoryOrder {
		known[key] = struct{}{}
	}
	extra := make([]string, 0)
	for key := range categories {
		if _, ok := known[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func issueCountLabel(n int) string {
	if n == 1 {
		return "1 issue"
	}
	return fmt.Sprintf("%d issues", n)
}

func elapsedSuffix(res *scanner.ScanResult) string {
	if res.ScanTimeSeconds <= 0 {
		return ""
	}
	return fmt.Sprintf(" (%s)", FormatDuration(res.ScanTimeSeconds))
}

// FormatDuration renders a scan duration in seconds the way the terminal
// and exports show it.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	return fmt.Sprintf("%.1f min", seconds/60)
}
