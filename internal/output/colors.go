package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/khanhnv2901/webscan-cli/scanner"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
)

// severityColor picks the palette entry for a severity label. Unknown
// severities stay uncolored rather than guessing a meaning for them.
func severityColor(s scanner.Severity) func(a ...interface{}) string {
	switch scanner.Severity(strings.ToLower(string(s))) {
	case scanner.SeverityCritical, scanner.SeverityHigh:
		return colorError
	case scanner.SeverityMedium:
		return colorWarn
	case scanner.SeverityLow:
		return colorInfo
	default:
		return fmt.Sprint
	}
}

// severityLabel renders the fixed-width upper-cased label findings are
// listed with. Unknown severities are upper-cased as-is.
func severityLabel(s scanner.Severity) string {
	return fmt.Sprintf("%-8s", strings.ToUpper(string(s)))
}
