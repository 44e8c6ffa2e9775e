package cmd

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/khanhnv2901/webscan-cli/internal/output"
	"github.com/khanhnv2901/webscan-cli/internal/shared/constants"
	"github.com/khanhnv2901/webscan-cli/scanner"
)

const (
	jsonPrefix = ""
	jsonIndent = "  "

	markdownTemplatePath = "templates/report.md"
)

//go:embed templates/report.md
var reportTemplateFS embed.FS

var (
	markdownTemplateFuncs = template.FuncMap{
		"severityLabel": func(s scanner.Severity) string {
			return strings.ToUpper(string(s))
		},
		"categoryLabel":  scanner.CategoryLabel,
		"formatDuration": output.FormatDuration,
	}

	markdownReportTemplate = template.Must(
		template.New("report.md").Funcs(markdownTemplateFuncs).ParseFS(reportTemplateFS, markdownTemplatePath),
	)
)

// exportData holds a scan result prepared for file rendering: findings
// sorted worst-first and categories flattened into display order.
type exportData struct {
	Result      *scanner.ScanResult
	Findings    []scanner.Finding
	Categories  []exportCategory
	StatusLabel string
	GeneratedAt string
	FooterDate  string
	Version     string
}

type exportCategory struct {
	Label string
	Count int
	Clean bool
}

// validateExportPath rejects unsupported extensions before any scan runs,
// so the user learns about a typo without burning a scan against the quota.
func validateExportPath(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".md", ".pdf":
		return nil
	}
	return fmt.Errorf("unsupported export format %q (use .json, .md or .pdf)", filepath.Ext(path))
}

// writeExport renders res in the format implied by the file extension.
// With several targets the host is appended to the filename so results do
// not overwrite each other.
func writeExport(res *scanner.ScanResult, path string, multi bool) error {
	if multi {
		path = exportPathForTarget(path, res.URL)
	}

	var content []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := json.MarshalIndent(res, jsonPrefix, jsonIndent)
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		content = append(data, '\n')
	case ".md":
		text, err := generateMarkdownReport(buildExportData(res))
		if err != nil {
			return err
		}
		content = []byte(text)
	case ".pdf":
		data, err := generatePDFReportBytes(buildExportData(res))
		if err != nil {
			return fmt.Errorf("failed to generate PDF report: %w", err)
		}
		content = data
	default:
		return fmt.Errorf("unsupported export format %q (use .json, .md or .pdf)", filepath.Ext(path))
	}

	if err := os.WriteFile(path, content, constants.DefaultFilePerm); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func exportPathForTarget(path, target string) string {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return fmt.Sprintf("%s-%s%s", base, sanitizeHost(target), ext)
}

func sanitizeHost(target string) string {
	host := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = u.Host
	}
	host = strings.ReplaceAll(host, ":", "-")
	host = strings.ReplaceAll(host, "/", "-")
	return host
}

func buildExportData(res *scanner.ScanResult) exportData {
	keys := output.OrderedCategoryKeys(res.Categories)
	categories := make([]exportCategory, 0, len(keys))
	for _, key := range keys {
		cat := res.Categories[key]
		categories = append(categories, exportCategory{
			Label: scanner.CategoryLabel(key),
			Count: cat.Count,
			Clean: cat.Count == 0,
		})
	}

	now := time.Now()
	return exportData{
		Result:      res,
		Findings:    res.SortedFindings(),
		Categories:  categories,
		StatusLabel: statusLabel(res.Status),
		GeneratedAt: now.Format(time.RFC1123),
		FooterDate:  now.Format("2006-01-02 15:04:05"),
		Version:     Version,
	}
}

func statusLabel(status scanner.ScanStatus) string {
	switch status {
	case scanner.StatusClean:
		return "Clean"
	case scanner.StatusIssuesFound:
		return "Issues found"
	case scanner.StatusLimitReached:
		return "Scan limit reached"
	case scanner.StatusError:
		return "Scan failed"
	}
	return string(status)
}

func generateMarkdownReport(data exportData) (string, error) {
	var buf strings.Builder
	if err := markdownReportTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", markdownReportTemplate.Name(), err)
	}
	return buf.String(), nil
}

func generatePDFReportBytes(data exportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Title
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Scan Report: %s", data.Result.URL), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Metadata section
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", data.StatusLabel), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Issues found: %d", data.Result.TotalIssues), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Scan time: %s", output.FormatDuration(data.Result.ScanTimeSeconds)), "", 1, "", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", data.GeneratedAt), "", 1, "", false, 0, "")
	pdf.Ln(5)

	// Categories section
	if len(data.Categories) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Categories", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, cat := range data.Categories {
			line := fmt.Sprintf("%s: %d issue(s)", cat.Label, cat.Count)
			if cat.Clean {
				line = fmt.Sprintf("%s: clean", cat.Label)
			}
			pdf.CellFormat(0, 6, line, "", 1, "", false, 0, "")
		}
		pdf.Ln(5)
	}

	// Findings section
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Findings", "", 1, "", false, 0, "")
	if len(data.Findings) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.CellFormat(0, 6, "No issues were found.", "", 1, "", false, 0, "")
	}
	for _, f := range data.Findings {
		if pdf.GetY() > 260 {
			pdf.AddPage()
		}
		line := fmt.Sprintf("[%s] %s", strings.ToUpper(string(f.Severity)), f.Title)
		if f.Category != "" {
			line = fmt.Sprintf("%s (%s)", line, scanner.CategoryLabel(f.Category))
		}
		pdf.SetFont("Arial", "", 9)
		pdf.MultiCell(0, 5, line, "", "", false)
	}

	// Footer
	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 8)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated by webscan %s on %s", data.Version, data.FooterDate), "", 1, "", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}
