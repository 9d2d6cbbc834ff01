package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/cody-foxy/scanwatch/internal/annotate"
	"github.com/cody-foxy/scanwatch/internal/findings"
	"github.com/cody-foxy/scanwatch/internal/history"
	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/internal/severity"
)

// PrintSummary renders the severity breakdown of a completed scan.
func PrintSummary(snap scan.Scan) {
	summary := findings.Aggregate(snap.Findings)
	if summary.Total == 0 {
		pterm.Success.Println("No issues found. Your code looks clean.")
		return
	}

	pterm.Warning.Printf("Found %d issues:\n", summary.Total)
	for i := len(severity.Levels) - 1; i >= 0; i-- {
		level := severity.Levels[i]
		count := summary.Count(level)
		if count == 0 {
			continue
		}
		label := severity.Style(string(level)).Sprint(strings.ToUpper(string(level)))
		fmt.Printf("  %s %s: %d\n", severity.Icon(string(level)), label, count)
	}
	if summary.Unrecognized > 0 {
		fmt.Printf("  %s OTHER: %d\n", severity.Icon(""), summary.Unrecognized)
	}
}

// PrintFindings renders a findings batch as a table.
func PrintFindings(batch []scan.Finding) {
	if len(batch) == 0 {
		pterm.Success.Println("No findings to show.")
		return
	}

	data := [][]string{
		{"Severity", "Rule", "File", "Line", "Message"},
	}
	for _, f := range batch {
		label := severity.Style(f.Severity).Sprint(strings.ToUpper(f.Severity))
		data = append(data, []string{
			label,
			pterm.FgCyan.Sprint(f.RuleID),
			f.FilePath,
			strconv.Itoa(f.StartLine),
			truncate(f.Message, 60),
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// PrintAnnotated renders one finding with its line-numbered snippet, flagged
// lines marked in red, plus the remediation metadata when present.
func PrintAnnotated(f scan.Finding) {
	label := severity.Style(f.Severity).Sprint(strings.ToUpper(f.Severity))
	fmt.Printf("%s %s %s (%s)\n", severity.Icon(f.Severity), label, f.RuleName, f.RuleID)
	fmt.Printf("  %s:%d-%d [%s]\n", f.FilePath, f.StartLine, f.EndLine, annotate.Language(f.FilePath))
	fmt.Printf("  %s\n\n", f.Message)

	for _, line := range annotate.Annotate(f.CodeSnippet, f.StartLine, f.EndLine) {
		marker := " "
		text := line.Text
		if line.Flagged {
			marker = pterm.FgRed.Sprint(">")
			text = pterm.FgRed.Sprint(line.Text)
		}
		fmt.Printf("  %s %4d | %s\n", marker, line.Number, text)
	}

	if f.AIExplanation != "" {
		pterm.Info.Println("Analysis: " + f.AIExplanation)
	}
	if f.AIRemediation != "" {
		pterm.Info.Println("How to fix: " + f.AIRemediation)
	}
	if len(f.CWEIDs) > 0 || len(f.OWASPIDs) > 0 {
		fmt.Printf("  %s\n", strings.Join(append(append([]string{}, f.CWEIDs...), f.OWASPIDs...), " "))
	}
	for _, ref := range f.References {
		fmt.Printf("  - %s\n", ref)
	}
	fmt.Println()
}

// PrintHistory renders locally recorded scans, newest first.
func PrintHistory(records []history.Record) {
	if len(records) == 0 {
		pterm.Info.Println("No scans recorded yet.")
		return
	}

	data := [][]string{
		{"Scan", "Status", "Source", "Findings", "Critical", "High", "Recorded"},
	}
	for _, rec := range records {
		status := string(rec.Status)
		if rec.Status == scan.StatusFailed {
			status = pterm.FgRed.Sprint(status)
		} else {
			status = pterm.FgGreen.Sprint(status)
		}
		source := rec.SourcePath
		if source == "" {
			source = rec.SourceType
		}
		data = append(data, []string{
			strconv.Itoa(rec.ID),
			status,
			truncate(source, 40),
			strconv.Itoa(rec.TotalFindings),
			strconv.Itoa(rec.CriticalCount),
			strconv.Itoa(rec.HighCount),
			rec.RecordedAt.Format("2006-01-02 15:04"),
		})
	}

	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// ProgressLine formats the poll progress of a running scan.
func ProgressLine(snap scan.Scan) string {
	total := "?"
	if snap.TotalFiles > 0 {
		total = strconv.Itoa(snap.TotalFiles)
	}
	return fmt.Sprintf("Scanning files... %d / %s", snap.FilesScanned, total)
}

// StartSpinner starts a progress spinner with the given text.
func StartSpinner(text string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.Start(text)
	return spinner
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
