package findings

import (
	"github.com/cody-foxy/scanwatch/internal/scan"
	"github.com/cody-foxy/scanwatch/internal/severity"
)

// FilterAll is the severity filter value that keeps every finding.
const FilterAll = "all"

// Summary holds per-severity counts for a findings batch. Findings whose
// severity is not one of the canonical levels are counted under Unrecognized
// and still contribute to Total, so nothing is silently lost.
type Summary struct {
	Total        int
	Critical     int
	High         int
	Medium       int
	Low          int
	Info         int
	Unrecognized int
}

// Count returns the bucket for a canonical severity level.
func (s Summary) Count(level severity.Severity) int {
	switch level {
	case severity.Critical:
		return s.Critical
	case severity.High:
		return s.High
	case severity.Medium:
		return s.Medium
	case severity.Low:
		return s.Low
	case severity.Info:
		return s.Info
	}
	return 0
}

// Aggregate computes per-severity counts for the batch. Pure and
// deterministic: repeated calls with the same input yield the same Summary.
func Aggregate(findings []scan.Finding) Summary {
	var summary Summary
	summary.Total = len(findings)

	for _, f := range findings {
		level, ok := severity.Parse(f.Severity)
		if !ok {
			summary.Unrecognized++
			continue
		}
		switch level {
		case severity.Critical:
			summary.Critical++
		case severity.High:
			summary.High++
		case severity.Medium:
			summary.Medium++
		case severity.Low:
			summary.Low++
		case severity.Info:
			summary.Info++
		}
	}
	return summary
}

// Filter projects the batch down to findings of the given severity,
// preserving the original relative order so UI scroll position remains
// meaningful between filter toggles. FilterAll (or an empty filter) is the
// identity operation.
func Filter(findings []scan.Finding, sev string) []scan.Finding {
	if sev == "" || sev == FilterAll {
		return findings
	}

	// an unrecognized filter value matches nothing; the info fallback is for
	// rendering only
	want, known := severity.Parse(sev)
	if !known {
		return []scan.Finding{}
	}

	out := make([]scan.Finding, 0, len(findings))
	for _, f := range findings {
		got, ok := severity.Parse(f.Severity)
		if ok && got == want {
			out = append(out, f)
		}
	}
	return out
}
