package scan

import (
	"time"
)

// Status is the lifecycle state of an analysis job on the remote service.
type Status string

const (
	// StatusCreated is the state between submission and the first status
	// fetch resolving. The remote service reports it as "pending".
	StatusCreated   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether no further transitions can occur.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Known reports whether the status is one of the lifecycle states the
// remote service defines.
func (s Status) Known() bool {
	switch s {
	case StatusCreated, StatusRunning, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Finding is one located issue reported by the remote analysis. Findings are
// immutable once received: they arrive as a batch replacing any prior batch
// for the same scan and are never mutated individually.
type Finding struct {
	ID            int      `json:"id"`
	RuleID        string   `json:"rule_id"`
	RuleName      string   `json:"rule_name"`
	Severity      string   `json:"severity"`
	FilePath      string   `json:"file_path"`
	StartLine     int      `json:"start_line"`
	EndLine       int      `json:"end_line"`
	StartCol      int      `json:"start_col"`
	EndCol        int      `json:"end_col"`
	CodeSnippet   string   `json:"code_snippet"`
	Message       string   `json:"message"`
	AIExplanation string   `json:"ai_explanation,omitempty"`
	AIRemediation string   `json:"ai_remediation,omitempty"`
	CWEIDs        []string `json:"cwe_ids"`
	OWASPIDs      []string `json:"owasp_ids"`
	References    []string `json:"references"`
}

// Scan represents one analysis job tracked by identifier through its
// lifecycle. The remote service creates it at submission time; the local copy
// is mutated only by merging poller responses.
type Scan struct {
	ID                int        `json:"id"`
	Status            Status     `json:"status"`
	SourceType        string     `json:"source_type"`
	SourcePath        string     `json:"source_path,omitempty"`
	Branch            string     `json:"branch,omitempty"`
	LanguagesDetected []string   `json:"languages_detected"`
	TotalFiles        int        `json:"total_files"`
	FilesScanned      int        `json:"files_scanned"`
	TotalFindings     int        `json:"total_findings"`
	CriticalCount     int        `json:"critical_count"`
	HighCount         int        `json:"high_count"`
	MediumCount       int        `json:"medium_count"`
	LowCount          int        `json:"low_count"`
	ErrorMessage      string     `json:"error_message,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Findings          []Finding  `json:"findings,omitempty"`
}

// Progress returns the fraction of files scanned, or 0 while the total is
// still unknown.
func (s *Scan) Progress() float64 {
	if s.TotalFiles <= 0 {
		return 0
	}
	return float64(s.FilesScanned) / float64(s.TotalFiles)
}
