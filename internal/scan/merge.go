package scan

// ApplyStatus merges a status response into the held scan record. Scalar
// fields are overwritten field-wise; the findings collection is untouched
// here, it is only ever replaced wholesale via ReplaceFindings once the scan
// is terminal. Requests are strictly sequential per session, so a later call
// always carries the later remote state.
func (s *Scan) ApplyStatus(upd *Scan) {
	if upd == nil {
		return
	}

	s.Status = upd.Status
	s.SourceType = upd.SourceType
	s.SourcePath = upd.SourcePath
	s.Branch = upd.Branch
	s.TotalFiles = upd.TotalFiles
	s.FilesScanned = upd.FilesScanned
	s.TotalFindings = upd.TotalFindings
	s.CriticalCount = clampNonNegative(upd.CriticalCount)
	s.HighCount = clampNonNegative(upd.HighCount)
	s.MediumCount = clampNonNegative(upd.MediumCount)
	s.LowCount = clampNonNegative(upd.LowCount)
	s.ErrorMessage = upd.ErrorMessage

	if len(upd.LanguagesDetected) > 0 {
		s.LanguagesDetected = upd.LanguagesDetected
	}
	if !upd.CreatedAt.IsZero() {
		s.CreatedAt = upd.CreatedAt
	}
	if upd.StartedAt != nil {
		s.StartedAt = upd.StartedAt
	}
	if upd.CompletedAt != nil {
		s.CompletedAt = upd.CompletedAt
	}

	// files-scanned-so-far never exceeds the total once the total is known
	if s.TotalFiles > 0 && s.FilesScanned > s.TotalFiles {
		s.FilesScanned = s.TotalFiles
	}
	if s.FilesScanned < 0 {
		s.FilesScanned = 0
	}
}

// ReplaceFindings swaps in a new findings batch. The slice is copied so the
// held record never aliases caller-owned memory.
func (s *Scan) ReplaceFindings(findings []Finding) {
	if findings == nil {
		s.Findings = nil
		return
	}
	s.Findings = make([]Finding, len(findings))
	copy(s.Findings, findings)
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
