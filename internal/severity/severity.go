package severity

import (
	"strings"

	"github.com/pterm/pterm"
)

// Severity is one of the five canonical levels of the taxonomy.
type Severity string

const (
	Info     Severity = "info"
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

// Levels lists the canonical levels in ascending order of severity.
var Levels = []Severity{Info, Low, Medium, High, Critical}

// Parse resolves a severity string case-insensitively. Unrecognized values
// fall back to Info so that malformed or future severities never break
// rendering; ok is false for those.
func Parse(s string) (Severity, bool) {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case Info:
		return Info, true
	case Low:
		return Low, true
	case Medium:
		return Medium, true
	case High:
		return High, true
	case Critical:
		return Critical, true
	}
	return Info, false
}

// Rank returns the position of the severity in the canonical ascending order.
func (s Severity) Rank() int {
	switch s {
	case Critical:
		return 4
	case High:
		return 3
	case Medium:
		return 2
	case Low:
		return 1
	default:
		return 0
	}
}

var colors = map[Severity]string{
	Critical: "red",
	High:     "orange",
	Medium:   "yellow",
	Low:      "green",
	Info:     "gray",
}

var icons = map[Severity]string{
	Critical: "🔴",
	High:     "🟠",
	Medium:   "🟡",
	Low:      "🟢",
	Info:     "⚪",
}

var styles = map[Severity]pterm.Color{
	Critical: pterm.FgRed,
	High:     pterm.FgLightRed,
	Medium:   pterm.FgYellow,
	Low:      pterm.FgGreen,
	Info:     pterm.FgGray,
}

// Color returns the display color token for a severity string, falling back
// to the Info presentation for unrecognized values.
func Color(s string) string {
	sev, _ := Parse(s)
	return colors[sev]
}

// Icon returns the icon glyph for a severity string, falling back to the
// Info presentation for unrecognized values.
func Icon(s string) string {
	sev, _ := Parse(s)
	return icons[sev]
}

// Style returns the terminal color used when rendering the severity label.
func Style(s string) pterm.Color {
	sev, _ := Parse(s)
	return styles[sev]
}
