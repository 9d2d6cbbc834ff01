package annotate

import (
	"path/filepath"
	"strings"
)

// Line is one rendered snippet line with its absolute position in the source
// file. Flagged marks lines inside the finding's reported range.
type Line struct {
	Number  int
	Text    string
	Flagged bool
}

// PlaceholderText is rendered in place of a missing snippet.
const PlaceholderText = "No code snippet available"

// Annotate splits snippet into lines, numbering them from startLine and
// flagging every line whose absolute number falls within [startLine, endLine]
// inclusive. Snippets may carry context lines beyond the flagged range; those
// are still numbered correctly and left unflagged. An empty snippet yields a
// single unflagged placeholder line. Pure function of its inputs, so
// re-rendering never drifts from the underlying finding data.
func Annotate(snippet string, startLine, endLine int) []Line {
	if startLine < 1 {
		startLine = 1
	}
	if endLine < startLine {
		endLine = startLine
	}

	if snippet == "" {
		return []Line{{Number: startLine, Text: PlaceholderText}}
	}

	raw := strings.Split(snippet, "\n")
	lines := make([]Line, len(raw))
	for i, text := range raw {
		number := startLine + i
		lines[i] = Line{
			Number:  number,
			Text:    text,
			Flagged: number >= startLine && number <= endLine,
		}
	}
	return lines
}

// languageByExt maps a file extension to the display language used for
// snippet rendering.
var languageByExt = map[string]string{
	".py":    "python",
	".js":    "javascript",
	".jsx":   "jsx",
	".ts":    "typescript",
	".tsx":   "tsx",
	".go":    "go",
	".java":  "java",
	".rb":    "ruby",
	".php":   "php",
	".rs":    "rust",
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".sh":    "bash",
	".yml":   "yaml",
	".yaml":  "yaml",
	".json":  "json",
	".xml":   "xml",
	".sql":   "sql",
}

// LanguageDefault is returned for unknown or missing extensions.
const LanguageDefault = "text"

// Language resolves a display language from the final extension of filePath.
// Unknown extensions and extension-less paths resolve to LanguageDefault,
// never an error.
func Language(filePath string) string {
	ext := filepath.Ext(filePath)
	if lang, ok := languageByExt[ext]; ok {
		return lang
	}
	return LanguageDefault
}
