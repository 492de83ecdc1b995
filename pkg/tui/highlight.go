package tui

import (
	"encoding/json"
	"strings"

	"github.com/charmbracelet/glamour"
)

// HighlightJSON pretty-prints and syntax-highlights a JSON document for width
// columns. Anything that is not valid JSON is returned unchanged.
func HighlightJSON(input string, width int) string {
	var js any
	if json.Unmarshal([]byte(input), &js) != nil {
		return input
	}

	pretty, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return input
	}

	var sb strings.Builder
	sb.WriteString("```json\n")
	sb.Write(pretty)
	sb.WriteString("\n```")

	if width < 40 {
		width = 40
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return string(pretty)
	}

	out, err := renderer.Render(sb.String())
	if err != nil {
		return string(pretty)
	}
	return strings.TrimSpace(out)
}
