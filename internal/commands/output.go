package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sqve/gw/internal/styles"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// column pads text to width before styling so ANSI codes do not skew
// alignment.
func column(style *lipgloss.Style, text string, width int) string {
	padded := text
	if pad := width - lipgloss.Width(text); pad > 0 {
		padded = text + strings.Repeat(" ", pad)
	}
	return styles.Render(style, padded)
}

func maxWidth(values []string) int {
	width := 0
	for _, v := range values {
		if w := lipgloss.Width(v); w > width {
			width = w
		}
	}
	return width
}

func writeRow(w io.Writer, parts ...string) {
	_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
}
