package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const delimiterWidth = 61

// Frame writes body between two delimiter lines under a title. Styling is
// resolved against w, so writers that are not terminals get plain text.
func Frame(w io.Writer, title, body string) error {
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true)
	lineStyle := r.NewStyle().Foreground(lipgloss.Color("8"))
	delimiter := lineStyle.Render(strings.Repeat("=", delimiterWidth))

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n%s\n", titleStyle.Render(title), delimiter, body, delimiter)
	return err
}
