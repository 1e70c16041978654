// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Text holds the styles for command output, bound to one renderer.
type Text struct {
	Heading lipgloss.Style
	Label   lipgloss.Style
	Count   lipgloss.Style
	Success lipgloss.Style
}

// NewText creates the command output styles for r.
func NewText(r *lipgloss.Renderer) Text {
	return Text{
		Heading: r.NewStyle().Bold(true).Foreground(Iris),
		Label:   r.NewStyle().Foreground(Slate),
		Count:   r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(Green),
	}
}
