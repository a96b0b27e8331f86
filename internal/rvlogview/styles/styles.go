// Package styles holds the colors shared by the terminal views.
package styles

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/exp/charmtone"
)

// VS Code dark palette, matching the web page.
const (
	Foreground = "#D4D4D4"
	Background = "#1E1E1E"
	Muted      = "#858585"
	Function   = "#DCDCAA" // function names
	Address    = "#4FC1FF" // hex addresses
	Selection  = "#264F78" // selected log line
	Highlight  = "#614D1A" // highlighted instruction run
)

var (
	// Title is used for panel and list titles.
	Title = lipgloss.NewStyle().Foreground(lipgloss.Color(charmtone.Charple.Hex())).Bold(true)

	// LogLine is an unselected block execution entry.
	LogLine = lipgloss.NewStyle().Foreground(lipgloss.Color(Foreground))

	// SelectedLogLine is the entry under the cursor.
	SelectedLogLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground)).
			Background(lipgloss.Color(Selection))

	// Addr colors a hex address inside a log line.
	Addr = lipgloss.NewStyle().Foreground(lipgloss.Color(Address))

	// FuncName colors a function label.
	FuncName = lipgloss.NewStyle().Foreground(lipgloss.Color(Function))

	// HighlightLine marks an instruction inside the selected range.
	HighlightLine = lipgloss.NewStyle().Background(lipgloss.Color(Highlight))

	// Dim is used for hints and empty states.
	Dim = lipgloss.NewStyle().Foreground(lipgloss.Color(Muted))

	// MenuBar is the key help at the bottom of the TUI.
	MenuBar = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1)
)
