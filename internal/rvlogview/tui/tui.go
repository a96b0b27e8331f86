// Package tui is the terminal counterpart of the web viewer: block entries
// on the left, the disassembly with the selected block highlighted on the
// right.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"rvlogview/internal/disasm"
	"rvlogview/internal/execlog"
	"rvlogview/internal/rvlogview/styles"
	"rvlogview/internal/source"
	"rvlogview/internal/ui/colorize"
)

type focus int

const (
	focusLog focus = iota
	focusDisasm
)

type entryItem struct {
	entry execlog.Entry
	fn    string
}

func (i entryItem) FilterValue() string { return i.entry.Line + " " + i.fn }

// entryDelegate renders one entry per row, addresses and function colored.
type entryDelegate struct{}

func (d entryDelegate) Height() int                               { return 1 }
func (d entryDelegate) Spacing() int                              { return 0 }
func (d entryDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d entryDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(entryItem)
	if !ok {
		return
	}

	label := i.entry.Line
	if idx := strings.Index(label, execlog.Marker); idx >= 0 {
		label = label[idx:]
	}
	if i.entry.Start != "" {
		label = strings.Replace(label, i.entry.Start, styles.Addr.Render(i.entry.Start), 1)
	}
	if i.entry.End != "" {
		label = strings.Replace(label, i.entry.End, styles.Addr.Render(i.entry.End), 1)
	}
	if i.fn != "" {
		label += "  " + styles.FuncName.Render(i.fn)
	}

	if index == m.Index() {
		fmt.Fprint(w, styles.SelectedLogLine.Render("> "+label))
		return
	}
	fmt.Fprint(w, styles.LogLine.Render("  "+label))
}

// Model is the bubbletea model of the browse view.
type Model struct {
	disasmSrc source.Reader
	logSrc    source.Reader

	entries  list.Model
	view     viewport.Model
	spinner  spinner.Model
	focus    focus
	loading  bool
	lines    disasm.Listing
	selected *disasm.Range
	width    int
	height   int
}

type loadedMsg struct {
	entries []execlog.Entry
	lines   disasm.Listing
	funcs   *disasm.FuncIndex
}

// New returns a Model reading from the given sources.
func New(disasmSrc, logSrc source.Reader) Model {
	entries := list.New([]list.Item{}, entryDelegate{}, 40, 24)
	entries.SetShowStatusBar(false)
	entries.SetFilteringEnabled(true)
	entries.Title = "Block executions"
	entries.Styles.Title = styles.Title.MarginLeft(1)
	entries.SetShowHelp(false)

	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	return Model{
		disasmSrc: disasmSrc,
		logSrc:    logSrc,
		entries:   entries,
		view:      vp,
		spinner:   s,
		loading:   true,
		width:     120,
		height:    24,
	}
}

func (m Model) load() tea.Cmd {
	disasmSrc, logSrc := m.disasmSrc, m.logSrc
	return func() tea.Msg {
		lines := disasm.Parse(source.ReadOrEmpty(disasmSrc))
		return loadedMsg{
			entries: execlog.Scan(source.ReadOrEmpty(logSrc)),
			lines:   lines,
			funcs:   disasm.IndexFuncs(lines),
		}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.lines = msg.lines
		items := make([]list.Item, len(msg.entries))
		for i, e := range msg.entries {
			items[i] = entryItem{entry: e, fn: funcName(e, msg.funcs)}
		}
		cmd = m.entries.SetItems(items)
		m.refresh()
		return m, cmd

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.focus == focusLog && m.entries.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.focus == focusLog {
				m.focus = focusDisasm
			} else {
				m.focus = focusLog
			}
			return m, nil
		case "r":
			m.loading = true
			return m, tea.Batch(m.load(), m.spinner.Tick)
		case "enter":
			if m.focus == focusLog {
				m.selectCurrent()
				return m, nil
			}
		}
	}

	if m.focus == focusLog {
		m.entries, cmd = m.entries.Update(msg)
	} else {
		m.view, cmd = m.view.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	left := m.entries.View()
	if m.loading {
		left = m.spinner.View() + " Loading..."
	}
	right := m.view.View()

	leftStyle := lipgloss.NewStyle().Width(m.listWidth()).MaxHeight(m.height - 1)
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftStyle.Render(left), right)

	menu := " Enter: show block • Tab: switch pane • /: filter • R: reload • Q: quit "
	if m.focus == focusDisasm {
		menu = " ↑/↓: scroll • Tab: switch pane • R: reload • Q: quit "
	}
	return body + "\n" + styles.MenuBar.Width(m.width).Render(menu)
}

func (m Model) listWidth() int {
	return max(m.width*2/5, 20)
}

func (m *Model) layout() {
	m.entries.SetWidth(m.listWidth())
	m.entries.SetHeight(m.height - 1)
	m.view.SetWidth(max(m.width-m.listWidth(), 20))
	m.view.SetHeight(m.height - 1)
}

// selectCurrent highlights the block of the entry under the cursor.
func (m *Model) selectCurrent() {
	item, ok := m.entries.SelectedItem().(entryItem)
	if !ok {
		return
	}
	if r, ok := item.entry.Range(); ok {
		m.selected = &r
	} else {
		m.selected = nil
	}
	m.refresh()
}

// refresh re-renders the disassembly pane and scrolls the first highlighted
// line to the middle.
func (m *Model) refresh() {
	m.view.SetContent(RenderDisasm(m.lines, m.selected))
	if m.selected == nil {
		m.view.GotoTop()
		return
	}
	if idx := m.lines.IndexOf(*m.selected); idx >= 0 {
		m.view.SetYOffset(max(idx-(m.height-1)/2, 0))
	}
}

// RenderDisasm renders lines for the viewport with lines in hl on a
// highlighted background.
func RenderDisasm(lines disasm.Listing, hl *disasm.Range) string {
	if len(lines) == 1 && lines[0].Raw == "" {
		return styles.Dim.Render("(empty disassembly)")
	}
	out := make([]string, len(lines))
	for i, ln := range lines {
		text := colorize.Line(ln)
		if hl != nil && ln.HasAddr && hl.Contains(ln.Addr) {
			text = styles.HighlightLine.Render(ln.Raw)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func funcName(e execlog.Entry, funcs *disasm.FuncIndex) string {
	if funcs == nil || funcs.Len() == 0 {
		return ""
	}
	r, ok := e.Range()
	if !ok {
		return ""
	}
	f, ok := funcs.Lookup(r.Start)
	if !ok {
		return ""
	}
	return f.Display()
}
