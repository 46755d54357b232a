package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"esfront/internal/driver"
)

// recentRows bounds how many finished files stay on screen; directory checks
// can touch thousands.
const recentRows = 8

type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateParsing
	stateClean
	stateFindings
	stateCached
	stateFailed
)

func (s fileState) finished() bool { return s >= stateClean }

var stateStyles = [...]struct {
	label string
	color lipgloss.Color
}{
	stateQueued:   {"queued", "8"},
	stateLoading:  {"loading", "6"},
	stateParsing:  {"parsing", "6"},
	stateClean:    {"ok", "2"},
	stateFindings: {"findings", "3"},
	stateCached:   {"cached", "4"},
	stateFailed:   {"failed", "1"},
}

func (s fileState) render() string {
	st := stateStyles[s]
	return lipgloss.NewStyle().Foreground(st.color).Render(fmt.Sprintf("%9s", st.label))
}

type checkedFile struct {
	path        string
	state       fileState
	diagnostics int
}

type checkModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	files   []checkedFile
	byPath  map[string]int
	// recent holds indexes of finished files, newest last.
	recent   []int
	finished int
	findings int
	width    int
	closed   bool
}

type eventMsg driver.Event
type closedMsg struct{}

// NewProgressModel returns a Bubble Tea model for a batch check. It shows
// files in flight and the most recent results, and quits when events is
// closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &checkModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		files:   make([]checkedFile, len(files)),
		byPath:  make(map[string]int, len(files)),
		width:   80,
	}
	m.bar.Width = m.width - 12
	for i, f := range files {
		m.files[i] = checkedFile{path: f}
		m.byPath[f] = i
	}
	return m
}

func (m *checkModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *checkModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return closedMsg{}
	}
}

func (m *checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.record(driver.Event(msg)), m.next())
	case closedMsg:
		m.closed = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 12
		}
	case spinner.TickMsg:
		if !m.closed {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// record folds one driver event into the file table. Batch-level events
// carry no file and are ignored; the header already shows the counts.
func (m *checkModel) record(ev driver.Event) tea.Cmd {
	i, ok := m.byPath[ev.File]
	if ev.File == "" || !ok {
		return nil
	}
	f := &m.files[i]
	if f.state.finished() {
		return nil
	}
	f.state = stateOf(ev, f.state)
	if !f.state.finished() {
		return nil
	}
	f.diagnostics = ev.Diagnostics
	if f.state == stateFindings || f.state == stateFailed {
		m.findings++
	}
	m.finished++
	m.recent = append(m.recent, i)
	if len(m.recent) > recentRows {
		m.recent = m.recent[1:]
	}
	return m.bar.SetPercent(float64(m.finished) / float64(len(m.files)))
}

func stateOf(ev driver.Event, cur fileState) fileState {
	switch ev.Status {
	case driver.StatusWorking:
		if ev.Stage == driver.StageLoad {
			return stateLoading
		}
		return stateParsing
	case driver.StatusError:
		return stateFailed
	case driver.StatusDone:
		switch {
		case ev.Stage == driver.StageCache:
			return stateCached
		case ev.Diagnostics > 0:
			return stateFindings
		default:
			return stateClean
		}
	}
	return cur
}

func (m *checkModel) View() string {
	if len(m.files) == 0 {
		return ""
	}
	var b strings.Builder
	header := fmt.Sprintf("%s %d/%d files, %d with findings", m.title, m.finished, len(m.files), m.findings)
	if !m.closed {
		header = m.spinner.View() + " " + header
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-14, 20)
	row := func(f checkedFile) {
		fmt.Fprintf(&b, "  %s %s", f.state.render(), clip(f.path, nameWidth))
		if f.diagnostics > 0 {
			fmt.Fprintf(&b, " (%d)", f.diagnostics)
		}
		b.WriteByte('\n')
	}
	for _, i := range m.recent {
		row(m.files[i])
	}
	queued := 0
	for _, f := range m.files {
		switch f.state {
		case stateLoading, stateParsing:
			row(f)
		case stateQueued:
			queued++
		}
	}
	if queued > 0 {
		fmt.Fprintf(&b, "  %s %d more\n", stateQueued.render(), queued)
	}

	b.WriteByte('\n')
	if m.closed {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

// clip shortens a path from the left so the file name stays visible.
func clip(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	if width <= 3 {
		return runewidth.TruncateLeft(path, runewidth.StringWidth(path)-width, "")
	}
	return runewidth.TruncateLeft(path, runewidth.StringWidth(path)-width+3, "...")
}
