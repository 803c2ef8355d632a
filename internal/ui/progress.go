// Package ui draws the progress view of a directory run.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"tagtree/internal/driver"
)

const (
	maxActiveRows = 8 // документы в работе
	maxFailedRows = 5 // последние упавшие
	statusWidth   = 9
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	prog    progress.Model

	docs   []docState
	index  map[string]int
	active []int // индексы документов в работе, в порядке старта
	failed []int // индексы упавших, в порядке завершения

	finished, cached int
	width            int
	done             bool
}

type docState struct {
	path   string
	stage  driver.Stage
	status driver.Status
	err    error
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model for a directory run over
// files. Only documents in flight and recent failures get their own row;
// finished ones are counted. The model quits when events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = activeStyle

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	m := &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		docs:    make([]docState, len(files)),
		index:   make(map[string]int, len(files)),
		width:   80,
	}
	for i, file := range files {
		m.docs[i] = docState{path: file, status: driver.StatusQueued}
		m.index[file] = i
	}
	return m
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(driver.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = max(msg.Width-4, 10)
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.docs) == 0 {
		return ""
	}
	header := fmt.Sprintf("%s  %d/%d", m.title, m.finished, len(m.docs))
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusWidth-6, 20)
	for _, idx := range m.active[:min(len(m.active), maxActiveRows)] {
		d := m.docs[idx]
		m.row(&b, activeStyle, stageLabel(d.stage), d.path, nameWidth)
	}
	if hidden := len(m.active) - maxActiveRows; hidden > 0 {
		fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf("... and %d more in progress", hidden)))
	}
	for _, idx := range m.failed[max(len(m.failed)-maxFailedRows, 0):] {
		d := m.docs[idx]
		label := d.path
		if d.err != nil {
			label += ": " + d.err.Error()
		}
		m.row(&b, failStyle, "error", label, nameWidth)
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  parsed %d  cached %d  failed %d",
		m.finished-len(m.failed), m.cached, len(m.failed))))
	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *progressModel) row(b *strings.Builder, style lipgloss.Style, status, path string, width int) {
	fmt.Fprintf(b, "  %s %s\n", style.Render(fmt.Sprintf("%*s", statusWidth, status)), truncate(path, width))
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	d := &m.docs[idx]
	if d.status == driver.StatusDone || d.status == driver.StatusError {
		return nil
	}
	d.stage = ev.Stage
	switch ev.Status {
	case driver.StatusWorking:
		if d.status != driver.StatusWorking {
			m.active = append(m.active, idx)
		}
	case driver.StatusDone, driver.StatusError:
		m.removeActive(idx)
		m.finished++
		d.err = ev.Err
		if ev.Status == driver.StatusError {
			m.failed = append(m.failed, idx)
		} else if ev.Cached {
			m.cached++
		}
	}
	d.status = ev.Status
	return m.prog.SetPercent(m.percent())
}

func (m *progressModel) removeActive(idx int) {
	for i, a := range m.active {
		if a == idx {
			m.active = append(m.active[:i], m.active[i+1:]...)
			return
		}
	}
}

// percent counts finished documents fully and in-flight ones by stage.
func (m *progressModel) percent() float64 {
	if len(m.docs) == 0 {
		return 0
	}
	total := float64(m.finished)
	for _, idx := range m.active {
		total += progressFromStage(m.docs[idx].stage)
	}
	return total / float64(len(m.docs))
}

func progressFromStage(stage driver.Stage) float64 {
	switch stage {
	case driver.StageLoad:
		return 0.1
	case driver.StageLex:
		return 0.3
	case driver.StageParse:
		return 0.5
	default:
		return 0
	}
}

func stageLabel(stage driver.Stage) string {
	switch stage {
	case driver.StageLoad:
		return "loading"
	case driver.StageLex:
		return "lexing"
	case driver.StageParse:
		return "parsing"
	default:
		return "working"
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
