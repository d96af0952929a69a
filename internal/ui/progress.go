// Package ui renders the interactive progress view of `diag --ui`.
//
// Вид компактный: строка итогов, окно файлов в работе и полоса прогресса.
// Список всех файлов не рисуется, каталоги бывают на тысячи файлов.
package ui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"cairolint/internal/driver"
)

// maxActive caps the in-flight window; with more workers the rest is summed up.
const maxActive = 8

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	stageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tally struct {
	finished int
	cached   int
	failed   int
	findings int
}

// Model is the Bubble Tea model behind Run. It quits when the event
// channel is closed.
type Model struct {
	title  string
	events <-chan driver.Event
	spin   spinner.Model
	bar    progress.Model
	width  int

	total  int
	stages map[string]driver.Stage // файлы в работе
	order  []string                // порядок начала работы
	done   map[string]bool
	tally  tally
	over   bool
}

type eventMsg driver.Event
type closedMsg struct{}

func NewModel(title string, total int, events <-chan driver.Event) *Model {
	spin := spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(stageStyle))
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 60
	return &Model{
		title:  title,
		events: events,
		spin:   spin,
		bar:    bar,
		width:  80,
		total:  total,
		stages: make(map[string]driver.Stage),
		done:   make(map[string]bool),
	}
}

// Run drives the model until events is closed.
func Run(title string, total int, events <-chan driver.Event, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(title, total, events), opts...).Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

func (m *Model) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.apply(driver.Event(msg))
		return m, tea.Batch(m.bar.SetPercent(m.percent()), m.next())
	case closedMsg:
		m.over = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = min(msg.Width-4, 80)
		}
	case spinner.TickMsg:
		if !m.over {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

// apply folds one driver event into the model. Only the first terminal
// event of a file counts.
func (m *Model) apply(ev driver.Event) {
	if ev.File == "" || m.done[ev.File] {
		return
	}
	switch ev.Status {
	case driver.StatusQueued:
		return
	case driver.StatusWorking:
		if _, seen := m.stages[ev.File]; !seen {
			m.order = append(m.order, ev.File)
		}
		m.stages[ev.File] = ev.Stage
		return
	case driver.StatusCached:
		m.tally.cached++
	case driver.StatusError:
		m.tally.failed++
	}
	m.done[ev.File] = true
	m.tally.finished++
	m.tally.findings += ev.Diagnostics
	delete(m.stages, ev.File)
	m.order = slices.DeleteFunc(m.order, func(f string) bool { return f == ev.File })
}

func (m *Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	sum := float64(m.tally.finished)
	for _, st := range m.stages {
		sum += stageWeight(st)
	}
	return min(sum/float64(m.total), 1)
}

// stageWeight - доля работы над файлом, сделанная к началу стадии.
func stageWeight(st driver.Stage) float64 {
	switch st {
	case driver.StageParse:
		return 0.1
	case driver.StageSema:
		return 0.5
	case driver.StageLint:
		return 0.7
	default:
		return 0
	}
}

func (m *Model) View() string {
	var b strings.Builder
	head := fmt.Sprintf("%s: %d/%d files, %d finding(s)", m.title, m.tally.finished, m.total, m.tally.findings)
	if m.tally.cached > 0 {
		head += fmt.Sprintf(", %d cached", m.tally.cached)
	}
	if m.over {
		b.WriteString(okStyle.Render("✓ ") + headerStyle.Render(head))
	} else {
		b.WriteString(m.spin.View() + " " + headerStyle.Render(head))
	}
	if m.tally.failed > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf(" %d unreadable", m.tally.failed)))
	}
	b.WriteString("\n")

	nameWidth := max(m.width-14, 20)
	shown := m.order[:min(len(m.order), maxActive)]
	for _, f := range shown {
		label := stageStyle.Render(fmt.Sprintf("%-9s", stageLabel(m.stages[f])))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(f, nameWidth))
	}
	if rest := len(m.order) - len(shown); rest > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more in flight", rest)))
		b.WriteString("\n")
	}

	if m.over {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

func stageLabel(st driver.Stage) string {
	switch st {
	case driver.StageLoad:
		return "loading"
	case driver.StageParse:
		return "parsing"
	case driver.StageSema:
		return "binding"
	case driver.StageLint:
		return "linting"
	default:
		return string(st)
	}
}

// truncate shortens a path from the left so the file name stays visible.
func truncate(path string, width int) string {
	if width <= 0 || runewidth.StringWidth(path) <= width {
		return path
	}
	full := runewidth.StringWidth(path)
	if width <= 3 {
		return runewidth.TruncateLeft(path, full-width, "")
	}
	return runewidth.TruncateLeft(path, full-width+3, "...")
}
