package cli

import (
	"fmt"
	"os"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/karibuclean/instock/internal/models"
)

// Theme holds the color scheme for CLI output.
type Theme struct {
	Safe     lipgloss.Color
	Low      lipgloss.Color
	Critical lipgloss.Color
	Hint     lipgloss.Color
}

var defaultTheme = Theme{
	Safe:     lipgloss.Color("#00D787"), // green
	Low:      lipgloss.Color("#FFAF00"), // amber
	Critical: lipgloss.Color("#FF005F"), // red
	Hint:     lipgloss.Color("#6C6C6C"), // dim gray
}

func statusStyle(status string) lipgloss.Style {
	switch status {
	case models.StatusSafe:
		return lipgloss.NewStyle().Foreground(defaultTheme.Safe)
	case models.StatusLow:
		return lipgloss.NewStyle().Foreground(defaultTheme.Low)
	default:
		return lipgloss.NewStyle().Foreground(defaultTheme.Critical).Bold(true)
	}
}

func lowStockStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(defaultTheme.Critical).Bold(true)
}

func hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(defaultTheme.Hint).Italic(true)
}

// doneMsg signals that the background task finished.
type doneMsg struct{}

// spinModel shows a spinner while one blocking external call runs.
type spinModel struct {
	spinner spinner.Model
	label   string
	task    tea.Cmd
	done    bool
}

func newSpinModel(label string, run func()) spinModel {
	return spinModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		label:   label,
		task: func() tea.Msg {
			run()
			return doneMsg{}
		},
	}
}

// Init starts the spinner and kicks off the task.
func (m spinModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.task)
}

// Update handles messages and returns the updated model.
func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case doneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the spinner line.
func (m spinModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(fmt.Sprintf("%s %s %s\n",
		m.spinner.View(), m.label, hintStyle().Render("(Ctrl+C to abort)")))
}

// withSpinner runs task behind a spinner when stdout is a terminal, and
// plainly otherwise. The task always runs exactly once.
func withSpinner(label string, task func()) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		task()
		return nil
	}

	p := tea.NewProgram(newSpinModel(label, task))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("spinner: %w", err)
	}
	return nil
}
