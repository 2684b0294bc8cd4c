package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	appTitle    = "🤖 AI-Powered Fun Fact Generator"
	appSubtitle = "Enter a topic to generate an interesting and unique fact!"
	topicLabel  = "What kind of fact would you like? (e.g., 'space', 'animals', 'history')"
	buttonLabel = "Generate AI Fact 🚀"
	bannerText  = "Here's your fun fact!"
	footerText  = "Powered by Google Generative AI."
)

// model represents the application state for the TUI.
type model struct {
	state     appState
	focus     focusTarget
	input     textinput.Model
	spinner   spinner.Model
	facts     FactSource
	modelName string
	topic     string // topic of the current or last generation
	warning   string
	fact      *Fact
}

// appState represents the current state of the application.
type appState int

const (
	stateIdle appState = iota
	stateGenerating
	stateResult
)

// focusTarget is the control receiving key presses.
type focusTarget int

const (
	focusInput focusTarget = iota
	focusButton
)

// factResult carries a finished generation back into Update.
type factResult struct {
	fact Fact
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("87")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("240")).
			Padding(0, 2)

	focusedButtonStyle = buttonStyle.
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("39")).
				Bold(true)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("117")).
			Bold(true).
			Padding(1, 2)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

func initialModel(facts FactSource, modelName string) model {
	input := textinput.New()
	input.Placeholder = "space"
	input.CharLimit = 200
	input.Width = 50
	input.Focus()

	return model{
		state:     stateIdle,
		focus:     focusInput,
		input:     input,
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		facts:     facts,
		modelName: modelName,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit

		case "tab", "shift+tab":
			return m.toggleFocus(), nil

		case "enter":
			return m.trigger()
		}

		if m.focus != focusInput {
			return m, nil
		}

	case factResult:
		m.state = stateResult
		m.fact = &msg.fact
		return m, nil

	case spinner.TickMsg:
		if m.state != stateGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) toggleFocus() model {
	if m.focus == focusInput {
		m.focus = focusButton
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

// trigger handles activation of the generate button.
func (m model) trigger() (tea.Model, tea.Cmd) {
	if m.state == stateGenerating {
		return m, nil
	}

	topic := strings.TrimSpace(m.input.Value())
	if topic == "" {
		m.state = stateResult
		m.warning = msgNoTopic
		m.fact = nil
		return m, nil
	}

	m.state = stateGenerating
	m.topic = topic
	m.warning = ""
	m.fact = nil
	return m, tea.Batch(m.spinner.Tick, generateFact(m.facts, topic))
}

// generateFact creates a tea.Cmd that runs one generation.
func generateFact(facts FactSource, topic string) tea.Cmd {
	return func() tea.Msg {
		return factResult{fact: facts.Generate(context.Background(), topic)}
	}
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(appTitle))
	s.WriteString("\n")
	s.WriteString(normalStyle.Render(appSubtitle))
	s.WriteString("\n\n")

	s.WriteString(labelStyle.Render(topicLabel))
	s.WriteString("\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")

	if m.focus == focusButton {
		s.WriteString(focusedButtonStyle.Render(buttonLabel))
	} else {
		s.WriteString(buttonStyle.Render(buttonLabel))
	}
	s.WriteString("\n\n")

	switch m.state {
	case stateGenerating:
		s.WriteString(fmt.Sprintf("%s Asking gemini about %s...\n\n", m.spinner.View(), m.topic))

	case stateResult:
		if m.warning != "" {
			s.WriteString(warningStyle.Render(m.warning))
			s.WriteString("\n\n")
			break
		}
		if m.fact == nil {
			break
		}
		if banner := m.fact.ErrorBanner(); banner != "" {
			s.WriteString(errorStyle.Render(banner))
			s.WriteString("\n\n")
		}
		if m.fact.Kind == FactOK {
			s.WriteString(bannerStyle.Render(bannerText))
			s.WriteString("\n\n")
		}
		s.WriteString(infoStyle.Render(m.fact.Text))
		s.WriteString("\n\n")
	}

	s.WriteString(footerStyle.Render("───"))
	s.WriteString("\n")
	s.WriteString(footerStyle.Render(fmt.Sprintf("%s (model: %s)", footerText, m.modelName)))
	s.WriteString("\n\n")
	s.WriteString(normalStyle.Render("Enter: Generate | Tab: Switch focus | Esc: Quit"))

	return s.String()
}
