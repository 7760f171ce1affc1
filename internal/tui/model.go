package tui

import (
	"context"
	"errors"
	"fmt"
	"math"
	"pwd-strength/internal/prefs"
	"pwd-strength/pkg/generator"
	"pwd-strength/pkg/strength"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const barWidth = 30

type Config struct {
	Estimator *strength.Estimator
	Generator *generator.Generator
	// Store persists the theme. Theme toggling only lasts the session when nil.
	Store prefs.Store

	// Generated password settings.
	Length  int
	Classes generator.Classes

	Theme  string
	Visits int
}

type themeMsg struct {
	theme string
	err   error
}

type model struct {
	cfg Config

	input   []rune
	visible bool
	theme   string
	notice  string
	result  strength.Result
}

func NewModel(cfg Config) model {
	if cfg.Estimator == nil {
		cfg.Estimator = strength.NewEstimator()
	}
	if cfg.Generator == nil {
		cfg.Generator = generator.New(generator.CryptoSource)
	}
	theme := cfg.Theme
	if theme != prefs.ThemeLight {
		theme = prefs.ThemeDark
	}

	m := model{cfg: cfg, theme: theme}
	m.evaluate()
	return m
}

func (m *model) evaluate() {
	m.result = m.cfg.Estimator.Evaluate(string(m.input))
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) toggleTheme() tea.Cmd {
	current := m.theme
	store := m.cfg.Store
	return func() tea.Msg {
		if store == nil {
			if current == prefs.ThemeDark {
				return themeMsg{theme: prefs.ThemeLight}
			}
			return themeMsg{theme: prefs.ThemeDark}
		}
		theme, err := prefs.ToggleTheme(context.Background(), store)
		return themeMsg{theme: theme, err: err}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyBackspace:
			if len(m.input) > 0 {
				m.input = m.input[:len(m.input)-1]
			}
		case tea.KeyCtrlU:
			m.input = m.input[:0]
		case tea.KeyCtrlT:
			m.visible = !m.visible
		case tea.KeyCtrlL:
			return m, m.toggleTheme()
		case tea.KeyCtrlG:
			pwd, err := m.cfg.Generator.Generate(m.cfg.Length, m.cfg.Classes)
			if errors.Is(err, generator.ErrNoClassSelected) {
				m.notice = "Select at least one character class to generate a password."
				return m, nil
			}
			if err != nil {
				m.notice = err.Error()
				return m, nil
			}
			m.input = []rune(pwd)
			m.visible = true
			m.notice = "Generated a new password."
		case tea.KeySpace:
			m.input = append(m.input, ' ')
		case tea.KeyRunes:
			m.input = append(m.input, msg.Runes...)
		default:
			return m, nil
		}
		m.evaluate()
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Could not save theme: %s", msg.err)
			return m, nil
		}
		m.theme = msg.theme
		return m, nil
	}
	return m, nil
}

func (m model) icon() string {
	if m.theme == prefs.ThemeLight {
		return "☀️"
	}
	return "🌙"
}

func (m model) bar() string {
	full, empty := "█", "░"
	if m.theme == prefs.ThemeLight {
		full, empty = "▓", "·"
	}
	filled := int(math.Round(float64(m.result.Score) / 100 * barWidth))
	return "[" + strings.Repeat(full, filled) + strings.Repeat(empty, barWidth-filled) + "]"
}

func (m model) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Password strength %s", m.icon())
	if m.cfg.Visits > 0 {
		fmt.Fprintf(&b, "  (visit #%d)", m.cfg.Visits)
	}
	b.WriteString("\n\n")

	shown := string(m.input)
	if !m.visible {
		shown = strings.Repeat("•", len(m.input))
	}
	fmt.Fprintf(&b, "Password: %s▏\n\n", shown)

	r := m.result
	fmt.Fprintf(&b, "%s %3d/100\n", m.bar(), r.Score)
	fmt.Fprintf(&b, "Rating: %s | Crack time: %s\n\n", r.Label, r.CrackTimeDisplay())

	checks := []struct {
		ok   bool
		text string
	}{
		{r.Criteria.Length, fmt.Sprintf("At least %d characters", strength.MinLength)},
		{r.Criteria.Upper, "Uppercase letter"},
		{r.Criteria.Lower, "Lowercase letter"},
		{r.Criteria.Digit, "Number"},
		{r.Criteria.Symbol, "Symbol"},
		{r.Criteria.Uncommon, "No common pattern"},
	}
	for _, c := range checks {
		mark := " "
		if c.ok {
			mark = "x"
		}
		fmt.Fprintf(&b, "  [%s] %s\n", mark, c.text)
	}

	b.WriteString("\nTips:\n")
	for _, tip := range r.Tips {
		fmt.Fprintf(&b, "  - %s\n", tip)
	}

	if m.notice != "" {
		fmt.Fprintf(&b, "\n%s\n", m.notice)
	}
	b.WriteString("\nctrl+t show/hide | ctrl+g generate | ctrl+l theme | ctrl+u clear | esc quit\n")
	return b.String()
}

// Run starts the live meter on the terminal and blocks until the user quits.
func Run(cfg Config) error {
	_, err := tea.NewProgram(NewModel(cfg)).Run()
	return err
}
