package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gahag/hush/driver"
)

var (
	accentColor = lipgloss.Color("#7C3AED")
	okColor     = lipgloss.Color("#10B981")
	failColor   = lipgloss.Color("#EF4444")
	dimColor    = lipgloss.Color("#6B7280")
	keyColor    = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(okColor)
	failStyle   = lipgloss.NewStyle().Foreground(failColor)
	dimStyle    = lipgloss.NewStyle().Foreground(dimColor)
	titleStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true).Padding(0, 1)
	keyStyle    = lipgloss.NewStyle().Foreground(keyColor)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

// replKeywords feed tab completion together with the session's globals.
var replKeywords = []string{
	"let", "function", "if", "then", "elseif", "else", "end", "while", "do", "for", "in",
	"return", "break", "self", "nil", "true", "false", "and", "or", "not",
}

type transcriptEntry struct {
	input  string
	output string
	result string
	failed bool
}

type replModel struct {
	input      textinput.Model
	cfg        driver.Config
	session    *driver.Session
	transcript []transcriptEntry
	inputs     []string
	recall     int
	width      int
	height     int
	showHelp   bool
	quitting   bool
	ready      bool
}

type replKeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	Submit   key.Binding
	Quit     key.Binding
	Clear    key.Binding
	Complete key.Binding
	Help     key.Binding
}

var replKeys = replKeyMap{
	Prev:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous input")),
	Next:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next input")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "evaluate")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c", "ctrl+d"), key.WithHelp("ctrl+d", "quit")),
	Clear:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "clear")),
	Complete: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
	Help:     key.NewBinding(key.WithKeys("ctrl+k"), key.WithHelp("ctrl+k", "help")),
}

func newREPLModel(cfg driver.Config) replModel {
	ti := textinput.New()
	ti.Placeholder = "statement or expression"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.Prompt = "hush> "
	ti.PromptStyle = promptStyle

	return replModel{
		input:   ti,
		cfg:     cfg,
		session: driver.NewSession(cfg),
		recall:  -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-10, 10)
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, replKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, replKeys.Clear):
			m.transcript = nil
			return m, nil
		case key.Matches(msg, replKeys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, replKeys.Prev):
			m.recallInput(-1)
			return m, nil
		case key.Matches(msg, replKeys.Next):
			m.recallInput(1)
			return m, nil
		case key.Matches(msg, replKeys.Complete):
			m.complete()
			return m, nil
		case key.Matches(msg, replKeys.Submit):
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m replModel) submit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.recall = -1
	if text == "" {
		return m, nil
	}
	if strings.HasPrefix(text, ":") {
		return m.command(text)
	}

	m.inputs = append(m.inputs, text)
	m.transcript = append(m.transcript, m.evaluate(text))
	return m, nil
}

// recallInput walks the input history; step is -1 for older and 1 for newer.
func (m *replModel) recallInput(step int) {
	if len(m.inputs) == 0 {
		return
	}
	switch {
	case m.recall == -1 && step < 0:
		m.recall = len(m.inputs) - 1
	case m.recall == -1:
		return
	default:
		m.recall += step
	}
	if m.recall < 0 {
		m.recall = 0
	}
	if m.recall >= len(m.inputs) {
		m.recall = -1
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.inputs[m.recall])
	m.input.CursorEnd()
}

func (m replModel) command(text string) (tea.Model, tea.Cmd) {
	name := strings.Fields(text)[0]
	switch name {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.transcript = nil
	case ":globals", ":g":
		m.transcript = append(m.transcript, transcriptEntry{
			input:  text,
			result: strings.Join(m.session.Globals(), ", "),
		})
	case ":reset", ":r":
		m.session = driver.NewSession(m.cfg)
		m.transcript = append(m.transcript, transcriptEntry{input: text, result: "session reset"})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.transcript = append(m.transcript, transcriptEntry{
			input:  text,
			result: fmt.Sprintf("unknown command %s", name),
			failed: true,
		})
	}
	return m, nil
}

func (m replModel) evaluate(text string) transcriptEntry {
	out := m.session.Eval(text)
	entry := transcriptEntry{input: text, output: strings.TrimRight(out.Output, "\n")}
	if out.Status != driver.ExitSuccess {
		entry.failed = true
		entry.result = strings.Join(out.Errors, "\n")
		return entry
	}
	entry.result = out.Value.Inspect()
	return entry
}

func (m *replModel) complete() {
	text := m.input.Value()
	start := strings.LastIndexAny(text, " \t()[],.") + 1
	prefix := text[start:]
	if prefix == "" {
		return
	}

	var matches []string
	for _, candidate := range append(m.session.Globals(), replKeywords...) {
		if strings.HasPrefix(candidate, prefix) {
			matches = append(matches, candidate)
		}
	}
	switch len(matches) {
	case 0:
	case 1:
		m.input.SetValue(text[:start] + matches[0])
		m.input.CursorEnd()
	default:
		m.transcript = append(m.transcript, transcriptEntry{result: "completions: " + strings.Join(matches, " ")})
	}
}

func (m replModel) View() string {
	if m.quitting {
		return dimStyle.Render("bye\n")
	}
	if !m.ready {
		return "starting..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("hush") + dimStyle.Render(version) + "\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reserved := 7
	if m.showHelp {
		reserved += 12
	}
	lines := m.transcriptLines()
	if room := m.height - reserved; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for _, line := range lines {
		b.WriteString(line + "\n")
	}

	if m.showHelp {
		b.WriteString(helpPanel() + "\n")
	}

	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(keyStyle.Render("ctrl+k") + dimStyle.Render(" help  ") +
		keyStyle.Render("ctrl+l") + dimStyle.Render(" clear  ") +
		keyStyle.Render("ctrl+d") + dimStyle.Render(" quit"))
	return b.String()
}

func (m replModel) transcriptLines() []string {
	var lines []string
	for _, entry := range m.transcript {
		if entry.input != "" {
			lines = append(lines, dimStyle.Render("  › ")+entry.input)
		}
		if entry.output != "" {
			for _, line := range strings.Split(entry.output, "\n") {
				lines = append(lines, "    "+line)
			}
		}
		for _, line := range strings.Split(entry.result, "\n") {
			if entry.failed {
				lines = append(lines, "  "+failStyle.Render("✗ "+line))
			} else {
				lines = append(lines, "  "+valueStyle.Render("→ "+line))
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func helpPanel() string {
	rows := []struct{ key, desc string }{
		{"↑/↓", "walk input history"},
		{"tab", "complete globals and keywords"},
		{"enter", "evaluate"},
		{":globals", "list top-level names"},
		{":clear", "clear the transcript"},
		{":reset", "start a fresh session"},
		{":help", "toggle this panel"},
		{":quit", "leave"},
	}
	lines := []string{promptStyle.Render("Help")}
	for _, row := range rows {
		lines = append(lines, fmt.Sprintf("  %s  %s", keyStyle.Render(fmt.Sprintf("%-9s", row.key)), dimStyle.Render(row.desc)))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func runREPL(cfg driver.Config) error {
	_, err := tea.NewProgram(newREPLModel(cfg), tea.WithAltScreen()).Run()
	return err
}
