package repl

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Srimutu/liquid-to-jinja-converter/convert"
	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

const prompt = "liquid ➜ "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatEcho formats the echo of a submitted line.
func formatEcho(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc    func() context.Context
	input      textinput.Model
	session    *session
	logger     log.Logger
	history    *History
	historyIdx int
	draft      string        // input saved while browsing history
	matches    fuzzy.Matches // current completion candidates
	wordStart  int           // byte offset of the word being completed
	suggIdx    int           // selected candidate index
	tabActive  bool          // whether user is tab-cycling
	preTabText string        // input text before tab-cycling began
	preTabPos  int           // cursor position before tab-cycling began
	width      int           // terminal width for ellipsization
	quitting   bool
}

// Run starts the REPL, converting each entered line with subs applied.
// History is kept in cacheDir; an empty cacheDir keeps it in memory.
func Run(
	ctx context.Context,
	subs convert.Substitutions,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("substitutions", len(subs)),
	)

	var history *History
	if cacheDir == "" {
		history = NewHistory("")
	} else {
		history = NewHistory(filepath.Join(cacheDir, baseHistory))
	}

	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, newSession(subs, logger), history, logger)

	_, err = tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	s *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    s,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - lipgloss.Width(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render("Type a Liquid template, or :help"))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.resetCompletion()

		return m, nil

	case tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEnter:
		return m.executeInput()

	case tea.KeyUp:
		return m.historyPrev(), nil

	case tea.KeyDown:
		return m.historyNext(), nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.resetCompletion()
	m.refreshMatches()

	return m, cmd
}

func (m *model) resetCompletion() {
	m.tabActive = false
	m.suggIdx = -1
	m.matches = nil
}

// refreshMatches recomputes completion candidates for the current input.
func (m *model) refreshMatches() {
	word, start, candidates := completionContext(
		m.input.Value(), m.input.Position(), m.session.stageNames(),
	)

	m.wordStart = start
	m.matches = findMatches(word, candidates)
}

// cycle moves the completion selection by step and writes the selected
// candidate into the input.
func (m model) cycle(step int) model {
	if !m.tabActive {
		m.refreshMatches()

		if len(m.matches) == 0 {
			return m
		}

		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabPos = m.input.Position()
		m.suggIdx = -1
	}

	n := len(m.matches)
	m.suggIdx = ((m.suggIdx+step)%n + n) % n

	cand := m.matches[m.suggIdx].Str
	m.input.SetValue(m.preTabText[:m.wordStart] + cand + m.preTabText[m.preTabPos:])
	m.input.SetCursor(m.wordStart + len(cand))

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	line := m.input.Value()
	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.resetCompletion()

	if err := m.history.Add(line); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history", slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()
	m.draft = ""

	r := m.session.exec(m.ctxFunc(), line)

	m.logger.TraceContext(m.ctxFunc(), "repl exec",
		slog.String("input", line),
		slog.Bool("error", r.err != nil),
	)

	echo := tea.Println(formatEcho(line))

	switch {
	case r.quit:
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case r.clear:
		return m, tea.ClearScreen

	case r.err != nil:
		return m, tea.Sequence(echo, tea.Println(errorStyle.Render("error: "+r.err.Error())))

	default:
		return m, tea.Sequence(echo, tea.Println(resultStyle.Render(r.text)))
	}
}

func (m model) historyPrev() model {
	if m.historyIdx == 0 {
		return m
	}

	if m.historyIdx == m.history.Len() {
		m.draft = m.input.Value()
	}

	m.historyIdx--

	if line, err := m.history.Line(m.historyIdx); err == nil {
		m.input.SetValue(line)
	}

	m.resetCompletion()

	return m
}

func (m model) historyNext() model {
	if m.historyIdx >= m.history.Len() {
		return m
	}

	m.historyIdx++

	if m.historyIdx == m.history.Len() {
		m.input.SetValue(m.draft)
	} else if line, err := m.history.Line(m.historyIdx); err == nil {
		m.input.SetValue(line)
	}

	m.resetCompletion()

	return m
}
