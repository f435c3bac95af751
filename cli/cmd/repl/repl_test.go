package repl

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Srimutu/liquid-to-jinja-converter/log"
)

func testModel(t *testing.T, lines ...string) model {
	t.Helper()

	h := NewHistory("")
	for _, line := range lines {
		if err := h.Add(line); err != nil {
			t.Fatal(err)
		}
	}

	return newModel(context.Background(), newSession(nil, log.Logger{}), h, log.Logger{})
}

func press(m model, keys ...tea.KeyMsg) model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(model)
	}

	return m
}

func typed(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelTabCompletesCommand(t *testing.T) {
	m := press(testModel(t), typed(":qu"), tea.KeyMsg{Type: tea.KeyTab})

	if got := m.input.Value(); got != ":quit" {
		t.Errorf("input after Tab = %q, want %q", got, ":quit")
	}

	if !m.tabActive {
		t.Error("tab cycling not active")
	}
}

func TestModelTabCyclesStages(t *testing.T) {
	m := press(testModel(t), typed(":stages "))

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	first := m.input.Value()

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	second := m.input.Value()

	if first != ":stages comment" {
		t.Errorf("first completion = %q, want %q", first, ":stages comment")
	}

	if second != ":stages assign-times" {
		t.Errorf("second completion = %q, want %q", second, ":stages assign-times")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.input.Value(); got != first {
		t.Errorf("Shift-Tab completion = %q, want %q", got, first)
	}
}

func TestModelHistoryNavigation(t *testing.T) {
	m := press(testModel(t, "one", "two"), typed("draft"))

	m = press(m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "two" {
		t.Errorf("Up = %q, want two", got)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.input.Value(); got != "one" {
		t.Errorf("Up at oldest = %q, want one", got)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown})
	if got := m.input.Value(); got != "draft" {
		t.Errorf("Down past newest = %q, want draft", got)
	}
}

func TestModelEnterRecordsHistory(t *testing.T) {
	m := press(testModel(t), typed("{{x}}"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if got, _ := m.history.Line(0); got != "{{x}}" {
		t.Errorf("history[0] = %q, want %q", got, "{{x}}")
	}

	if m.historyIdx != m.history.Len() {
		t.Errorf("historyIdx = %d, want %d", m.historyIdx, m.history.Len())
	}
}

func TestModelQuit(t *testing.T) {
	m := press(testModel(t), typed(":quit"), tea.KeyMsg{Type: tea.KeyEnter})
	if !m.quitting {
		t.Error(":quit did not quit")
	}

	if m.View() != "" {
		t.Errorf("View() after quit = %q, want empty", m.View())
	}

	m = press(testModel(t), tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting {
		t.Error("Ctrl+C on empty line did not quit")
	}

	m = press(testModel(t), typed("abc"), tea.KeyMsg{Type: tea.KeyCtrlC})
	if m.quitting || m.input.Value() != "" {
		t.Errorf("Ctrl+C with input: quitting=%v input=%q", m.quitting, m.input.Value())
	}
}
