package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gahag/hush/driver"
)

func enter(t *testing.T, m replModel, text string) (replModel, tea.Cmd) {
	t.Helper()
	m.input.SetValue(text)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func TestREPLQuitCommand(t *testing.T) {
	m, cmd := enter(t, newREPLModel(driver.DefaultConfig()), ":quit")
	if !m.quitting {
		t.Fatalf("quitting flag not set")
	}
	if m.input.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected QuitMsg")
	}
}

func TestREPLHelpCommandHasNoCmd(t *testing.T) {
	m, cmd := enter(t, newREPLModel(driver.DefaultConfig()), ":help")
	if cmd != nil {
		t.Fatalf("expected no command")
	}
	if !m.showHelp || m.quitting {
		t.Fatalf("expected help toggled on, got help=%v quitting=%v", m.showHelp, m.quitting)
	}
}

func TestREPLEvaluatesAcrossInputs(t *testing.T) {
	m := newREPLModel(driver.DefaultConfig())
	m, _ = enter(t, m, "let score = 40")
	m, _ = enter(t, m, `std.print("adding") score + 2`)

	last := m.transcript[len(m.transcript)-1]
	if last.failed {
		t.Fatalf("unexpected failure %q", last.result)
	}
	if last.output != "adding" || last.result != "42" {
		t.Fatalf("unexpected entry %+v", last)
	}
	if len(m.inputs) != 2 {
		t.Fatalf("expected 2 recorded inputs, got %d", len(m.inputs))
	}
}

func TestREPLReportsErrors(t *testing.T) {
	m, _ := enter(t, newREPLModel(driver.DefaultConfig()), "nope")
	last := m.transcript[len(m.transcript)-1]
	if !last.failed || !strings.Contains(last.result, "undeclared variable 'nope'") {
		t.Fatalf("unexpected entry %+v", last)
	}
}

func TestREPLResetForgetsGlobals(t *testing.T) {
	m := newREPLModel(driver.DefaultConfig())
	m, _ = enter(t, m, "let kept = 1")
	m, _ = enter(t, m, ":reset")
	m, _ = enter(t, m, "kept")
	if last := m.transcript[len(m.transcript)-1]; !last.failed {
		t.Fatalf("expected kept to be gone after reset, got %+v", last)
	}
}

func TestREPLHistoryRecall(t *testing.T) {
	m := newREPLModel(driver.DefaultConfig())
	m, _ = enter(t, m, "1")
	m, _ = enter(t, m, "2")

	m.recallInput(-1)
	if m.input.Value() != "2" {
		t.Fatalf("expected newest input, got %q", m.input.Value())
	}
	m.recallInput(-1)
	m.recallInput(-1)
	if m.input.Value() != "1" {
		t.Fatalf("expected oldest input, got %q", m.input.Value())
	}
	m.recallInput(1)
	m.recallInput(1)
	if m.input.Value() != "" || m.recall != -1 {
		t.Fatalf("expected to walk past the newest input, got %q", m.input.Value())
	}
}

func TestREPLCompletion(t *testing.T) {
	m := newREPLModel(driver.DefaultConfig())
	m, _ = enter(t, m, "let counter = 0")

	m.input.SetValue("counter + coun")
	m.complete()
	if m.input.Value() != "counter + counter" {
		t.Fatalf("unexpected completion %q", m.input.Value())
	}

	m.input.SetValue("e")
	m.complete()
	last := m.transcript[len(m.transcript)-1]
	if last.result != "completions: elseif else end" {
		t.Fatalf("unexpected completions %q", last.result)
	}
}
