package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mubatu/match3-game/internal/core"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKeyActions(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"w is up", keyMsg('w'), core.ActionUp},
		{"k is up", keyMsg('k'), core.ActionUp},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{"s is down", keyMsg('s'), core.ActionDown},
		{"a is left", keyMsg('a'), core.ActionLeft},
		{"d is right", keyMsg('d'), core.ActionRight},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect},
		{"space selects", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionSelect},
		{"esc cancels", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionCancel},
		{"r restarts", keyMsg('r'), core.ActionRestart},
		{"unmapped", keyMsg('z'), core.ActionNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, isQuit := km.MapKey(tc.msg)
			if got != tc.want {
				t.Errorf("MapKey(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
			if isQuit {
				t.Errorf("MapKey(%q) should not be a quit request", tc.msg.String())
			}
		})
	}
}

func TestMapKeyQuit(t *testing.T) {
	km := NewKeyMapper()

	for _, msg := range []tea.KeyMsg{keyMsg('q'), {Type: tea.KeyCtrlC}} {
		action, isQuit := km.MapKey(msg)
		if !isQuit || action != core.ActionQuit {
			t.Errorf("MapKey(%q) = (%v, %v), expected quit", msg.String(), action, isQuit)
		}
	}
}
