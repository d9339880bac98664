package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-mines/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"vim k", runeKey('k'), core.ActionUp, false},
		{"wasd s", runeKey('s'), core.ActionDown, false},
		{"vim h", runeKey('h'), core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionReveal, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionReveal, false},
		{"flag", runeKey('f'), core.ActionFlag, false},
		{"chord", runeKey('c'), core.ActionChord, false},
		{"mines", runeKey('m'), core.ActionRevealMines, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, expected %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("quit = %v, expected %v", quit, tt.quit)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.MouseMsg
		button core.Button
	}{
		{"left press", tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, core.ButtonLeft},
		{"right press", tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}, core.ButtonRight},
		{"middle press", tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonMiddle}, core.ButtonMiddle},
		{"release", tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}, core.ButtonNone},
		{"motion", tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}, core.ButtonNone},
		{"wheel", tea.MouseMsg{X: 4, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp}, core.ButtonNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			km.MapMouseToFrame(tt.msg, &frame)
			if frame.Click.Button != tt.button {
				t.Errorf("Button = %v, expected %v", frame.Click.Button, tt.button)
			}
			if tt.button != core.ButtonNone && (frame.Click.X != 4 || frame.Click.Y != 5) {
				t.Errorf("Click = %+v, expected (4, 5)", frame.Click)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('t'), MenuActionStats},
		{runeKey('b'), MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
				t.Errorf("MapKeyToMenuAction = %v, expected %v", got, tt.want)
			}
		})
	}
}
