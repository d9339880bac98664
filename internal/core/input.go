package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, K, Up arrow - move cursor up
	ActionDown               // S, J, Down arrow - move cursor down
	ActionLeft               // A, H, Left arrow - move cursor left
	ActionRight              // D, L, Right arrow - move cursor right
	ActionReveal             // Space, Enter - reveal the cell under the cursor
	ActionFlag               // F - toggle a flag
	ActionChord              // C - reveal around a satisfied number
	ActionRevealMines        // M - show all mines after a loss
	ActionBack               // B, Escape - go back to menu
	ActionRestart            // R key - start a new board
	ActionQuit               // Q, Ctrl+C - exit game
	ActionPause              // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionReveal:
		return "Reveal"
	case ActionFlag:
		return "Flag"
	case ActionChord:
		return "Chord"
	case ActionRevealMines:
		return "RevealMines"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// Button identifies a mouse button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Click is a mouse press at a screen position.
type Click struct {
	X, Y   int
	Button Button
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool

	// Click is the last mouse press this frame. Button is ButtonNone when
	// there was none.
	Click Click
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// SetClick records a mouse press for this frame.
func (f *InputFrame) SetClick(x, y int, b Button) {
	f.Click = Click{X: x, Y: y, Button: b}
}

// HasClick returns true if a mouse button was pressed this frame.
func (f InputFrame) HasClick() bool {
	return f.Click.Button != ButtonNone
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Click = Click{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Click = f.Click
	return clone
}
