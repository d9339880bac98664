package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	want := strings.Repeat(strings.Repeat(" ", 12)+"\n", 3) + strings.Repeat(" ", 12)
	if got := s.String(); got != want {
		t.Errorf("String() = %q, expected all spaces", got)
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(5, 3)

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 5, 0},
		{"above", 0, -1},
		{"below", 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetWithColor(tt.x, tt.y, 'X', ColorRed) // must not panic
			if c := s.GetCell(tt.x, tt.y); c != blank {
				t.Errorf("GetCell(%d, %d) = %+v, expected blank", tt.x, tt.y, c)
			}
		})
	}
}

func TestScreenDrawTextClips(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawText(5, 1, "Mines: 10")

	if got := s.Row(1); got != "     Min" {
		t.Errorf("Row(1) = %q, expected clipped text", got)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	tests := []struct {
		name  string
		width int
		text  string
		x     int
	}{
		{"ascii", 20, "BOOM", 8},
		{"glyphs", 10, "■■", 4},
		{"too wide", 4, "CLEARED", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(tt.width, 1)
			s.DrawTextCentered(0, tt.text)

			first := []rune(tt.text)[0]
			if tt.x >= 0 && s.Get(tt.x, 0) != first {
				t.Errorf("Row = %q, expected text to start at %d", s.Row(0), tt.x)
			}
			if tt.x < 0 && s.Get(0, 0) != []rune(tt.text)[1] {
				t.Errorf("Row = %q, expected text clipped on both sides", s.Row(0))
			}
		})
	}
}

func TestScreenDrawBoardFrame(t *testing.T) {
	// A 2x3 board with one-column cells: frame is 5 wide, 4 tall.
	s := NewScreen(7, 6)
	frame := NewRect(1, 1, 5, 4)
	s.DrawBox(frame, ColorGray)
	s.DrawRect(frame.Inset(1), '■')

	want := []string{
		"       ",
		" ┌───┐ ",
		" │■■■│ ",
		" │■■■│ ",
		" └───┘ ",
		"       ",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("Row(%d) = %q, expected %q", y, got, row)
		}
	}
	if c := s.GetCell(1, 1); c.Color != ColorGray {
		t.Errorf("frame color = %v, expected gray", c.Color)
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 3)
	s.DrawTextWithColor(1, 1, "42", ColorBlue)

	if c := s.GetCell(1, 1); c.Rune != '4' || c.Color != ColorBlue {
		t.Errorf("GetCell(1, 1) = %+v, expected blue '4'", c)
	}
	if c := s.GetCell(0, 1); c.Color != ColorDefault {
		t.Errorf("GetCell(0, 1).Color = %v, expected default", c.Color)
	}

	s.Clear()
	if c := s.GetCell(1, 1); c != blank {
		t.Errorf("After Clear, GetCell(1, 1) = %+v, expected blank", c)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 6)
	s.DrawTextWithColor(0, 0, "Expert", ColorBrightWhite)
	s.DrawText(0, 5, "gone")

	s.Resize(4, 2)
	if s.Width() != 4 || s.Height() != 2 {
		t.Fatalf("size = %dx%d, expected 4x2", s.Width(), s.Height())
	}
	if got := s.Row(0); got != "Expe" {
		t.Errorf("Row(0) = %q, expected %q", got, "Expe")
	}

	s.Resize(8, 6)
	if got := s.Row(0); got != "Expe    " {
		t.Errorf("Row(0) = %q after enlarging, expected %q", got, "Expe    ")
	}
	if c := s.GetCell(0, 0); c.Color != ColorBrightWhite {
		t.Errorf("color after resize = %v, expected bright white", c.Color)
	}
	if got := s.Row(5); strings.TrimSpace(got) != "" {
		t.Errorf("Row(5) = %q, expected blank after shrinking", got)
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if got := s.Row(-1); got != "   " {
		t.Errorf("Row(-1) = %q, expected spaces", got)
	}
}
