package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(8, 3)
	if s.Width() != 8 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	want := strings.Repeat(" ", 8)
	for y := range 3 {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected blanks", y, got)
		}
	}
}

func TestScreenBounds(t *testing.T) {
	s := NewScreen(4, 4)

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 4, 0},
		{"top", 0, -1},
		{"bottom", 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.SetColored(tt.x, tt.y, 'X', ColorRed) // Dropped, no panic
			if got := s.GetCell(tt.x, tt.y); got != blankCell {
				t.Errorf("GetCell(%d, %d) = %+v, expected blank", tt.x, tt.y, got)
			}
		})
	}
	if strings.ContainsRune(s.String(), 'X') {
		t.Error("out-of-bounds write leaked onto the screen")
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)
	s.FillColored('.', ColorSky)
	s.DrawRectColored(NewRect(1, 1, 2, 1), '#', ColorBrown)
	s.DrawTextColored(8, 0, "abc", ColorWhite) // Clipped after "ab"

	tests := []struct {
		x, y int
		want Cell
	}{
		{0, 0, Cell{'.', ColorSky}},
		{1, 1, Cell{'#', ColorBrown}},
		{2, 1, Cell{'#', ColorBrown}},
		{3, 1, Cell{'.', ColorSky}},
		{8, 0, Cell{'a', ColorWhite}},
		{9, 0, Cell{'b', ColorWhite}},
	}
	for _, tt := range tests {
		if got := s.GetCell(tt.x, tt.y); got != tt.want {
			t.Errorf("GetCell(%d, %d) = %+v, expected %+v", tt.x, tt.y, got, tt.want)
		}
	}

	s.Clear()
	if got := s.GetCell(1, 1); got != blankCell {
		t.Errorf("after Clear, cell = %+v, expected blank", got)
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawTextColored(0, 0, "abcd", ColorDefault)
	s.DrawTextColored(0, 1, "efgh", ColorDefault)

	s.Resize(2, 3)
	if got := s.String(); got != "ab\nef\n  " {
		t.Errorf("after shrink String() = %q", got)
	}

	s.Resize(3, 1)
	if got := s.String(); got != "ab " {
		t.Errorf("after regrow String() = %q", got)
	}

	s.Resize(-5, -5)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative sizes should clamp to zero, got %dx%d", s.Width(), s.Height())
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if !f.Empty() {
		t.Fatal("zero frame should be empty")
	}

	f.Set(ActionTap)
	f.Set(ActionMute)
	f.Set(ActionNone) // Ignored
	if !f.Has(ActionTap) || !f.Has(ActionMute) || f.Has(ActionPause) {
		t.Errorf("frame = %+v, expected tap and mute only", f)
	}
	if f.Has(ActionNone) {
		t.Error("ActionNone must never be set")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Clear should empty the frame")
	}
}
