package core

// DrawKind identifies a recorded render command.
type DrawKind uint8

const (
	DrawClear DrawKind = iota
	DrawRect
	DrawCircle
	DrawImage
	DrawText
)

func (k DrawKind) String() string {
	switch k {
	case DrawClear:
		return "clear"
	case DrawRect:
		return "rect"
	case DrawCircle:
		return "circle"
	case DrawImage:
		return "image"
	case DrawText:
		return "text"
	default:
		return "unknown"
	}
}

// DrawCmd is a single render command in logical coordinates.
// Rect and Image use X/Y as the top-left corner, Circle uses X/Y as center.
type DrawCmd struct {
	Kind  DrawKind
	X, Y  float64
	W, H  float64
	R     float64
	Color Color
	Image string // Asset name for DrawImage
	Text  string
}

// DrawList records render commands for a host to replay.
// It is the only rendering surface the simulation sees.
type DrawList struct {
	Width, Height float64
	cmds          []DrawCmd
}

// NewDrawList creates an empty list for a logical surface of the given size.
func NewDrawList(width, height float64) *DrawList {
	return &DrawList{Width: width, Height: height, cmds: make([]DrawCmd, 0, 128)}
}

// Reset drops all recorded commands, keeping the backing storage.
func (d *DrawList) Reset() {
	d.cmds = d.cmds[:0]
}

// Clear records a full-surface fill.
func (d *DrawList) Clear(c Color) {
	d.cmds = append(d.cmds, DrawCmd{Kind: DrawClear, W: d.Width, H: d.Height, Color: c})
}

// FillRect records a filled rectangle with top-left corner (x, y).
func (d *DrawList) FillRect(x, y, w, h float64, c Color) {
	d.cmds = append(d.cmds, DrawCmd{Kind: DrawRect, X: x, Y: y, W: w, H: h, Color: c})
}

// FillCircle records a filled circle centered at (x, y).
func (d *DrawList) FillCircle(x, y, r float64, c Color) {
	d.cmds = append(d.cmds, DrawCmd{Kind: DrawCircle, X: x, Y: y, R: r, Color: c})
}

// DrawImage records a named image stretched over the given rectangle.
func (d *DrawList) DrawImage(name string, x, y, w, h float64) {
	d.cmds = append(d.cmds, DrawCmd{Kind: DrawImage, X: x, Y: y, W: w, H: h, Image: name})
}

// DrawText records a text label whose top-left corner is (x, y).
func (d *DrawList) DrawText(text string, x, y float64, c Color) {
	d.cmds = append(d.cmds, DrawCmd{Kind: DrawText, X: x, Y: y, Text: text, Color: c})
}

// Commands returns the recorded commands in draw order.
// The slice is only valid until the next Reset.
func (d *DrawList) Commands() []DrawCmd {
	return d.cmds
}

// Len returns the number of recorded commands.
func (d *DrawList) Len() int {
	return len(d.cmds)
}
