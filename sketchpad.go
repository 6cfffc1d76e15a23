package sketchpad

import "math"

// Guid identifies a scene node. Guids are opaque and never reused while the
// node they name exists.
type Guid string

// NoGuid is the empty Guid. It stands for "no node" wherever a Guid is
// optional (a root's parent, a missed hit test).
const NoGuid Guid = ""

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// RGB returns an opaque color from 8-bit channel values.
func RGB(r, g, b uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, 1}
}

// Colors used by the editor chrome.
var (
	ColorBackground  = RGB(0xfa, 0xfa, 0xfa)
	ColorAxis        = RGB(0xaa, 0xaa, 0xaa)
	ColorSelection   = RGB(0x44, 0xee, 0xff)
	ColorHover       = RGB(0x88, 0xff, 0xff)
	ColorFrameStroke = RGB(0xcc, 0xcc, 0xcc)
)

// framePalette is cycled through when the frame tool creates a frame.
var framePalette = []Color{
	RGB(0xaa, 0xaa, 0xff),
	RGB(0xff, 0xaa, 0xaa),
	RGB(0xaa, 0xff, 0xaa),
	RGB(0xff, 0xff, 0xaa),
	RGB(0xff, 0xaa, 0xff),
	RGB(0xaa, 0xff, 0xff),
}

// ColorPicker hands out palette colors in a fixed rotation.
type ColorPicker struct {
	next int
}

// Next returns the next palette color.
func (p *ColorPicker) Next() Color {
	c := framePalette[p.next%len(framePalette)]
	p.next++
	return c
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Min returns the component-wise minimum of v and o.
func (v Vec2) Min(o Vec2) Vec2 { return Vec2{math.Min(v.X, o.X), math.Min(v.Y, o.Y)} }

// Max returns the component-wise maximum of v and o.
func (v Vec2) Max(o Vec2) Vec2 { return Vec2{math.Max(v.X, o.X), math.Max(v.Y, o.Y)} }

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Shift reports whether the shift bit is set.
func (m KeyModifiers) Shift() bool { return m&ModShift != 0 }

// Tool selects the set of mouse behaviors the editor runs.
type Tool uint8

const (
	ToolDefault Tool = iota // selection and drag-move
	ToolFrame               // draw new frames
)

func (t Tool) String() string {
	switch t {
	case ToolDefault:
		return "default"
	case ToolFrame:
		return "frame"
	default:
		return "unknown"
	}
}

// Key identifies a keyboard key the editor reacts to.
type Key uint8

const (
	KeyUnknown Key = iota
	KeyF           // switch to the frame tool
	KeyEscape      // switch back to the default tool
	KeyHome        // animate the camera back to the origin at 100%
)

// ParseTool maps a tool name ("default", "frame") to its Tool.
func ParseTool(name string) (Tool, bool) {
	switch name {
	case "default", "select", "selection":
		return ToolDefault, true
	case "frame":
		return ToolFrame, true
	}
	return ToolDefault, false
}

// ParseKey maps a key name ("f", "escape", "home") to its Key.
func ParseKey(name string) Key {
	switch name {
	case "f", "F":
		return KeyF
	case "escape", "esc", "Escape":
		return KeyEscape
	case "home", "Home", "0":
		return KeyHome
	}
	return KeyUnknown
}
