package viewer

// Color is an RGB object color in the 0..1 range.
type Color struct {
	R, G, B float32
}

// Array returns the color as a GL-friendly triple.
func (c Color) Array() [3]float32 {
	return [3]float32{c.R, c.G, c.B}
}

// Color presets, selected with keys 1-5.
var presets = [...]Color{
	{1, 0, 0}, // red
	{0, 1, 0}, // green
	{0, 0, 1}, // blue
	{1, 1, 0}, // yellow
	{1, 1, 1}, // white
}

// PresetCount is the number of selectable colors.
const PresetCount = len(presets)

// DefaultPreset is the preset a new session starts with.
const DefaultPreset = 5

// Preset returns the 1-based color preset n.
func Preset(n int) (Color, bool) {
	if n < 1 || n > PresetCount {
		return Color{}, false
	}
	return presets[n-1], true
}
