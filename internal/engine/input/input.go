// Package input turns SDL2 events into viewer commands.
package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// CommandType identifies what a key press or window event asks the viewer to do.
type CommandType int

const (
	CommandNone CommandType = iota
	CommandQuit
	CommandToggleRotate
	CommandToggleScale
	CommandToggleTranslate
	CommandColor
	CommandScreenshot
	CommandResize
)

func (t CommandType) String() string {
	switch t {
	case CommandNone:
		return "None"
	case CommandQuit:
		return "Quit"
	case CommandToggleRotate:
		return "ToggleRotate"
	case CommandToggleScale:
		return "ToggleScale"
	case CommandToggleTranslate:
		return "ToggleTranslate"
	case CommandColor:
		return "Color"
	case CommandScreenshot:
		return "Screenshot"
	case CommandResize:
		return "Resize"
	default:
		return fmt.Sprintf("CommandType(%d)", int(t))
	}
}

// Command is one processed input event.
type Command struct {
	Type   CommandType
	Preset int // CommandColor: 1-based color preset
	Width  int // CommandResize
	Height int // CommandResize
}

// Bindings maps SDL keycodes to commands.
type Bindings map[sdl.Keycode]Command

// DefaultBindings returns the standard key layout: R, S and T toggle the
// transform modes, 1-5 pick a color, F12 saves a screenshot and Escape quits.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.K_ESCAPE: {Type: CommandQuit},
		sdl.K_r:      {Type: CommandToggleRotate},
		sdl.K_s:      {Type: CommandToggleScale},
		sdl.K_t:      {Type: CommandToggleTranslate},
		sdl.K_1:      {Type: CommandColor, Preset: 1},
		sdl.K_2:      {Type: CommandColor, Preset: 2},
		sdl.K_3:      {Type: CommandColor, Preset: 3},
		sdl.K_4:      {Type: CommandColor, Preset: 4},
		sdl.K_5:      {Type: CommandColor, Preset: 5},
		sdl.K_F12:    {Type: CommandScreenshot},
	}
}

// Lookup returns the command bound to key.
func (b Bindings) Lookup(key sdl.Keycode) (Command, bool) {
	cmd, ok := b[key]
	return cmd, ok
}

// Input handles all input processing.
type Input struct {
	bindings Bindings
	commands []Command
}

// New creates a new input handler. A nil bindings map uses DefaultBindings.
func New(bindings Bindings) *Input {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Input{
		bindings: bindings,
		commands: make([]Command, 0, 16),
	}
}

// Update polls SDL events and converts them to commands.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.commands = i.commands[:0]

	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		cmd, ok := i.translate(event)
		if !ok {
			continue
		}
		i.commands = append(i.commands, cmd)
		if cmd.Type == CommandQuit {
			quit = true
		}
	}

	return quit
}

func (i *Input) translate(event sdl.Event) (Command, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return Command{Type: CommandQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED {
			return Command{
				Type:   CommandResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		// Held keys would otherwise step through modes at the repeat rate
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return i.bindings.Lookup(e.Keysym.Sym)
		}
	}

	return Command{}, false
}

// Commands returns the commands from the last Update.
func (i *Input) Commands() []Command {
	return i.commands
}
