package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestDefaultBindings(t *testing.T) {
	tests := []struct {
		key  sdl.Keycode
		want Command
	}{
		{sdl.K_ESCAPE, Command{Type: CommandQuit}},
		{sdl.K_r, Command{Type: CommandToggleRotate}},
		{sdl.K_s, Command{Type: CommandToggleScale}},
		{sdl.K_t, Command{Type: CommandToggleTranslate}},
		{sdl.K_1, Command{Type: CommandColor, Preset: 1}},
		{sdl.K_3, Command{Type: CommandColor, Preset: 3}},
		{sdl.K_5, Command{Type: CommandColor, Preset: 5}},
		{sdl.K_F12, Command{Type: CommandScreenshot}},
	}

	b := DefaultBindings()
	for _, tt := range tests {
		got, ok := b.Lookup(tt.key)
		if !ok {
			t.Errorf("key %d is not bound", tt.key)
			continue
		}
		if got != tt.want {
			t.Errorf("key %d: got %+v, want %+v", tt.key, got, tt.want)
		}
	}

	for _, key := range []sdl.Keycode{sdl.K_6, sdl.K_a, sdl.K_SPACE} {
		if _, ok := b.Lookup(key); ok {
			t.Errorf("key %d should be unbound", key)
		}
	}
}

func TestTranslate(t *testing.T) {
	in := New(nil)

	tests := []struct {
		name   string
		event  sdl.Event
		want   Command
		wantOK bool
	}{
		{
			name:   "quit",
			event:  &sdl.QuitEvent{Type: sdl.QUIT},
			want:   Command{Type: CommandQuit},
			wantOK: true,
		},
		{
			name:   "resize",
			event:  &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_RESIZED, Data1: 800, Data2: 600},
			want:   Command{Type: CommandResize, Width: 800, Height: 600},
			wantOK: true,
		},
		{
			name:   "window moved",
			event:  &sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_MOVED},
			wantOK: false,
		},
		{
			name:   "rotate key",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_r}},
			want:   Command{Type: CommandToggleRotate},
			wantOK: true,
		},
		{
			name:   "repeat ignored",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_r}},
			wantOK: false,
		},
		{
			name:   "key up ignored",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_s}},
			wantOK: false,
		},
		{
			name:   "unbound key",
			event:  &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_q}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := in.translate(tt.event)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCustomBindings(t *testing.T) {
	in := New(Bindings{sdl.K_q: {Type: CommandQuit}})

	cmd, ok := in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_q}})
	if !ok || cmd.Type != CommandQuit {
		t.Errorf("custom binding: got %+v, %v", cmd, ok)
	}
	if _, ok := in.translate(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Sym: sdl.K_ESCAPE}}); ok {
		t.Error("custom bindings should replace the defaults")
	}
}

func TestCommandTypeString(t *testing.T) {
	if got := CommandToggleTranslate.String(); got != "ToggleTranslate" {
		t.Errorf("String() = %q", got)
	}
	if got := CommandType(99).String(); got != "CommandType(99)" {
		t.Errorf("String() = %q", got)
	}
}
