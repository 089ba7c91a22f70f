package screenshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// 2x2 image, bottom row first as glReadPixels returns it.
var glPixels = []byte{
	// bottom row: blue, white
	0, 0, 255, 255, 255, 255, 255, 255,
	// top row: red, green
	255, 0, 0, 255, 0, 255, 0, 255,
}

func TestFromGLPixelsFlipsRows(t *testing.T) {
	img, err := FromGLPixels(glPixels, 2, 2)
	if err != nil {
		t.Fatalf("FromGLPixels: %v", err)
	}

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{0, 0, color.RGBA{255, 0, 0, 255}},
		{1, 0, color.RGBA{0, 255, 0, 255}},
		{0, 1, color.RGBA{0, 0, 255, 255}},
		{1, 1, color.RGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFromGLPixelsRejectsBadInput(t *testing.T) {
	if _, err := FromGLPixels(glPixels[:12], 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := FromGLPixels(nil, 0, 0); err == nil {
		t.Error("expected invalid size error")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"png", FormatPNG, false},
		{"PNG", FormatPNG, false},
		{"webp", FormatWebP, false},
		{"WebP", FormatWebP, false},
		{"jpg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestFilename(t *testing.T) {
	c := New("shots", "objviewer", FormatWebP)
	c.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 250e6, time.UTC) }

	want := filepath.Join("shots", "objviewer_2024-03-09_14-05-07.250.webp")
	if got := c.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestCaptureFromPixelsPNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	c := New(dir, "test", FormatPNG)

	path, err := c.CaptureFromPixels(glPixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if !strings.HasSuffix(path, ".png") {
		t.Errorf("path %q should end in .png", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode capture: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	r, g, b, _ := img.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("top-left pixel = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestEncodeWebP(t *testing.T) {
	img, err := FromGLPixels(glPixels, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatWebP); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	data := buf.Bytes()
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		t.Errorf("output is not a RIFF/WEBP container: % x", data[:min(len(data), 16)])
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := Encode(&bytes.Buffer{}, img, Format("gif")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Encode error = %v, want ErrUnknownFormat", err)
	}
}
