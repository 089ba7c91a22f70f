// Package obj provides a parser for the triangle subset of the Wavefront OBJ format.
package obj

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// OBJ loading errors.
var (
	ErrFileNotFound = errors.New("obj file not found")
	ErrParse        = errors.New("malformed obj data")
)

// maxLineSize bounds a single OBJ line.
const maxLineSize = 1 << 20

// ParseError describes a malformed line.
type ParseError struct {
	Line   int    // 1-based line number
	Text   string // Offending line, trimmed
	Reason string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Unwrap lets errors.Is match ErrParse.
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Load reads and parses an OBJ file from disk.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	defer f.Close()

	mesh, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return mesh, nil
}

// ParseBytes parses OBJ data from a byte slice.
func ParseBytes(data []byte) (*Mesh, error) {
	return Parse(bytes.NewReader(data))
}

// Parse parses OBJ data from r. Only v, vt, vn and triangular f records are
// interpreted; every other statement is skipped.
func Parse(r io.Reader) (*Mesh, error) {
	p := &parser{mesh: &Mesh{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		p.lineNo++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj data: %w", err)
	}

	if err := p.validate(); err != nil {
		return nil, err
	}

	p.mesh.buildTangents()
	return p.mesh, nil
}

type parser struct {
	mesh      *Mesh
	lineNo    int
	faceLines []int // source line of each face, for error reporting
	faceTexts []string
}

func (p *parser) fail(text, reason string) error {
	return &ParseError{Line: p.lineNo, Text: strings.TrimSpace(text), Reason: reason}
}

func (p *parser) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	args := fields[1:]
	switch fields[0] {
	case "v":
		// x y z [w], or x y z r g b with per-vertex color
		if len(args) != 3 && len(args) != 4 && len(args) != 6 {
			return p.fail(line, fmt.Sprintf("vertex expects 3 coordinates, got %d values", len(args)))
		}
		v, err := p.floats(line, args[:3])
		if err != nil {
			return err
		}
		p.mesh.positions = append(p.mesh.positions, [3]float32{v[0], v[1], v[2]})

	case "vt":
		// u [v [w]]
		if len(args) < 1 || len(args) > 3 {
			return p.fail(line, fmt.Sprintf("texture coordinate expects 1 to 3 values, got %d", len(args)))
		}
		if len(args) > 2 {
			args = args[:2]
		}
		v, err := p.floats(line, args)
		if err != nil {
			return err
		}
		var uv [2]float32
		copy(uv[:], v)
		p.mesh.texCoords = append(p.mesh.texCoords, uv)

	case "vn":
		if len(args) != 3 {
			return p.fail(line, fmt.Sprintf("normal expects 3 values, got %d", len(args)))
		}
		v, err := p.floats(line, args)
		if err != nil {
			return err
		}
		p.mesh.normals = append(p.mesh.normals, [3]float32{v[0], v[1], v[2]})

	case "f":
		if len(args) != 3 {
			return p.fail(line, fmt.Sprintf("only triangular faces are supported, got %d vertices", len(args)))
		}
		var face Face
		for i, group := range args {
			if err := p.parseFaceVertex(line, group, &face, i); err != nil {
				return err
			}
		}
		p.mesh.faces = append(p.mesh.faces, face)
		p.faceLines = append(p.faceLines, p.lineNo)
		p.faceTexts = append(p.faceTexts, strings.TrimSpace(line))
	}

	return nil
}

func (p *parser) floats(line string, args []string) ([]float32, error) {
	out := make([]float32, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, p.fail(line, fmt.Sprintf("invalid number %q", a))
		}
		out[i] = float32(f)
	}
	return out, nil
}

// parseFaceVertex parses one v, v/vt, v//vn or v/vt/vn group into slot i of face.
func (p *parser) parseFaceVertex(line, group string, face *Face, i int) error {
	parts := strings.Split(group, "/")
	if len(parts) > 3 {
		return p.fail(line, fmt.Sprintf("face vertex %q has too many components", group))
	}

	var err error
	if face.VertexIndex[i], err = p.index(line, parts[0], len(p.mesh.positions)); err != nil {
		return err
	}
	if face.VertexIndex[i] == Missing {
		return p.fail(line, fmt.Sprintf("face vertex %q has no position index", group))
	}

	face.TexCoordIndex[i] = Missing
	if len(parts) > 1 {
		if face.TexCoordIndex[i], err = p.index(line, parts[1], len(p.mesh.texCoords)); err != nil {
			return err
		}
	}

	face.NormalIndex[i] = Missing
	if len(parts) > 2 {
		if face.NormalIndex[i], err = p.index(line, parts[2], len(p.mesh.normals)); err != nil {
			return err
		}
	}
	return nil
}

// index converts a 1-based (or negative, relative) OBJ index to a 0-based one.
// An empty field yields Missing.
func (p *parser) index(line, field string, count int) (int, error) {
	if field == "" {
		return Missing, nil
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, p.fail(line, fmt.Sprintf("invalid index %q", field))
	}
	switch {
	case n > 0:
		return n - 1, nil
	case n < 0 && count+n >= 0:
		return count + n, nil
	default:
		return 0, p.fail(line, fmt.Sprintf("index %d out of range", n))
	}
}

// validate checks every face index against the final attribute counts.
func (p *parser) validate() error {
	m := p.mesh
	for fi, face := range m.faces {
		for k := 0; k < 3; k++ {
			reason := ""
			switch {
			case face.VertexIndex[k] >= len(m.positions):
				reason = fmt.Sprintf("vertex index %d out of range (%d positions)", face.VertexIndex[k]+1, len(m.positions))
			case face.TexCoordIndex[k] >= len(m.texCoords):
				reason = fmt.Sprintf("texture coordinate index %d out of range (%d texcoords)", face.TexCoordIndex[k]+1, len(m.texCoords))
			case face.NormalIndex[k] >= len(m.normals):
				reason = fmt.Sprintf("normal index %d out of range (%d normals)", face.NormalIndex[k]+1, len(m.normals))
			}
			if reason != "" {
				return &ParseError{Line: p.faceLines[fi], Text: p.faceTexts[fi], Reason: reason}
			}
		}
	}
	return nil
}
