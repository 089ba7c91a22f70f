// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SolidVertexShader transforms mesh positions by the model matrix.
//
//go:embed solid.vert
var SolidVertexShader string

// SolidFragmentShader fills triangles with a uniform color.
//
//go:embed solid.frag
var SolidFragmentShader string
