// Package main is the entry point for the OBJ viewer.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/objviewer/cmd/objviewer/shaders"
	"github.com/Faultbox/objviewer/internal/app"
	"github.com/Faultbox/objviewer/internal/config"
	"github.com/Faultbox/objviewer/internal/logger"
	"github.com/Faultbox/objviewer/pkg/obj"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", config.DefaultPath())
		return
	}

	os.Exit(run(cfg))
}

// run returns the process exit code. Deferred cleanup must finish before
// main calls os.Exit.
func run(cfg *config.Config) int {
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	logger.Info("=== OBJ Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	path := cfg.Model.Path
	if path == "" {
		var err error
		path, err = pickModel()
		if errors.Is(err, dialog.ErrCancelled) {
			logger.Info("no model selected")
			return 0
		}
		if err != nil {
			logger.Error("file dialog failed", zap.Error(err))
			return 1
		}
	}

	mesh, err := obj.Load(path)
	if err != nil {
		logLoadError(path, err)
		return 1
	}
	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("faces", mesh.FaceCount()),
		zap.Bool("texcoords", mesh.HasTexCoords()),
		zap.Bool("normals", mesh.HasNormals()),
	)

	a, err := app.New(cfg, path, mesh, app.Shaders{
		Vertex:   shaders.SolidVertexShader,
		Fragment: shaders.SolidFragmentShader,
	})
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		return 1
	}

	logger.Info("viewer closed normally")
	return 0
}

// pickModel asks for an OBJ file with the native file dialog.
func pickModel() (string, error) {
	return dialog.File().
		Filter("Wavefront OBJ", "obj").
		Filter("All Files", "*").
		Title("Open Model").
		Load()
}

func logLoadError(path string, err error) {
	var perr *obj.ParseError
	switch {
	case errors.Is(err, obj.ErrFileNotFound):
		logger.Error("model file not found", zap.String("path", path), zap.Error(err))
	case errors.As(err, &perr):
		logger.Error("model parse failed",
			zap.String("path", path),
			zap.Int("line", perr.Line),
			zap.String("text", perr.Text),
			zap.String("reason", perr.Reason),
		)
	default:
		logger.Error("failed to load model", zap.String("path", path), zap.Error(err))
	}
}
