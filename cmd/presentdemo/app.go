// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"log/slog"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/present"
	"github.com/gogpu/present/backend/vulkan"
	"github.com/gogpu/present/config"
)

// CreateInfo describes the demo window.
type CreateInfo struct {
	Title  string
	Width  int
	Height int
	// Icon is an optional path to a PNG window icon.
	Icon string
	// Name selects the per-user config directory.
	Name string
}

var errBadSize = errors.New("presentdemo: window size must be positive")

func (ci CreateInfo) validate() error {
	if ci.Width <= 0 || ci.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", errBadSize, ci.Width, ci.Height)
	}
	if ci.Name == "" {
		return config.ErrEmptyAppName
	}
	return nil
}

func loadIcon(path string) ([]image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", path, err)
	}
	return []image.Image{img}, nil
}

func loadFace(size float64) (text.Face, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return src.Face(size), nil
}

// painter returns the frame callback drawing the demo tree.
func painter(title string, face text.Face, log *slog.Logger) present.PaintFunc {
	return func(cc *gg.Context, size present.LogicalSize) {
		cc.Clear()
		if err := layout(size, title).Draw(cc, face); err != nil {
			log.Warn("presentdemo: draw", "err", err)
		}
	}
}

func run(info CreateInfo, log *slog.Logger) error {
	if err := info.validate(); err != nil {
		return err
	}
	cfg, path, err := config.LoadOrCreate(info.Name)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Info("presentdemo: config", "path", path, "renderer", cfg.Renderer)

	// Closed after the renderer: the device outlives every window.
	defer vulkan.DefaultContext().Close()
	renderer := present.MustNewRenderer(cfg.Renderer)
	defer renderer.Close()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glw, err := glfw.CreateWindow(info.Width, info.Height, info.Title, nil, nil)
	if err != nil {
		return fmt.Errorf("glfw: %w", err)
	}
	defer glw.Destroy()

	if info.Icon != "" {
		icons, err := loadIcon(info.Icon)
		if err != nil {
			log.Warn("presentdemo: icon", "err", err)
		} else {
			glw.SetIcon(icons)
		}
	}

	if err := renderer.WindowCreated(&glfwWindow{w: glw}); err != nil {
		return err
	}

	face, err := loadFace(16)
	if err != nil {
		log.Warn("presentdemo: font unavailable, drawing without text", "err", err)
	}
	paint := painter(info.Title, face, log)

	glw.SetFramebufferSizeCallback(func(*glfw.Window, int, int) {
		renderer.WindowResized()
		renderer.RequestFrame(paint)
	})
	glw.SetContentScaleCallback(func(*glfw.Window, float32, float32) {
		renderer.RequestFrame(paint)
	})
	glw.SetRefreshCallback(func(*glfw.Window) {
		renderer.RequestFrame(paint)
	})

	renderer.RequestFrame(paint)
	for !glw.ShouldClose() {
		glfw.WaitEvents()
	}
	renderer.WindowClosing()
	return nil
}
