// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/present"
	"github.com/gogpu/present/config"
)

func TestCreateInfoValidate(t *testing.T) {
	tests := []struct {
		name string
		info CreateInfo
		want error
	}{
		{"ok", CreateInfo{Width: 10, Height: 10, Name: "app"}, nil},
		{"zero width", CreateInfo{Height: 10, Name: "app"}, errBadSize},
		{"negative height", CreateInfo{Width: 10, Height: -1, Name: "app"}, errBadSize},
		{"no name", CreateInfo{Width: 10, Height: 10}, config.ErrEmptyAppName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.validate()
			if !errors.Is(err, tt.want) {
				t.Errorf("validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadIcon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	icons, err := loadIcon(path)
	if err != nil {
		t.Fatalf("loadIcon: %v", err)
	}
	if len(icons) != 1 || icons[0].Bounds().Dx() != 4 {
		t.Errorf("icons = %v", icons)
	}

	if _, err := loadIcon(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("missing icon should fail")
	}
	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not a png"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadIcon(bad); err == nil {
		t.Error("corrupt icon should fail")
	}
}

func TestLoadFace(t *testing.T) {
	face, err := loadFace(14)
	if err != nil || face == nil {
		t.Fatalf("loadFace: %v", err)
	}
}

func TestPainterClearsAndDraws(t *testing.T) {
	pm := gg.NewPixmap(200, 100)
	cc := gg.NewContext(200, 100, gg.WithPixmap(pm))
	defer cc.Close()

	paint := painter("t", nil, slog.New(slog.DiscardHandler))
	paint(cc, present.LogicalSize{Width: 200, Height: 100})
	if err := cc.FlushGPU(); err != nil {
		t.Fatal(err)
	}
	if a := pm.GetPixel(100, 90).A; a < 0.99 {
		t.Errorf("background alpha = %v, want opaque", a)
	}
}
