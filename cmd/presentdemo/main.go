// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command presentdemo opens a window and draws a small UI tree with gg,
// presented through the backend selected in the user's present.toml.
package main

import (
	"flag"
	"log/slog"
	"os"
	"runtime"

	_ "github.com/gogpu/gg/gpu"

	"github.com/gogpu/present"
	_ "github.com/gogpu/present/backend/vulkan"
)

func init() {
	// glfw and the presentation engine must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	var info CreateInfo
	flag.StringVar(&info.Title, "title", "present demo", "window title")
	flag.IntVar(&info.Width, "width", 960, "initial window width in pixels")
	flag.IntVar(&info.Height, "height", 600, "initial window height in pixels")
	flag.StringVar(&info.Icon, "icon", "", "PNG window icon")
	flag.StringVar(&info.Name, "name", "presentdemo", "application name for the config directory")
	verbose := flag.Bool("v", false, "log per-frame diagnostics")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	present.SetLogger(log)

	if err := run(info, log); err != nil {
		log.Error("presentdemo", "err", err)
		os.Exit(1)
	}
}
