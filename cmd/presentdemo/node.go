// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/present"
)

// Node is a rectangle in a retained UI tree. Coordinates are logical
// pixels in window space; children paint over their parent.
type Node struct {
	X, Y, W, H float64
	Background *gg.RGBA
	Text       string
	TextColor  gg.RGBA
	Children   []*Node
}

// Draw paints n and its subtree. Text is skipped when face is nil.
func (n *Node) Draw(cc *gg.Context, face text.Face) error {
	if n.Background != nil && n.W > 0 && n.H > 0 {
		bg := n.Background
		cc.SetRGBA(bg.R, bg.G, bg.B, bg.A)
		cc.DrawRectangle(n.X, n.Y, n.W, n.H)
		if err := cc.Fill(); err != nil {
			return err
		}
	}
	if n.Text != "" && face != nil {
		cc.SetFont(face)
		cc.SetRGBA(n.TextColor.R, n.TextColor.G, n.TextColor.B, n.TextColor.A)
		cc.DrawStringAnchored(n.Text, n.X+n.W/2, n.Y+n.H/2, 0.5, 0.5)
	}
	for _, c := range n.Children {
		if err := c.Draw(cc, face); err != nil {
			return err
		}
	}
	return nil
}

// walk calls fn for n and every descendant, parents first.
func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

func hexColor(hex string) *gg.RGBA {
	c := gg.Hex(hex)
	return &c
}

const (
	headerHeight = 48
	sidebarWidth = 180
	margin       = 16
)

// layout builds the demo tree for a window of the given logical size.
func layout(size present.LogicalSize, title string) *Node {
	w, h := float64(size.Width), float64(size.Height)
	white := gg.RGB(1, 1, 1)

	side := min(sidebarWidth, w/3)
	body := max(h-headerHeight, 0)

	root := &Node{W: w, H: h, Background: hexColor("#1e1e2e")}
	root.Children = []*Node{
		{W: w, H: min(headerHeight, h), Background: hexColor("#89b4fa"), Text: title, TextColor: gg.RGB(0.1, 0.1, 0.15)},
		{Y: headerHeight, W: side, H: body, Background: hexColor("#313244"), Children: sidebarItems(side)},
	}

	cardW := max(w-side-2*margin, 0)
	cardH := max(body-2*margin, 0)
	root.Children = append(root.Children, &Node{
		X: side + margin, Y: headerHeight + margin, W: cardW, H: cardH,
		Background: hexColor("#45475a"),
		Text:       "Drawn with gg, presented through Vulkan",
		TextColor:  white,
	})
	return root
}

func sidebarItems(width float64) []*Node {
	labels := []string{"Swapchain", "Frames", "Device"}
	items := make([]*Node, len(labels))
	for i, l := range labels {
		items[i] = &Node{
			X: 8, Y: headerHeight + 8 + float64(i)*40, W: max(width-16, 0), H: 32,
			Background: hexColor("#585b70"),
			Text:       l,
			TextColor:  gg.RGB(0.9, 0.9, 0.95),
		}
	}
	return items
}
