// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/present"
)

// pixelLayout describes how gg's premultiplied RGBA pixmap bytes map onto
// a swapchain color format. sRGB variants store the same bytes, since gg
// already produces sRGB-encoded values.
type pixelLayout struct {
	format gputypes.TextureFormat
	swapRB bool
}

func layoutFor(format gputypes.TextureFormat) (pixelLayout, error) {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatRGBA8UnormSrgb:
		return pixelLayout{format: format}, nil
	case gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb:
		return pixelLayout{format: format, swapRB: true}, nil
	default:
		return pixelLayout{}, fmt.Errorf("%w: %v", present.ErrUnsupportedFormat, format)
	}
}

// mustLayout panics for formats gg cannot draw into.
func mustLayout(format gputypes.TextureFormat) pixelLayout {
	l, err := layoutFor(format)
	if err != nil {
		panic(err)
	}
	return l
}

// encodeRows copies a tightly packed premultiplied RGBA image of width
// pixels into dst with dstStride bytes per row, converting to l.
func (l pixelLayout) encodeRows(dst, src []byte, width, height, dstStride int, unpremultiply bool) {
	srcStride := width * 4
	for y := 0; y < height; y++ {
		s := src[y*srcStride : y*srcStride+srcStride]
		d := dst[y*dstStride : y*dstStride+srcStride]
		if !l.swapRB && !unpremultiply {
			copy(d, s)
			continue
		}
		for x := 0; x < srcStride; x += 4 {
			r, g, b, a := s[x], s[x+1], s[x+2], s[x+3]
			if unpremultiply && a != 0 && a != 255 {
				r = unmul(r, a)
				g = unmul(g, a)
				b = unmul(b, a)
			}
			if l.swapRB {
				r, b = b, r
			}
			d[x], d[x+1], d[x+2], d[x+3] = r, g, b, a
		}
	}
}

func unmul(c, a byte) byte {
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	if v > 255 {
		return 255
	}
	return byte(v)
}
