// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vulkan

import (
	"github.com/gogpu/present"

	// Registers the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Name is the registry name of this backend.
const Name = "vulkan"

func init() {
	present.RegisterBackend(Name, func() present.Backend { return New(nil) })
}
