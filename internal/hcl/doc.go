// Package hcl provides the HCL implementation of config.Loader. A toolchain
// file has a single optional `toolchain` block:
//
//	toolchain {
//	  glslang      = "${env.VULKAN_SDK}/bin/glslang"
//	  dxc          = getenv("DXC", "dxc")
//	  glsl_version = "460"
//	}
//
// Expressions see an `env` object holding the process environment and a small
// set of string functions.
package hcl
