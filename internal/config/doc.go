// Package config defines the toolchain configuration shared by the shader
// dispatcher: which compiler executables to run and which directory holds
// the glsl/ and hlsl/ source trees.
//
// A Model is assembled from layers. Built-in defaults come first, then an
// optional toolchain file (see the hcl package for the concrete Loader), then
// environment variables, then command-line flags. Later layers win for every
// field they set.
package config
