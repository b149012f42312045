// Package app contains the application logic behind the command-line tools.
// It resolves the toolchain configuration, owns the logger, and runs shader
// compilation or image conversion, decoupled from flag parsing and process
// exit handling.
package app
