// Package shell runs external programs from an argument list, never through
// a shell interpreter. The Target abstraction lets tests substitute canned
// processes (see package stub) for real compiler binaries.
package shell
