// Package build compiles a program project into a WebAssembly component by
// invoking cargo through a toolchain.Runner, and locates the artifact it
// produces.
package build
