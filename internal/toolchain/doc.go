// Package toolchain runs external developer tools (cargo, rustup) on behalf
// of the build, clean, test and scaffold commands. Runner is the narrow
// capability the rest of the module depends on; Exec is the os/exec
// implementation.
package toolchain
