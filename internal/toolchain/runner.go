package toolchain

import (
	"context"
	"errors"
)

// ErrUnavailable means the requested tool could not be launched, usually
// because it is not installed or not on PATH.
var ErrUnavailable = errors.New("toolchain unavailable")

// ExitStatus is the result of a completed external process.
type ExitStatus struct {
	Code int
}

// Success reports whether the process exited with status 0.
func (s ExitStatus) Success() bool { return s.Code == 0 }

// Runner launches an external tool and waits for it to exit.
//
// A non-zero exit is reported through ExitStatus with a nil error; the
// error return is reserved for failures to launch or wait on the process.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (ExitStatus, error)
}

// Well-known tool names.
const (
	Cargo  = "cargo"
	Rustup = "rustup"
)
