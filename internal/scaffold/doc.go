// Package scaffold creates new Tilt program projects. It powers the
// "tilt new" command: cargo lays down the library crate, then the embedded
// templates replace its manifest and entry point with a Tilt-ready
// Cargo.toml (cdylib crate type, generated program id), a starter
// src/lib.rs and the WIT interface the host expects.
package scaffold
