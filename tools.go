//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools:
// - github.com/matryer/moq (mocks, see the //go:generate directives)
// - github.com/pressly/goose/v3/cmd/goose (declared in go.mod tool block)
