//go:build tools
// +build tools

// Package tools pins the generators invoked by go:generate (mockgen)
// so they are versioned in go.mod with the rest of the module.
package qa_board

import (
	_ "go.uber.org/mock/mockgen"
)
