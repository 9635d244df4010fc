//go:build tools
// +build tools

// Package tools pins mockgen, used by `go generate ./contract`, in go.mod.
package player_lab

import (
	_ "go.uber.org/mock/mockgen"
)
