//go:build mage
// +build mage

package main

import (
	"github.com/magefile/mage/sh"
)

// Build compiles the sync-server binary into bin/.
func Build() error {
	return sh.RunV("go", "build", "-o", "bin/sync-server", "./cmd/sync-server")
}

// Run starts the sync-server locally.
func Run() error {
	return sh.RunV("go", "run", "./cmd/sync-server")
}

// Test runs the whole test suite with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}
