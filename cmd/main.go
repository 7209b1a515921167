// Package main is the entry point for the tokenguard CLI
package main

import (
	"os"

	"tokenguard/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("CLI error", "error", err)
		os.Exit(1)
	}
}
