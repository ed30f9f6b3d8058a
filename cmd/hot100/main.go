package main

import (
	"os"

	"github.com/wonny/hot100/cmd/hot100/commands"
)

// main is the entry point for the hot100 CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/hot100 [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
