package main

import (
	"os"

	"github.com/debt-discipline/debts/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
