package main

import (
	"fmt"
	"os"

	"ccs/cmd"
	"ccs/internal/shell"
)

func main() {
	if err := cmd.Execute(); err != nil {
		shell.NewEmitter(os.Stderr).Error(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}
