package main

import (
	"fmt"
	"os"

	"github.com/tablero-dev/tablero/cmd"
	"github.com/tablero-dev/tablero/internal/config"
	"github.com/tablero-dev/tablero/internal/logging"
)

func main() {
	logDir, err := config.LogDir()
	if err == nil {
		err = logging.Init(logDir)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
	}

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
