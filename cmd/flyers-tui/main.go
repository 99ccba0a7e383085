package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/anjirai/weekly-flyers/internal/config"
	"github.com/anjirai/weekly-flyers/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so diagnostics are discarded.
	if err := tui.Run(settings, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
