// Command rookwood-uci is the UCI-speaking process entry point: it wires
// stdin/stdout to the protocol dispatcher in package uci.
package main

import (
	"flag"
	"fmt"
	"os"

	"rookwood/engine"
	"rookwood/uci"
)

func main() {
	logPath := flag.String("log", "", "optional path for move-by-move search diagnostics (off by default)")
	flag.Parse()

	d := uci.NewDispatcher(os.Stdout)

	if *logPath != "" {
		logger, err := engine.NewLogger(*logPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "rookwood-uci: opening log file:", err)
		} else {
			defer logger.Close()
			d.SetDebugLogger(logger)
		}
	}

	d.Run(os.Stdin)
}
