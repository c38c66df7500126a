package main

import (
	"os"

	"github.com/jayra/tradebot/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
