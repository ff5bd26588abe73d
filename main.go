package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/bcdannyboy/mcprice/cli"
)

func main() {
	// .env is optional; MCPRICE_* variables may come from the shell instead
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
		os.Exit(1)
	}
}
