package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/kvernberg/planboard/cmd"
)

func main() {
	// A missing .env is fine; environment variables may come from the shell.
	_ = godotenv.Load()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
