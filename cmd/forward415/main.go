package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/rustyeddy/forward415/cmd/forward415/cmd"
)

func main() {
	// .env is optional; real environment always wins.
	godotenv.Load()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
