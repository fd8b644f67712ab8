package main

import (
	"github.com/joho/godotenv"
	"github.com/tupi-ai/askpdf/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// A .env file is optional; real deployments export the variables directly.
	_ = godotenv.Load()
}
