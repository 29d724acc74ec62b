/*
Copyright © 2025 baotran
*/
package main

import (
	"github.com/baotran/docqa-be/cmd"
	"github.com/joho/godotenv"
)

func main() {
	cmd.Execute()
}

func init() {
	// Optional in production, where configuration comes from real env vars.
	godotenv.Load()
}
