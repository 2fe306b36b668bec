package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"statement-ledger/cmd/convert"
	"statement-ledger/cmd/review"
	"statement-ledger/cmd/root"
	"statement-ledger/cmd/rules"
	"statement-ledger/cmd/serve"
)

func init() {
	// Load environment variables before any command configuration runs.
	loadEnvSilently()

	root.Init()

	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(review.Cmd)
	root.Cmd.AddCommand(rules.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}
	_ = godotenv.Load(envFile)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
