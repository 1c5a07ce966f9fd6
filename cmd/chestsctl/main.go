package main

import (
	"os"

	"github.com/citychests/citychests-app/cmd/chestsctl/cmd"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
