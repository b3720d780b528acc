package main

import (
	"os"

	"iescms_backend/internals/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
