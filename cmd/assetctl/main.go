package main

import (
	"fmt"
	"os"

	"asset-scan/internal/cli"
)

func main() {
	if err := cli.NewRootCMD(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
