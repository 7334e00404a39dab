// Package main is the entry point for the collectopedia pricing service.
package main

import (
	"os"

	"github.com/donaldgifford/collectopedia/cmd/collectopedia/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
