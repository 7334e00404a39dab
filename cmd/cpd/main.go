// Package main is the entry point for the cpd CLI client.
package main

import (
	"github.com/donaldgifford/collectopedia/cmd/cpd/cmd"
)

func main() {
	cmd.Execute()
}
