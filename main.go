// Command counterscan scans marketplace listings for counterfeit and
// grey-market products.
package main

import (
	"fmt"
	"os"

	"github.com/rodmarques/counterscan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
