// main is the entry point for the riskboard CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/riskboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}
