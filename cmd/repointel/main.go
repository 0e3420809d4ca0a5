// main is the entry point for the repointel CLI.
package main

import (
	"fmt"
	"os"

	"github.com/Kaushik-Kishor/repository-intelligence-platform/cmd"
	"github.com/Kaushik-Kishor/repository-intelligence-platform/internal/resultstore"
)

func main() {
	os.Exit(run())
}

func run() int {
	cmd.SetStoreManager(resultstore.Manager)
	defer resultstore.CloseStores()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}

	if err := cmd.StopProfiling(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
	}

	return 0
}
