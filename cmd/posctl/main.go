package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Inventario-pos/internal/interfaces/cli"
)

func main() {
	if err := cli.NewRootCommand(cli.DefaultOpener).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
