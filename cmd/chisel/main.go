package main

import (
	"fmt"
	"os"

	"github.com/chiselfs/chisel/cmd/chisel/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
