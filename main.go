package main

import (
	"fmt"
	"os"

	tv "github.com/tvfind/tv/cmd/tv"
)

func main() {
	if err := tv.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
