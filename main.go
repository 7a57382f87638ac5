package main

import (
	"os"

	"github.com/blockmerge/blockmerge/internal/cli"
)

func main() {
	code, _ := cli.Run(os.Args, nil)
	os.Exit(code)
}
