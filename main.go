package main

import (
	"os"

	"javaver/internal/cli"
)

// Version is set during build time via ldflags
var Version = "dev"

func main() {
	os.Exit(cli.New(Version).Execute(os.Args[1:]))
}
