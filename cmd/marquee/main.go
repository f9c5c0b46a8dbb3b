package main

import (
	"os"

	"github.com/plus3/marquee/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
