package main

import (
	"os"

	"github.com/lox-lang/golox/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
