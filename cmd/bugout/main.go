package main

import (
	"os"

	"github.com/bugout-dev/bugout-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
