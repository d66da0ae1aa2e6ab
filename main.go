package main

import (
	"os"

	"github.com/thenoetrevino/pipeboard/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
