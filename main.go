package main

import (
	"os"

	"caf/cmd"
)

func main() {
	os.Exit(cmd.Run(os.Args[1:]))
}
