package main

import (
	"os"

	"github.com/numtools/numtools/cmd"
)

func main() {
	os.Exit(cmd.Execute(cmd.NewWordCountCmd()))
}
