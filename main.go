package main

import (
	"golf/cmd"
	"os"
)

func main() {
	os.Exit(cmd.Execute())
}
