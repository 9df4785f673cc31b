package main

import (
	"github.com/CodingWithCalvin/starkup.cli/src/cmd"
)

func main() {
	cmd.Execute()
}
