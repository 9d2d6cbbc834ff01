package main

import (
	"github.com/cody-foxy/scanwatch/cmd"
)

func main() {
	cmd.Execute()
}
