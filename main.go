package main

import (
	"github.com/venvr/venvr/cmd"
)

func main() {
	cmd.Execute()
}
