package main

import (
	"github.com/gistgrab/gistgrab/cmd"
)

func main() {
	cmd.Execute()
}
