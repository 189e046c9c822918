package main

import (
	"github.com/burrowlabs/bunnyhit-go/internal/cli"
)

func main() {
	cli.Execute()
}
