package main

import (
	"github.com/tetherlang/tether/pkg/cli"
)

func main() {
	cli.Run()
}
