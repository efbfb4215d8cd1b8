package main

import (
	"github.com/toolvm/toolvm/src/cmd"

	// Import runtime providers to register them
	_ "github.com/toolvm/toolvm/src/runtimes/golang"
	_ "github.com/toolvm/toolvm/src/runtimes/node"
	_ "github.com/toolvm/toolvm/src/runtimes/zig"
)

func main() {
	cmd.Execute()
}
