package main

import (
	"github.com/boxkit/boxkit/pkg/cli"
	"github.com/boxkit/boxkit/pkg/util/console"
)

func main() {
	cmd, err := cli.NewRootCommand()
	if err != nil {
		console.Fatalf("%s", err)
	}

	if err = cmd.Execute(); err != nil {
		console.Fatalf("%s", err)
	}
}
