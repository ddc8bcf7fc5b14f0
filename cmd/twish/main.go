package main

import (
	"github.com/wirelab/twislave/pkg/cli/sh"

	_ "github.com/wirelab/twislave/pkg/cli/cmds/reg"
)

//go-build: CGO_ENABLED=0

func main() {
	sh.Main()
}
