package main

import (
	"github.com/robotalks/drs.go/pkg/cli/sh"
	env "github.com/robotalks/drs.go/pkg/l1/env/connector"

	_ "github.com/robotalks/drs.go/pkg/cli/cmds/ps"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
