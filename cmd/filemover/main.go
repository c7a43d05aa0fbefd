package main

import (
	filemover "github.com/0xa1bed0/deskutils/internal/apps/filemover/cmds"
	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/runtime"
)

func main() {
	logs.SetComponent("filemover")

	var execErr error

	rt := runtime.New("filemover")
	defer rt.Finalize("Type 'filemover help' to get help.", &execErr)

	execErr = filemover.Execute(rt)
}
