package main

import (
	portview "github.com/0xa1bed0/deskutils/internal/apps/portview/cmds"
	"github.com/0xa1bed0/deskutils/internal/logs"
	"github.com/0xa1bed0/deskutils/internal/runtime"
)

func main() {
	logs.SetComponent("portview")

	var execErr error

	rt := runtime.New("portview")
	defer rt.Finalize("Type 'portview help' to get help.", &execErr)

	execErr = portview.Execute(rt)
}
