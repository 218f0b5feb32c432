package main

import (
	"os"
	"runtime"

	"github.com/Norgate-AV/procctl/cmd"
)

func init() {
	// Focus handling attaches the input queue of the calling thread, so
	// everything has to happen on one OS thread
	runtime.LockOSThread()
}

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
