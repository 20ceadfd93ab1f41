package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"phototag/cmd"
	"phototag/internal"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "fatal: %v\n%s", r, debug.Stack())
			os.Exit(cmd.ExitFatal)
		}
	}()

	err := cmd.Execute()
	if err != nil && !errors.Is(err, internal.ErrHelp) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cmd.ExitCode(err))
}
