package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/nomenworks/nomen/internal/cli"
	"github.com/nomenworks/nomen/pkg/nomen"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(nomen.ExitPanic)
		}
	}()

	if os.Getenv("NOMEN_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(nomen.ExitCodeForError(err))
	}
}
