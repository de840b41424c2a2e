// Command rillparse drives the grammar engine from the command line: it
// parses a module (or a single file's worth of a module, for quick
// checks), lists the transitive import graph a module pulls in, or
// checks that a module parses clean of diagnostics.
package main

import (
	"fmt"
	"os"

	hclog "github.com/hashicorp/go-hclog"
	cli "github.com/hashicorp/cli"
)

func main() {
	c := cli.NewCLI("rillparse", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"parse":     parseCommandFactory,
		"imports":   importsCommandFactory,
		"fmt-check": fmtCheckCommandFactory,
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(exitCode)
}

// logLevelFromFlag reads a "-log-level=<level>" argument out of args if
// present (stripping it from the returned slice) and builds the shared
// logger every command routes its tracing through.
func logLevelFromFlag(args []string) ([]string, hclog.Logger) {
	level := hclog.NoLevel
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if v, ok := stripFlag(a, "-log-level="); ok {
			level = hclog.LevelFromString(v)
			continue
		}
		rest = append(rest, a)
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "rillparse",
		Level: level,
	})
	return rest, logger
}

func stripFlag(arg, prefix string) (string, bool) {
	if len(arg) <= len(prefix) || arg[:len(prefix)] != prefix {
		return "", false
	}
	return arg[len(prefix):], true
}
