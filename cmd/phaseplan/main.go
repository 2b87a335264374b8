// cmd/phaseplan/main.go
//
// Entry point for the phaseplan CLI. Exit status 1 means the inspected plan
// was rejected (cycle or undefined dependency); 2 means the command itself
// failed (bad flags, unreadable or malformed plan file).

package main

import (
	"errors"
	"os"

	"github.com/kingrea/phaseplan/internal/cli"
	"github.com/kingrea/phaseplan/internal/report"
)

func main() {
	err := cli.Execute(os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	if errors.Is(err, cli.ErrPlanRejected) {
		os.Exit(1)
	}
	report.Failure(os.Stderr, "%v", err)
	os.Exit(2)
}
