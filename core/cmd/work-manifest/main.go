package main

import (
	"os"

	"work-manifest/core/internal/cli"
)

func main() {
	err := cli.NewRootCmd().Execute()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
	}
	os.Exit(cli.ExitCode(err))
}
