package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/flowtimer/flow/app"
	"github.com/flowtimer/flow/config"
)

func run(args []string) error {
	return app.Get().Run(args)
}

func main() {
	config.InitializePaths()

	config.InitLogger(os.Getenv("FLOW_DEBUG") != "")

	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
