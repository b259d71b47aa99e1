package main

import (
	"os"

	"github.com/flexicompute/go-rental-provider/build"
	"github.com/urfave/cli/v2"
)

const (
	FlagRepo = "repo"
)

func main() {
	app := &cli.App{
		Name:                 "rental-provider",
		Usage:                "A rental provider node lists compute devices (CPU and GPU machines) for hourly rental and decides whether packaged application templates may be deployed onto rented devices.",
		EnableBashCompletion: true,
		Version:              build.UserVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    FlagRepo,
				EnvVars: []string{"FC_PATH"},
				Usage:   "rental provider repo path",
				Value:   "~/.flexicompute/rental",
			},
		},
		Commands: []*cli.Command{
			runCmd,
			deviceCmd,
			orderCmd,
		},
	}
	app.Setup()

	if err := app.Run(os.Args); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
	}
}
