package main

import (
	"fmt"
	"kiel-home/internal/bootstrap"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/domain/service"
	"os"

	"github.com/urfave/cli/v2"
)

const usage = "invalid argument. must be 'on' or 'off'"

func main() {
	rt := bootstrap.DefaultRuntime()
	if err := newApp(rt).Run(os.Args); err != nil {
		rt.Log.WithError(err).Fatal("boiler failed")
	}
}

func newApp(rt *bootstrap.Runtime) *cli.App {
	// A bad argument is reported but still exits 0.
	printUsage := func() error {
		fmt.Fprintln(rt.Out, usage)
		return nil
	}

	return &cli.App{
		Name:      "kiel-boiler",
		Usage:     "switch the boiler relay",
		ArgsUsage: "on|off",
		HideHelp:  true,
		Flags:     rt.Flags(),
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return printUsage()
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return printUsage()
			}
			// An unrecognised state still runs, and switches the boiler off.
			state, err := model.ParseNamedPowerState(c.Args().First())
			if err != nil {
				_ = printUsage()
				state = model.PowerOff
			}

			cfg, cs, err := rt.Setup(c)
			if err != nil {
				return err
			}
			if err := cs.ValidateBoiler(cfg); err != nil {
				return err
			}
			bridge, err := rt.Connect(c, cfg, cs)
			if err != nil {
				return err
			}

			return service.NewBoilerService(bridge, cfg.Boiler.LightIndex, rt.Out, rt.Log).Set(c.Context, state)
		},
	}
}
