package main

import (
	"kiel-home/internal/bootstrap"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/domain/service"
	"os"

	"github.com/urfave/cli/v2"
)

const usage = "No valid power argument supplied!\nValid arguments are: 0 = off, 1 = on"

func main() {
	rt := bootstrap.DefaultRuntime()
	if err := newApp(rt).Run(os.Args); err != nil {
		rt.Log.WithError(err).Fatal("toggle failed")
	}
}

func usageError() error {
	return cli.Exit(usage, 1)
}

func newApp(rt *bootstrap.Runtime) *cli.App {
	return &cli.App{
		Name:      "kiel-toggle",
		Usage:     "switch the kiel plug and every light named after the special word",
		ArgsUsage: "0|1",
		HideHelp:  true,
		Flags:     rt.Flags(),
		OnUsageError: func(c *cli.Context, err error, isSubcommand bool) error {
			return usageError()
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return usageError()
			}
			state, err := model.ParseBinaryPowerState(c.Args().First())
			if err != nil {
				return usageError()
			}

			cfg, cs, err := rt.Setup(c)
			if err != nil {
				return err
			}
			if err := cs.ValidateToggle(cfg); err != nil {
				return err
			}
			bridge, err := rt.Connect(c, cfg, cs)
			if err != nil {
				return err
			}

			toggle := service.NewToggleService(bridge, cfg.Selector(), rt.Out, rt.Log)
			_, err = toggle.Apply(c.Context, state)
			return err
		},
	}
}
