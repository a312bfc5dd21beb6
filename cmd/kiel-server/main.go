package main

import (
	"kiel-home/internal/adapters/input/http"
	"kiel-home/internal/adapters/output/command"
	"kiel-home/internal/bootstrap"
	"kiel-home/internal/domain/service"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
)

// shutdownSlack is added to the hour timeout to bound shutdown.
const shutdownSlack = 10 * time.Second

func main() {
	rt := bootstrap.DefaultRuntime()
	if err := newApp(rt).Run(os.Args); err != nil {
		rt.Log.WithError(err).Fatal("server failed")
	}
}

func newApp(rt *bootstrap.Runtime) *cli.App {
	flags := append(rt.Flags(),
		&cli.StringFlag{
			Name:  "addr",
			Usage: "listen address (default 0.0.0.0:8196)",
		},
		&cli.StringFlag{
			Name:  "command",
			Usage: "binary run on /hour (default /usr/local/bin/kiel)",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "limit for one /hour run (default 2m)",
		},
	)

	return &cli.App{
		Name:  "kiel-server",
		Usage: "serve the kiel service check and hourly trigger",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, _, err := rt.Setup(c)
			if err != nil {
				return err
			}
			if c.IsSet("addr") {
				cfg.Server.Addr = c.String("addr")
			}
			if c.IsSet("command") {
				cfg.Server.Command = c.String("command")
			}
			if c.IsSet("timeout") {
				cfg.Server.Timeout = c.Duration("timeout")
			}

			hour := service.NewHourService(command.NewExecRunner(), cfg.Server, rt.Log)
			srv := http.NewServer(hour, cfg.Server.Timeout+shutdownSlack, rt.Log)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}
}
