// Package bootstrap wires configuration, logging and the bridge connection
// shared by the kiel command-line entrypoints.
package bootstrap

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"kiel-home/internal/adapters/output/hue"
	"kiel-home/internal/adapters/output/persistence"
	"kiel-home/internal/adapters/output/ssdp"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/domain/service"
	"kiel-home/internal/ports"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

const (
	flagEnvFile = "env-file"
	flagConfig  = "config"
	flagVerbose = "verbose"
)

const discoverTimeout = 5 * time.Second

// Runtime holds the process-level collaborators of a command. Tests swap the
// writers, the environment lookup and the bridge constructor.
type Runtime struct {
	Out      io.Writer
	Log      *logrus.Logger
	Lookup   service.LookupEnv
	Bridge   func(cfg *model.Config) ports.BridgePort
	Discover func(ctx context.Context) (string, error)
}

func DefaultRuntime() *Runtime {
	return &Runtime{
		Out:    os.Stdout,
		Log:    NewLogger(os.Stderr),
		Lookup: os.LookupEnv,
		Bridge: func(cfg *model.Config) ports.BridgePort {
			return hue.NewClient(cfg.Bridge.Address, cfg.Bridge.Username)
		},
		Discover: ssdp.NewDiscoverer(discoverTimeout).Discover,
	}
}

func NewLogger(w io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log
}

// DefaultConfigPath is where the bridge username is kept between runs.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kiel_hue.json"
	}
	return filepath.Join(home, ".kiel_hue.json")
}

// Flags are the options every kiel command understands.
func (rt *Runtime) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    flagEnvFile,
			Value:   ".env",
			Usage:   "dotenv file loaded before reading the environment",
			EnvVars: []string{"KIEL_ENV_FILE"},
		},
		&cli.StringFlag{
			Name:    flagConfig,
			Value:   DefaultConfigPath(),
			Usage:   "JSON config file holding the bridge address and username",
			EnvVars: []string{"KIEL_CONFIG"},
		},
		&cli.BoolFlag{
			Name:  flagVerbose,
			Usage: "log debug output",
		},
	}
}

// Setup loads the dotenv file and returns the layered configuration.
func (rt *Runtime) Setup(c *cli.Context) (*model.Config, *service.ConfigService, error) {
	if c.Bool(flagVerbose) {
		rt.Log.SetLevel(logrus.DebugLevel)
	}

	if envFile := c.String(flagEnvFile); envFile != "" {
		err := godotenv.Load(envFile)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			rt.Log.WithField("path", envFile).Debug("no dotenv file")
		case err != nil:
			return nil, nil, err
		}
	}

	repo := persistence.NewJSONConfigRepository(c.String(flagConfig))
	cs := service.NewConfigService(repo, rt.Lookup)
	cfg, err := cs.Load(c.Context)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cs, nil
}

// Connect returns a bridge client, registering with the bridge first when no
// username is configured yet. An address of "auto" is resolved over SSDP.
func (rt *Runtime) Connect(c *cli.Context, cfg *model.Config, cs *service.ConfigService) (ports.BridgePort, error) {
	if cfg.Bridge.Address == model.BridgeAddressAuto {
		if rt.Discover == nil {
			return nil, ssdp.ErrNoBridge
		}
		addr, err := rt.Discover(c.Context)
		if err != nil {
			return nil, err
		}
		rt.Log.WithField("bridge", addr).Info("discovered bridge")
		cfg.Bridge.Address = addr
	}

	bridge := rt.Bridge(cfg)
	if err := cs.Connect(c.Context, cfg, bridge); err != nil {
		return nil, err
	}
	rt.Log.WithField("bridge", cfg.Bridge.Address).Debug("connected")
	return bridge, nil
}
