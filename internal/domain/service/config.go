package service

import (
	"context"
	"errors"
	"fmt"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/ports"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNoSpecialWord   = errors.New("KIEL_SPECIAL_WORD is not set")
	ErrNoBridgeAddress = errors.New("bridge address is not set")
)

// LookupEnv matches os.LookupEnv.
type LookupEnv func(key string) (string, bool)

type ConfigService struct {
	repo   ports.ConfigRepository
	lookup LookupEnv
}

func NewConfigService(repo ports.ConfigRepository, lookup LookupEnv) *ConfigService {
	return &ConfigService{
		repo:   repo,
		lookup: lookup,
	}
}

// Load layers the environment over the stored config file.
func (s *ConfigService) Load(ctx context.Context) (*model.Config, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if v, ok := s.env("HUE_BRIDGE_ADDRESS"); ok {
		cfg.Bridge.Address = v
	}
	if v, ok := s.env("HUE_USERNAME"); ok {
		cfg.Bridge.Username = v
	}
	if v, ok := s.env("KIEL_PLUG_UID"); ok {
		cfg.Toggle.PlugUID = v
	}
	if v, ok := s.env("KIEL_SPECIAL_WORD"); ok {
		cfg.Toggle.SpecialWord = v
	}
	if v, ok := s.env("KIEL_BOILER_INDEX"); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("KIEL_BOILER_INDEX: %w", err)
		}
		cfg.Boiler.LightIndex = i
	}
	if v, ok := s.env("KIEL_LISTEN_ADDR"); ok {
		cfg.Server.Addr = v
	}
	if v, ok := s.env("KIEL_HOUR_COMMAND"); ok {
		cfg.Server.Command = v
	}
	if v, ok := s.env("KIEL_HOUR_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("KIEL_HOUR_TIMEOUT: %w", err)
		}
		cfg.Server.Timeout = d
	}
	return cfg, nil
}

// ValidateToggle rejects configs under which the toggle selector could match
// every light or none by accident.
func (s *ConfigService) ValidateToggle(cfg *model.Config) error {
	if cfg.Bridge.Address == "" {
		return ErrNoBridgeAddress
	}
	if cfg.Toggle.SpecialWord == "" {
		return ErrNoSpecialWord
	}
	return nil
}

func (s *ConfigService) ValidateBoiler(cfg *model.Config) error {
	if cfg.Bridge.Address == "" {
		return ErrNoBridgeAddress
	}
	if cfg.Boiler.LightIndex <= 0 {
		return fmt.Errorf("invalid boiler light index %d", cfg.Boiler.LightIndex)
	}
	return nil
}

// Connect makes sure cfg carries a bridge username. Without one it registers
// a new user on the bridge and stores it so later runs skip the link button.
func (s *ConfigService) Connect(ctx context.Context, cfg *model.Config, bridge ports.BridgePort) error {
	if cfg.Bridge.Username != "" {
		return nil
	}
	user, err := bridge.Register(ctx, model.DefaultDeviceType)
	if err != nil {
		return fmt.Errorf("register with bridge %s (press the link button and retry): %w", cfg.Bridge.Address, err)
	}
	cfg.Bridge.Username = user

	stored, err := s.repo.Get(ctx)
	if err != nil {
		return err
	}
	stored.Bridge.Address = cfg.Bridge.Address
	stored.Bridge.Username = user
	return s.repo.Save(ctx, stored)
}

func (s *ConfigService) env(key string) (string, bool) {
	v, ok := s.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
