package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"kiel-home/internal/domain/model"
	"os"
	"sync"
	"time"
)

type JSONConfigRepository struct {
	filepath string
	mu       sync.RWMutex
}

// On-disk layout. Durations are stored as strings ("2m").
type fileConfig struct {
	Bridge model.BridgeConfig `json:"bridge"`
	Toggle model.ToggleConfig `json:"toggle"`
	Boiler model.BoilerConfig `json:"boiler"`
	Server fileServerConfig   `json:"server"`
}

type fileServerConfig struct {
	Addr    string   `json:"addr,omitempty"`
	Command string   `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
	Timeout string   `json:"timeout,omitempty"`
}

// Credentials file written by the python phue library: bridge IP -> username.
type legacyConfig map[string]struct {
	Username string `json:"username"`
}

func NewJSONConfigRepository(filepath string) *JSONConfigRepository {
	return &JSONConfigRepository{filepath: filepath}
}

// Get returns the stored config over the defaults. A missing file yields the
// defaults.
func (r *JSONConfigRepository) Get(ctx context.Context) (*model.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := model.DefaultConfig()
	data, err := os.ReadFile(r.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.filepath, err)
	}

	// Migration check: a phue credentials file has no "bridge" section
	if fc.Bridge.Address == "" && fc.Bridge.Username == "" {
		if r.migrate(data, cfg) {
			return cfg, nil
		}
	}

	if err := fc.apply(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.filepath, err)
	}
	return cfg, nil
}

func (r *JSONConfigRepository) migrate(data []byte, cfg *model.Config) bool {
	var legacy legacyConfig
	if err := json.Unmarshal(data, &legacy); err != nil || len(legacy) == 0 {
		return false
	}
	if entry, ok := legacy[cfg.Bridge.Address]; ok && entry.Username != "" {
		cfg.Bridge.Username = entry.Username
		return true
	}
	for addr, entry := range legacy {
		if entry.Username == "" {
			continue
		}
		cfg.Bridge.Address = addr
		cfg.Bridge.Username = entry.Username
		return true
	}
	return false
}

func (r *JSONConfigRepository) Save(ctx context.Context, config *model.Config) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fc := fileConfig{
		Bridge: config.Bridge,
		Toggle: config.Toggle,
		Boiler: config.Boiler,
		Server: fileServerConfig{
			Addr:    config.Server.Addr,
			Command: config.Server.Command,
			Args:    config.Server.Args,
		},
	}
	if config.Server.Timeout > 0 {
		fc.Server.Timeout = config.Server.Timeout.String()
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}

	// The file holds the bridge username, which grants full bridge access.
	return os.WriteFile(r.filepath, data, 0600)
}

func (fc *fileConfig) apply(cfg *model.Config) error {
	if fc.Bridge.Address != "" {
		cfg.Bridge.Address = fc.Bridge.Address
	}
	cfg.Bridge.Username = fc.Bridge.Username
	cfg.Toggle = fc.Toggle
	if fc.Boiler.LightIndex != 0 {
		cfg.Boiler.LightIndex = fc.Boiler.LightIndex
	}
	if fc.Server.Addr != "" {
		cfg.Server.Addr = fc.Server.Addr
	}
	if fc.Server.Command != "" {
		cfg.Server.Command = fc.Server.Command
	}
	if fc.Server.Args != nil {
		cfg.Server.Args = fc.Server.Args
	}
	if fc.Server.Timeout != "" {
		d, err := time.ParseDuration(fc.Server.Timeout)
		if err != nil {
			return err
		}
		cfg.Server.Timeout = d
	}
	return nil
}
