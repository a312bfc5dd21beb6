package model

import "time"

const (
	DefaultBridgeAddress = "192.168.1.201"
	BridgeAddressAuto    = "auto"
	DefaultBoilerIndex   = 1
	DefaultListenAddr    = "0.0.0.0:8196"
	DefaultHourCommand   = "/usr/local/bin/kiel"
	DefaultHourTimeout   = 2 * time.Minute
	DefaultDeviceType    = "kiel-home#cli"
)

var DefaultHourArgs = []string{"hour-force", "--enact"}

type BridgeConfig struct {
	Address  string `json:"address"`
	Username string `json:"username"`
}

type ToggleConfig struct {
	PlugUID     string `json:"plug_uid"`
	SpecialWord string `json:"special_word"`
}

type BoilerConfig struct {
	LightIndex int `json:"light_index"`
}

type ServerConfig struct {
	Addr    string        `json:"addr"`
	Command string        `json:"command"`
	Args    []string      `json:"args,omitempty"`
	Timeout time.Duration `json:"timeout"`
}

// Config is the process-wide configuration, fixed for the lifetime of a run.
type Config struct {
	Bridge BridgeConfig `json:"bridge"`
	Toggle ToggleConfig `json:"toggle"`
	Boiler BoilerConfig `json:"boiler"`
	Server ServerConfig `json:"server"`
}

func DefaultConfig() *Config {
	return &Config{
		Bridge: BridgeConfig{Address: DefaultBridgeAddress},
		Boiler: BoilerConfig{LightIndex: DefaultBoilerIndex},
		Server: ServerConfig{
			Addr:    DefaultListenAddr,
			Command: DefaultHourCommand,
			Args:    append([]string(nil), DefaultHourArgs...),
			Timeout: DefaultHourTimeout,
		},
	}
}

func (c *Config) Selector() Selector {
	return Selector{UniqueID: c.Toggle.PlugUID, NameSubstring: c.Toggle.SpecialWord}
}
