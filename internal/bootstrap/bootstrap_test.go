package bootstrap

import (
	"context"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/ports"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type nopBridge struct{ registered bool }

func (b *nopBridge) GetLights(ctx context.Context) ([]model.Light, error) { return nil, nil }
func (b *nopBridge) GetLight(ctx context.Context, index int) (*model.Light, error) {
	return nil, model.ErrLightNotFound
}
func (b *nopBridge) SetLightOn(ctx context.Context, index int, on bool) error { return nil }
func (b *nopBridge) Register(ctx context.Context, deviceType string) (string, error) {
	b.registered = true
	return "new-user", nil
}

func testRuntime(env map[string]string, bridge ports.BridgePort) *Runtime {
	log, _ := test.NewNullLogger()
	return &Runtime{
		Out: os.Stdout,
		Log: log,
		Lookup: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
		Bridge: func(cfg *model.Config) ports.BridgePort { return bridge },
	}
}

// runWith executes fn inside a cli app carrying the runtime flags.
func runWith(t *testing.T, rt *Runtime, args []string, fn func(c *cli.Context) error) {
	t.Helper()
	app := &cli.App{
		Name:           "test",
		Flags:          rt.Flags(),
		Action:         fn,
		ExitErrHandler: func(*cli.Context, error) {},
	}
	require.NoError(t, app.Run(append([]string{"test"}, args...)))
}

func TestRuntime_SetupLoadsDotenvAndConfig(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("KIEL_TEST_DOTENV_WORD=from-dotenv\n"), 0600))
	t.Cleanup(func() { os.Unsetenv("KIEL_TEST_DOTENV_WORD") })

	cfgFile := filepath.Join(dir, "kiel.json")
	require.NoError(t, os.WriteFile(cfgFile, []byte(`{"bridge":{"address":"10.0.0.9","username":"stored"}}`), 0600))

	rt := testRuntime(map[string]string{"KIEL_SPECIAL_WORD": "kiel"}, &nopBridge{})
	runWith(t, rt, []string{"--env-file", envFile, "--config", cfgFile, "--verbose"}, func(c *cli.Context) error {
		cfg, _, err := rt.Setup(c)
		require.NoError(t, err)
		assert.Equal(t, "10.0.0.9", cfg.Bridge.Address)
		assert.Equal(t, "stored", cfg.Bridge.Username)
		assert.Equal(t, "kiel", cfg.Toggle.SpecialWord)
		return nil
	})

	assert.Equal(t, "from-dotenv", os.Getenv("KIEL_TEST_DOTENV_WORD"))
	assert.Equal(t, logrus.DebugLevel, rt.Log.GetLevel())
}

func TestRuntime_ConnectDiscoversAndRegisters(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "kiel.json")

	bridge := &nopBridge{}
	rt := testRuntime(map[string]string{"HUE_BRIDGE_ADDRESS": "auto"}, bridge)
	rt.Discover = func(ctx context.Context) (string, error) { return "192.168.1.201", nil }

	runWith(t, rt, []string{"--env-file", filepath.Join(dir, "none"), "--config", cfgFile}, func(c *cli.Context) error {
		cfg, cs, err := rt.Setup(c)
		require.NoError(t, err)
		_, err = rt.Connect(c, cfg, cs)
		require.NoError(t, err)
		assert.Equal(t, "192.168.1.201", cfg.Bridge.Address)
		assert.Equal(t, "new-user", cfg.Bridge.Username)
		return nil
	})
	assert.True(t, bridge.registered)

	data, err := os.ReadFile(cfgFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"username": "new-user"`)
}
