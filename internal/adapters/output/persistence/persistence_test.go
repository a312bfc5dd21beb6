package persistence

import (
	"context"
	"kiel-home/internal/domain/model"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONConfigRepository_MissingFileGivesDefaults(t *testing.T) {
	repo := NewJSONConfigRepository(filepath.Join(t.TempDir(), "absent.json"))
	cfg, err := repo.Get(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), cfg)
}

func TestJSONConfigRepository_Migration(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "python_hue")

	legacyData := `{"192.168.1.201": {"username": "phue-generated-user"}}`
	require.NoError(t, os.WriteFile(tmpFile, []byte(legacyData), 0644))

	repo := NewJSONConfigRepository(tmpFile)
	cfg, err := repo.Get(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "192.168.1.201", cfg.Bridge.Address)
	assert.Equal(t, "phue-generated-user", cfg.Bridge.Username)
	assert.Equal(t, model.DefaultBoilerIndex, cfg.Boiler.LightIndex)
}

func TestJSONConfigRepository_MigrationOtherAddress(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "python_hue")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"10.0.0.7": {"username": "u"}}`), 0644))

	cfg, err := NewJSONConfigRepository(tmpFile).Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.7", cfg.Bridge.Address)
	assert.Equal(t, "u", cfg.Bridge.Username)
}

func TestJSONConfigRepository_NewFormat(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "kiel.json")

	repo := NewJSONConfigRepository(tmpFile)
	cfg := model.DefaultConfig()
	cfg.Bridge.Username = "user"
	cfg.Toggle.SpecialWord = "kiel"
	cfg.Boiler.LightIndex = 4
	cfg.Server.Timeout = 45 * time.Second

	err := repo.Save(context.Background(), cfg)
	assert.NoError(t, err)

	info, err := os.Stat(tmpFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := repo.Get(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestJSONConfigRepository_BadTimeout(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "kiel.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(`{"bridge":{"address":"h"},"server":{"timeout":"later"}}`), 0644))

	_, err := NewJSONConfigRepository(tmpFile).Get(context.Background())
	assert.Error(t, err)
}
