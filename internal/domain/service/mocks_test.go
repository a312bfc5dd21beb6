package service

import (
	"context"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/ports"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
)

type MockBridgePort struct {
	mock.Mock
}

func (m *MockBridgePort) GetLights(ctx context.Context) ([]model.Light, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Light), args.Error(1)
}

func (m *MockBridgePort) GetLight(ctx context.Context, index int) (*model.Light, error) {
	args := m.Called(ctx, index)
	l, _ := args.Get(0).(*model.Light)
	return l, args.Error(1)
}

func (m *MockBridgePort) SetLightOn(ctx context.Context, index int, on bool) error {
	args := m.Called(ctx, index, on)
	return args.Error(0)
}

func (m *MockBridgePort) Register(ctx context.Context, deviceType string) (string, error) {
	args := m.Called(ctx, deviceType)
	return args.String(0), args.Error(1)
}

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (*ports.CommandResult, error) {
	a := m.Called(ctx, name, args)
	res, _ := a.Get(0).(*ports.CommandResult)
	return res, a.Error(1)
}

type MockConfigRepo struct {
	mock.Mock
}

func (m *MockConfigRepo) Get(ctx context.Context) (*model.Config, error) {
	args := m.Called(ctx)
	cfg, _ := args.Get(0).(*model.Config)
	return cfg, args.Error(1)
}

func (m *MockConfigRepo) Save(ctx context.Context, cfg *model.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func newTestLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}
