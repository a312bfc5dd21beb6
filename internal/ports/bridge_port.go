package ports

import (
	"context"
	"kiel-home/internal/domain/model"
)

type BridgePort interface {
	GetLights(ctx context.Context) ([]model.Light, error)
	GetLight(ctx context.Context, index int) (*model.Light, error)
	SetLightOn(ctx context.Context, index int, on bool) error

	// Register creates a new whitelisted user on the bridge. The bridge's
	// link button must have been pressed shortly before.
	Register(ctx context.Context, deviceType string) (string, error)
}
