package hue

import (
	"context"
	"fmt"
	"kiel-home/internal/domain/model"
	"sync"

	"github.com/amimof/huego"
)

// Client is a BridgePort talking to a Philips Hue bridge over its v1 REST API.
type Client struct {
	mu     sync.Mutex
	bridge *huego.Bridge
}

func NewClient(address, username string) *Client {
	return &Client{bridge: huego.New(address, username)}
}

func (c *Client) GetLights(ctx context.Context) ([]model.Light, error) {
	lights, err := c.conn().GetLightsContext(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Light, 0, len(lights))
	for i := range lights {
		out = append(out, toModel(&lights[i]))
	}
	return out, nil
}

func (c *Client) GetLight(ctx context.Context, index int) (*model.Light, error) {
	l, err := c.conn().GetLightContext(ctx, index)
	if err != nil {
		return nil, err
	}
	if l == nil || (l.UniqueID == "" && l.Name == "") {
		return nil, fmt.Errorf("%w: index %d", model.ErrLightNotFound, index)
	}
	light := toModel(l)
	light.Index = index
	return &light, nil
}

func (c *Client) SetLightOn(ctx context.Context, index int, on bool) error {
	_, err := c.conn().SetLightStateContext(ctx, index, huego.State{On: on})
	return err
}

func (c *Client) Register(ctx context.Context, deviceType string) (string, error) {
	user, err := c.conn().CreateUserContext(ctx, deviceType)
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	c.bridge = c.bridge.Login(user)
	c.mu.Unlock()
	return user, nil
}

func (c *Client) conn() *huego.Bridge {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bridge
}

func toModel(l *huego.Light) model.Light {
	light := model.Light{
		Index:    l.ID,
		UniqueID: l.UniqueID,
		Name:     l.Name,
	}
	if l.State != nil {
		light.On = l.State.On
	}
	return light
}
