package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/ports"

	"github.com/sirupsen/logrus"
)

// BoilerService drives the single light slot the boiler relay is paired to.
type BoilerService struct {
	bridge ports.BridgePort
	index  int
	out    io.Writer
	log    logrus.FieldLogger
}

func NewBoilerService(bridge ports.BridgePort, index int, out io.Writer, log logrus.FieldLogger) *BoilerService {
	return &BoilerService{bridge: bridge, index: index, out: out, log: log}
}

// Set prints the current record of the boiler light and then sets its power
// state, whatever it was before.
func (s *BoilerService) Set(ctx context.Context, state model.PowerState) error {
	current, err := s.bridge.GetLight(ctx, s.index)
	if err != nil {
		return fmt.Errorf("read boiler light %d: %w", s.index, err)
	}
	if err := json.NewEncoder(s.out).Encode(current); err != nil {
		return err
	}

	if err := s.bridge.SetLightOn(ctx, s.index, bool(state)); err != nil {
		return fmt.Errorf("set boiler light %d %s: %w", s.index, state, err)
	}
	s.log.WithFields(logrus.Fields{
		"index": s.index,
		"was":   model.PowerState(current.On),
		"now":   state,
	}).Info("boiler switched")
	return nil
}
