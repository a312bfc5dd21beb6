package service

import (
	"context"
	"fmt"
	"io"
	"kiel-home/internal/domain/model"
	"kiel-home/internal/ports"
	"sort"

	"github.com/sirupsen/logrus"
)

type ToggleResult struct {
	Light  model.Light
	Reason model.MatchReason
}

// ToggleService applies a power state to every light picked by a selector.
type ToggleService struct {
	bridge   ports.BridgePort
	selector model.Selector
	out      io.Writer
	log      logrus.FieldLogger
}

func NewToggleService(bridge ports.BridgePort, selector model.Selector, out io.Writer, log logrus.FieldLogger) *ToggleService {
	return &ToggleService{
		bridge:   bridge,
		selector: selector,
		out:      out,
		log:      log,
	}
}

// Apply fetches the light table once and sets the power state of every match,
// printing the unique ID after each successful set. A light matching on both
// unique ID and name is set twice. The first bridge error aborts the run.
func (s *ToggleService) Apply(ctx context.Context, state model.PowerState) ([]ToggleResult, error) {
	lights, err := s.bridge.GetLights(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch lights: %w", err)
	}
	sort.Slice(lights, func(i, j int) bool { return lights[i].Index < lights[j].Index })

	var applied []ToggleResult
	for _, l := range lights {
		for _, reason := range s.selector.Matches(l) {
			if err := s.bridge.SetLightOn(ctx, l.Index, bool(state)); err != nil {
				return applied, fmt.Errorf("set light %d %s: %w", l.Index, state, err)
			}
			s.log.WithFields(logrus.Fields{
				"index":     l.Index,
				"unique_id": l.UniqueID,
				"match":     reason,
				"state":     state,
			}).Debug("light switched")
			fmt.Fprintln(s.out, l.UniqueID)
			applied = append(applied, ToggleResult{Light: l, Reason: reason})
		}
	}
	if len(applied) == 0 {
		s.log.WithField("lights", len(lights)).Info("no light matched the selector")
	}
	return applied, nil
}
