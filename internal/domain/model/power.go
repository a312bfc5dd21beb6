package model

import (
	"errors"
	"fmt"
)

var ErrInvalidPowerState = errors.New("invalid power state")

type PowerState bool

const (
	PowerOff PowerState = false
	PowerOn  PowerState = true
)

func (p PowerState) String() string {
	if p {
		return "on"
	}
	return "off"
}

// ParseBinaryPowerState accepts the toggle CLI tokens "0" and "1".
func ParseBinaryPowerState(s string) (PowerState, error) {
	switch s {
	case "0":
		return PowerOff, nil
	case "1":
		return PowerOn, nil
	}
	return PowerOff, fmt.Errorf("%w: %q", ErrInvalidPowerState, s)
}

// ParseNamedPowerState accepts the boiler tokens "on" and "off".
func ParseNamedPowerState(s string) (PowerState, error) {
	switch s {
	case "on":
		return PowerOn, nil
	case "off":
		return PowerOff, nil
	}
	return PowerOff, fmt.Errorf("%w: %q", ErrInvalidPowerState, s)
}
