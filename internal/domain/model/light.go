package model

import "errors"

var ErrLightNotFound = errors.New("light not found")

// Light is one entry of the bridge light table, as read at the start of a run.
type Light struct {
	Index    int    `json:"index"`
	UniqueID string `json:"uniqueid"`
	Name     string `json:"name"`
	On       bool   `json:"on"`
}
