package main

import (
	"kiel-home/internal/bootstrap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerFlags(t *testing.T) {
	app := newApp(bootstrap.DefaultRuntime())
	var names []string
	for _, f := range app.Flags {
		names = append(names, f.Names()[0])
	}
	assert.Subset(t, names, []string{"env-file", "config", "verbose", "addr", "command", "timeout"})
}
