package main

import (
	"testing"

	"github.com/mongodb/grip"
	"github.com/mongodb/grip/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildApp(t *testing.T) {
	app := buildApp()
	assert.Equal(t, "web420", app.Name)

	commands := map[string]bool{}
	for _, c := range app.Commands {
		commands[c.Name] = true
	}
	assert.True(t, commands["version"])
	assert.True(t, commands["service"])
	assert.True(t, commands["admin"])
	assert.True(t, commands["client"])
}

func TestLoggingSetup(t *testing.T) {
	require.NoError(t, loggingSetup("web420-test", "warning"))
	assert.Equal(t, "web420-test", grip.Name())
	assert.Equal(t, level.Warning, grip.GetSender().Level().Threshold)
}
