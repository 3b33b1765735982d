package testutil

import (
	"testing"

	"github.com/dalemusser/ngohub/internal/app/resources"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// BootTemplates compiles the shared layout plus every template set the
// test binary registered, and installs the engine for templates.Render.
func BootTemplates(t *testing.T) {
	t.Helper()
	resources.LoadSharedTemplates()
	eng := templates.New(false)
	require.NoError(t, eng.Boot(zap.NewNop()))
	templates.UseEngine(eng, zap.NewNop())
}
