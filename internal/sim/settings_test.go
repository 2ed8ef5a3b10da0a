package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "verlet.cfg")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultSettingsValid(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())
	assert.Equal(t, DefaultWorldWidth, s.Simulation.WorldWidth)
	assert.Equal(t, DefaultSubSteps, s.Simulation.SubSteps)
}

func TestLoadSettingsOverridesDefaults(t *testing.T) {
	path := writeSettings(t, `
[simulation]
worldwidth = 200
worldheight = 150
threads = 4
substeps = 4
maxparticles = 5000
emitrows = 5
`)
	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 200, s.Simulation.WorldWidth)
	assert.Equal(t, 150, s.Simulation.WorldHeight)
	assert.Equal(t, 4, s.Simulation.Threads)
	assert.Equal(t, 4, s.Simulation.SubSteps)
	assert.Equal(t, 5000, s.Simulation.MaxParticles)
	assert.Equal(t, 5, s.Simulation.EmitRows)
}

func TestLoadSettingsPartialKeepsDefaults(t *testing.T) {
	path := writeSettings(t, `
[simulation]
substeps = 2
`)
	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Simulation.SubSteps)
	assert.Equal(t, DefaultWorldWidth, s.Simulation.WorldWidth)
	assert.Equal(t, DefaultMaxParticles, s.Simulation.MaxParticles)
}

func TestLoadSettingsMissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "nope.cfg"))
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"tiny world", func(s *Settings) { s.Simulation.WorldWidth = 2 }},
		{"negative threads", func(s *Settings) { s.Simulation.Threads = -1 }},
		{"too many workers", func(s *Settings) {
			s.Simulation.WorldWidth = 10
			s.Simulation.Threads = 6
		}},
		{"zero substeps", func(s *Settings) { s.Simulation.SubSteps = 0 }},
		{"zero maxparticles", func(s *Settings) { s.Simulation.MaxParticles = 0 }},
		{"zero emitrows", func(s *Settings) { s.Simulation.EmitRows = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}
