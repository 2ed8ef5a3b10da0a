package sim

import (
	"fmt"

	"gopkg.in/gcfg.v1"
)

// Settings mirrors the optional ini-style config file. Every key has a
// compiled default; a missing file section or key keeps the default.
//
//	[simulation]
//	worldwidth = 300
//	worldheight = 300
//	threads = 10
//	substeps = 8
//	maxparticles = 80000
//	emitrows = 20
type Settings struct {
	Simulation struct {
		WorldWidth   int
		WorldHeight  int
		Threads      int // 0 = one worker per CPU
		SubSteps     int
		MaxParticles int
		EmitRows     int
	}
}

func DefaultSettings() Settings {
	var s Settings
	s.Simulation.WorldWidth = DefaultWorldWidth
	s.Simulation.WorldHeight = DefaultWorldHeight
	s.Simulation.Threads = 0
	s.Simulation.SubSteps = DefaultSubSteps
	s.Simulation.MaxParticles = DefaultMaxParticles
	s.Simulation.EmitRows = DefaultEmitRows
	return s
}

// LoadSettings reads path over the defaults and validates the result.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if err := gcfg.ReadFileInto(&s, path); err != nil {
		return s, fmt.Errorf("read settings %q: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("settings %q: %w", path, err)
	}
	return s, nil
}

func (s *Settings) Validate() error {
	c := &s.Simulation
	if c.WorldWidth < 4 || c.WorldHeight < 4 {
		return fmt.Errorf("world %dx%d too small, need at least 4x4", c.WorldWidth, c.WorldHeight)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	}
	if c.Threads > 0 && c.WorldWidth < 2*c.Threads {
		return fmt.Errorf("world width %d cannot host %d workers (need width >= 2*threads)", c.WorldWidth, c.Threads)
	}
	if c.SubSteps < 1 {
		return fmt.Errorf("substeps must be >= 1, got %d", c.SubSteps)
	}
	if c.MaxParticles < 1 {
		return fmt.Errorf("maxparticles must be >= 1, got %d", c.MaxParticles)
	}
	if c.EmitRows < 1 {
		return fmt.Errorf("emitrows must be >= 1, got %d", c.EmitRows)
	}
	return nil
}
