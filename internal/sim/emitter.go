package sim

// Emitter streams particles in from the left edge of the world: one column
// of Rows particles per frame, pushed rightward so the stream arcs across
// the world under gravity. Colors advance along a rainbow keyed to the
// particle id, so the pile records spawn order.
type Emitter struct {
	Enabled bool
	Max     int
	Rows    int
}

func NewEmitter(max, rows int) *Emitter {
	if max <= 0 {
		max = DefaultMaxParticles
	}
	if rows <= 0 {
		rows = DefaultEmitRows
	}
	return &Emitter{Enabled: true, Max: max, Rows: rows}
}

// Emit spawns up to Rows particles into the solver and returns how many
// were created. Stops at Max so the frame rate stays bounded.
func (e *Emitter) Emit(s *Solver) int {
	if !e.Enabled || s.Count() >= e.Max {
		return 0
	}
	spawned := 0
	for i := e.Rows; i > 0; i-- {
		id := s.CreateParticle(EmitX, EmitY+EmitSpacing*float64(i))
		p := s.ParticleAt(id)
		p.AddVelocity(EmitSpeedX, 0)
		p.Col = Rainbow(float64(id) * EmitHueStep)
		spawned++
		if s.Count() >= e.Max {
			break
		}
	}
	return spawned
}
