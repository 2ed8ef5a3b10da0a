package sim

// World dimensions (in world units; one unit = one particle diameter).
// The solver's slab scheduler needs Width >= 2*threads, so keep the
// default width comfortably above any sane worker count.
const (
	DefaultWorldWidth  = 300
	DefaultWorldHeight = 300
)

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 960
	WindowMargin = 20.0 // screen pixels left free around the world
)

// Simulation step.
const (
	DefaultSubSteps = 8
	FrameDT         = 1.0 / 60.0
	GravityY        = 20.0
	// Velocity damping approximating air friction. Large enough to
	// visibly damp; revisit if a physically motivated value is needed.
	VelocityDamping = 40.0
)

// Collision constants.
const (
	ParticleRadius = 0.5
	// Cells are 1x1 world units, so four radius-0.5 particles fit with
	// overlap tolerated by position correction.
	CellCapacity = 4
	// Hard wall margin applied during integration.
	BorderMargin = 2.0
	// Squared distance below which two particles are treated as
	// coincident and skipped (keeps the correction finite).
	MinContactDist2 = 1e-4
)

// Emitter.
const (
	DefaultMaxParticles = 80000
	DefaultEmitRows     = 20
	EmitX               = 2.0
	EmitY               = 10.0
	EmitSpacing         = 1.1
	EmitSpeedX          = 0.2
	// Hue advance per particle id; a full rainbow every ~31k particles.
	EmitHueStep = 0.0001
)
