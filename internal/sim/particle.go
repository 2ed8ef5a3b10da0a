package sim

import "math"

// Particle is a Verlet-integrated disc of radius 0.5. Velocity is implicit
// in the distance between the current and previous positions.
type Particle struct {
	X, Y         float64
	LastX, LastY float64
	AX, AY       float64
	Col          RGB
}

// NewParticle returns a particle at rest at (x, y).
func NewParticle(x, y float64) Particle {
	return Particle{X: x, Y: y, LastX: x, LastY: y}
}

// SetPosition moves the particle and zeroes its implicit velocity.
func (p *Particle) SetPosition(x, y float64) {
	p.X, p.Y = x, y
	p.LastX, p.LastY = x, y
}

// Velocity returns the implicit per-step velocity.
func (p *Particle) Velocity() (float64, float64) {
	return p.X - p.LastX, p.Y - p.LastY
}

// AddVelocity shifts the previous position so the next step carries the
// extra velocity.
func (p *Particle) AddVelocity(vx, vy float64) {
	p.LastX -= vx
	p.LastY -= vy
}

// Speed returns the implicit per-step speed.
func (p *Particle) Speed() float64 {
	vx, vy := p.Velocity()
	return math.Hypot(vx, vy)
}

// integrate advances one sub-step of duration dt. Damping approximates air
// friction on the implicit velocity; acceleration is consumed and reset.
func (p *Particle) integrate(dt float64) {
	vx := p.X - p.LastX
	vy := p.Y - p.LastY
	newX := p.X + vx + (p.AX-vx*VelocityDamping)*(dt*dt)
	newY := p.Y + vy + (p.AY-vy*VelocityDamping)*(dt*dt)
	p.LastX, p.LastY = p.X, p.Y
	p.X, p.Y = newX, newY
	p.AX, p.AY = 0, 0
}
