package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParticleAtRest(t *testing.T) {
	p := NewParticle(3.5, 7.25)
	vx, vy := p.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
	assert.Equal(t, 3.5, p.X)
	assert.Equal(t, 7.25, p.Y)
}

func TestAddVelocity(t *testing.T) {
	p := NewParticle(10, 10)
	p.AddVelocity(0.2, -0.1)
	vx, vy := p.Velocity()
	assert.InDelta(t, 0.2, vx, 1e-15)
	assert.InDelta(t, -0.1, vy, 1e-15)
	assert.InDelta(t, 0.2236, p.Speed(), 1e-3)
}

func TestSetPositionStops(t *testing.T) {
	p := NewParticle(1, 1)
	p.AddVelocity(5, 5)
	p.SetPosition(20, 30)
	vx, vy := p.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
	assert.Equal(t, 20.0, p.X)
	assert.Equal(t, 30.0, p.Y)
}

func TestIntegrateMatchesRecurrence(t *testing.T) {
	p := NewParticle(5, 5)
	p.AddVelocity(0.1, 0)
	p.AX, p.AY = 0, 20

	const h = 0.01
	vx, vy := p.Velocity()
	wantX := p.X + vx + (0-vx*VelocityDamping)*h*h
	wantY := p.Y + vy + (20-vy*VelocityDamping)*h*h

	p.integrate(h)
	assert.InDelta(t, wantX, p.X, 1e-15)
	assert.InDelta(t, wantY, p.Y, 1e-15)
	// Acceleration is consumed by the step.
	assert.Zero(t, p.AX)
	assert.Zero(t, p.AY)
	// The old position becomes the new last position.
	assert.Equal(t, 5.0, p.LastX)
	assert.Equal(t, 5.0, p.LastY)
}
