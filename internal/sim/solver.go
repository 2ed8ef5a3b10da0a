package sim

import (
	"fmt"
	"math"
)

// Solver owns the particle store and the collision grid and runs the
// sub-stepped update cycle: rebuild grid, resolve contacts in two parallel
// passes over column slabs, integrate. The thread pool is borrowed; its
// lifetime must exceed the solver's.
//
// Resolution order between concurrently running slabs is unspecified, so
// results are not bit-identical across thread counts. Within one slab the
// order is deterministic: ascending cell index, ascending slot in a cell.
type Solver struct {
	Particles []Particle
	Grid      *CollisionGrid

	WorldW, WorldH float64

	GravityX, GravityY float64
	SubSteps           int

	pool *Pool
}

// NewSolver allocates the grid and particle store for a world of
// width x height cells. Panics if the width cannot host one column per
// slab (width must be >= 2 * pool.ThreadCount).
func NewSolver(width, height int32, pool *Pool) *Solver {
	if int(width) < 2*pool.ThreadCount {
		panic(fmt.Sprintf("solver: world width %d < 2 * %d workers", width, pool.ThreadCount))
	}
	s := &Solver{
		Grid:     NewCollisionGrid(width, height),
		WorldW:   float64(width),
		WorldH:   float64(height),
		GravityY: GravityY,
		SubSteps: DefaultSubSteps,
		pool:     pool,
	}
	s.Grid.Clear()
	return s
}

// CreateParticle appends a particle at rest and returns its index.
// Indices are stable for the life of the solver.
func (s *Solver) CreateParticle(x, y float64) uint32 {
	idx := uint32(len(s.Particles))
	s.Particles = append(s.Particles, NewParticle(x, y))
	return idx
}

// ParticleAt returns a pointer into the store. Valid while the solver
// exists; must not be held across CreateParticle calls.
func (s *Solver) ParticleAt(i uint32) *Particle {
	return &s.Particles[i]
}

// Count returns the number of particles.
func (s *Solver) Count() int {
	return len(s.Particles)
}

// Update advances the simulation by dt, split into SubSteps sub-steps.
// Synchronous: returns when the last integration pass has completed, so
// callers may read the particle store freely between Update calls.
func (s *Solver) Update(dt float64) {
	subDT := dt / float64(s.SubSteps)
	for n := 0; n < s.SubSteps; n++ {
		s.BuildGrid()
		s.solveCollisions()
		s.integrateAll(subDT)
	}
}

// BuildGrid rebuilds the grid from current positions. Only particles
// strictly inside the border band (1, W-1) x (1, H-1) are inserted; a
// particle outside the band simply collides with nothing this sub-step.
// Sequential: the inserts target arbitrary cells and each write is cheap.
func (s *Solver) BuildGrid() {
	s.Grid.Clear()
	maxX := float64(s.Grid.Width) - 1.0
	maxY := float64(s.Grid.Height) - 1.0
	for i := range s.Particles {
		p := &s.Particles[i]
		if p.X > 1.0 && p.X < maxX && p.Y > 1.0 && p.Y < maxY {
			s.Grid.Insert(int32(p.X), int32(p.Y), uint32(i))
		}
	}
}

// solveContact applies an equal-and-opposite position correction to an
// overlapping pair. The coincidence guard keeps the correction finite and
// makes the (i, i) self-pair a no-op.
func (s *Solver) solveContact(i, j uint32) {
	const responseCoef = 1.0
	p1 := &s.Particles[i]
	p2 := &s.Particles[j]
	dx := p1.X - p2.X
	dy := p1.Y - p2.Y
	dist2 := dx*dx + dy*dy
	if dist2 < 1.0 && dist2 > MinContactDist2 {
		dist := math.Sqrt(dist2)
		// Radii are all 0.5: overlap at center distance < 1.
		delta := responseCoef * 0.5 * (1.0 - dist)
		cx := (dx / dist) * delta
		cy := (dy / dist) * delta
		p1.X += cx
		p1.Y += cy
		p2.X -= cx
		p2.Y -= cy
	}
}

func (s *Solver) checkCellCollisions(i uint32, c *CollisionCell) {
	for k := uint32(0); k < c.Count; k++ {
		s.solveContact(i, c.Items[k])
	}
}

// processCell tries every particle in cell idx against the full 3x3
// neighborhood. Callers never pass border cells, so no bounds checks.
func (s *Solver) processCell(c *CollisionCell, idx int32) {
	h := s.Grid.Height
	for k := uint32(0); k < c.Count; k++ {
		i := c.Items[k]
		for dx := int32(-1); dx <= 1; dx++ {
			for dy := int32(-1); dy <= 1; dy++ {
				s.checkCellCollisions(i, &s.Grid.Cells[idx+dx*h+dy])
			}
		}
	}
}

// solveColumns resolves contacts for every non-border cell whose column
// lies in [fromCol, toCol).
func (s *Solver) solveColumns(fromCol, toCol int) {
	x0 := int32(maxI(fromCol, 1))
	x1 := int32(minI(toCol, int(s.Grid.Width)-1))
	for x := x0; x < x1; x++ {
		for y := int32(1); y < s.Grid.Height-1; y++ {
			idx := s.Grid.Index(x, y)
			s.processCell(&s.Grid.Cells[idx], idx)
		}
	}
}

// solveCollisions runs the two-pass slab schedule. The grid's columns are
// split into 2T slabs; pass 1 resolves the even-indexed slabs, pass 2 the
// odd ones, with a barrier between. Concurrently active slabs are always
// separated by at least one untouched slab, so their 3x3 neighborhoods
// never overlap and no cell or particle is written by two tasks at once.
// Trailing columns from non-divisibility join pass 1 as one extra task;
// the last odd slab separates them from the preceding even slab.
func (s *Solver) solveCollisions() {
	threadCount := s.pool.ThreadCount
	sliceCols := int(s.Grid.Width) / (2 * threadCount)
	width := int(s.Grid.Width)

	for i := 0; i < threadCount; i++ {
		start := 2 * i * sliceCols
		end := start + sliceCols
		s.pool.AddTask(func() { s.solveColumns(start, end) })
	}
	if tail := 2 * threadCount * sliceCols; tail < width {
		s.pool.AddTask(func() { s.solveColumns(tail, width) })
	}
	s.pool.WaitForCompletion()

	for i := 0; i < threadCount; i++ {
		start := (2*i + 1) * sliceCols
		end := start + sliceCols
		s.pool.AddTask(func() { s.solveColumns(start, end) })
	}
	s.pool.WaitForCompletion()
}

// integrateAll applies gravity, steps every particle, and clamps to the
// hard world border, in parallel over index ranges.
func (s *Solver) integrateAll(dt float64) {
	s.pool.Dispatch(len(s.Particles), func(start, end int) {
		for i := start; i < end; i++ {
			p := &s.Particles[i]
			p.AX += s.GravityX
			p.AY += s.GravityY
			p.integrate(dt)
			p.X = clampF(p.X, BorderMargin, s.WorldW-BorderMargin)
			p.Y = clampF(p.Y, BorderMargin, s.WorldH-BorderMargin)
		}
	})
}
