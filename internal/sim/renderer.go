package sim

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// spriteFloats is the number of floats per particle in the interleaved
// buffer: [x, y, size, r, g, b, a].
const spriteFloats = 7

// Renderer draws the world frame and the particle cloud. It only reads the
// particle store, and only between solver updates.
type Renderer struct {
	// Particle point-sprite program.
	spriteProg uint32
	spriteVAO  uint32
	spriteVBO  uint32

	spUCamera     int32
	spUZoom       int32
	spUResolution int32

	// World frame program.
	frameProg uint32
	frameVAO  uint32
	frameVBO  uint32

	frUWorldSize  int32
	frUCamera     int32
	frUZoom       int32
	frUResolution int32
	frUColor      int32

	buf []float32
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{}

	prog, err := linkProgram(particleVertSrc, particleFragSrc)
	if err != nil {
		return nil, fmt.Errorf("particle program: %w", err)
	}
	r.spriteProg = prog
	r.spUCamera = gl.GetUniformLocation(prog, gl.Str("uCamera\x00"))
	r.spUZoom = gl.GetUniformLocation(prog, gl.Str("uZoom\x00"))
	r.spUResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))

	gl.GenVertexArrays(1, &r.spriteVAO)
	gl.BindVertexArray(r.spriteVAO)
	gl.GenBuffers(1, &r.spriteVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	stride := int32(spriteFloats * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))

	prog, err = linkProgram(frameVertSrc, frameFragSrc)
	if err != nil {
		return nil, fmt.Errorf("frame program: %w", err)
	}
	r.frameProg = prog
	r.frUWorldSize = gl.GetUniformLocation(prog, gl.Str("uWorldSize\x00"))
	r.frUCamera = gl.GetUniformLocation(prog, gl.Str("uCamera\x00"))
	r.frUZoom = gl.GetUniformLocation(prog, gl.Str("uZoom\x00"))
	r.frUResolution = gl.GetUniformLocation(prog, gl.Str("uResolution\x00"))
	r.frUColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))

	quad := []float32{0, 0, 1, 0, 0, 1, 1, 1}
	gl.GenVertexArrays(1, &r.frameVAO)
	gl.BindVertexArray(r.frameVAO)
	gl.GenBuffers(1, &r.frameVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.frameVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(quad), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	gl.DeleteBuffers(1, &r.spriteVBO)
	gl.DeleteVertexArrays(1, &r.spriteVAO)
	gl.DeleteProgram(r.spriteProg)
	gl.DeleteBuffers(1, &r.frameVBO)
	gl.DeleteVertexArrays(1, &r.frameVAO)
	gl.DeleteProgram(r.frameProg)
}

// FillParticleBuffer rebuilds the interleaved sprite buffer from the
// particle store. The buffer is reused between frames.
func (r *Renderer) FillParticleBuffer(particles []Particle) []float32 {
	r.buf = r.buf[:0]
	for i := range particles {
		p := &particles[i]
		r.buf = append(r.buf,
			float32(p.X), float32(p.Y),
			float32(2*ParticleRadius),
			float32(p.Col.R)/255.0,
			float32(p.Col.G)/255.0,
			float32(p.Col.B)/255.0,
			1.0,
		)
	}
	return r.buf
}

// DrawWorldFrame fills the world rectangle with the frame colour so the
// simulated region stands out from the window background.
func (r *Renderer) DrawWorldFrame(cam Camera, fbW, fbH int, worldW, worldH float64) {
	gl.UseProgram(r.frameProg)
	gl.BindVertexArray(r.frameVAO)
	gl.Uniform2f(r.frUWorldSize, float32(worldW), float32(worldH))
	gl.Uniform2f(r.frUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.frUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.frUResolution, float32(fbW), float32(fbH))
	gl.Uniform3f(r.frUColor,
		float32(Palette.WorldFrame.R)/255.0,
		float32(Palette.WorldFrame.G)/255.0,
		float32(Palette.WorldFrame.B)/255.0,
	)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
}

// DrawParticles renders the sprite buffer in one draw call.
// buf format: [x, y, size, r, g, b, a] * N.
func (r *Renderer) DrawParticles(buf []float32, cam Camera, fbW, fbH int) {
	if len(buf) == 0 {
		return
	}
	count := len(buf) / spriteFloats

	gl.UseProgram(r.spriteProg)
	gl.BindVertexArray(r.spriteVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.spriteVBO)

	gl.Uniform2f(r.spUCamera, float32(cam.X), float32(cam.Y))
	gl.Uniform1f(r.spUZoom, float32(cam.Zoom))
	gl.Uniform2f(r.spUResolution, float32(fbW), float32(fbH))

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BufferData(gl.ARRAY_BUFFER, count*spriteFloats*4, gl.Ptr(buf), gl.STREAM_DRAW)
	gl.DrawArrays(gl.POINTS, 0, int32(count))

	gl.Disable(gl.BLEND)
}
