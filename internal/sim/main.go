package sim

import (
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// RunDesktop opens a window and runs the sandbox until Esc or close.
// Space toggles the particle stream, P pauses the simulation. An optional
// settings file path may be given as the first argument.
func RunDesktop() {
	runtime.LockOSThread()

	settings := DefaultSettings()
	if len(os.Args) > 1 {
		var err error
		settings, err = LoadSettings(os.Args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	window, err := initWindow()
	if err != nil {
		panic(err)
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		panic(fmt.Errorf("gl init: %w", err))
	}

	if err := InitAudio(); err != nil {
		fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
	}

	cfg := settings.Simulation
	threads := cfg.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}
	if threads > cfg.WorldWidth/2 {
		threads = cfg.WorldWidth / 2
	}

	pool := NewPool(threads)
	defer pool.Stop()

	solver := NewSolver(int32(cfg.WorldWidth), int32(cfg.WorldHeight), pool)
	solver.SubSteps = cfg.SubSteps
	emitter := NewEmitter(cfg.MaxParticles, cfg.EmitRows)

	rend, err := NewRenderer()
	if err != nil {
		panic(fmt.Errorf("renderer: %w", err))
	}
	defer rend.Destroy()

	// GL state.
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(
		float32(Palette.Background.R)/255.0,
		float32(Palette.Background.G)/255.0,
		float32(Palette.Background.B)/255.0,
		1.0,
	)

	input := NewInput()
	paused := false

	fbW, fbH := window.GetFramebufferSize()
	cam := FitCamera(solver.WorldW, solver.WorldH, fbH)

	frames := 0
	lastTitle := glfw.GetTime()

	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if input.JustPressed(window, glfw.KeySpace) {
			emitter.Enabled = !emitter.Enabled
			if emitter.Enabled {
				PlaySound(SoundEmitOn)
			} else {
				PlaySound(SoundEmitOff)
			}
		}
		if input.JustPressed(window, glfw.KeyP) {
			paused = !paused
			PlaySound(SoundPause)
		}

		if !paused {
			emitter.Emit(solver)
			solver.Update(FrameDT)
		}

		fbW, fbH = window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}
		gl.Viewport(0, 0, int32(fbW), int32(fbH))
		gl.Clear(gl.COLOR_BUFFER_BIT)

		rend.DrawWorldFrame(cam, fbW, fbH, solver.WorldW, solver.WorldH)
		buf := rend.FillParticleBuffer(solver.Particles)
		rend.DrawParticles(buf, cam, fbW, fbH)

		window.SwapBuffers()

		frames++
		if now := glfw.GetTime(); now-lastTitle >= 1.0 {
			window.SetTitle(fmt.Sprintf("Verlet Sandbox — %d particles, %d workers, %d fps",
				solver.Count(), threads, frames))
			frames = 0
			lastTitle = now
		}
	}
}
