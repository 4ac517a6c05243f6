// Package engine runs a depth-of-field capture against a simulated host: a
// render loop calling the controller hooks around an effect pass, and a
// control script issuing the operator's commands.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/dofcapture/internal/dof"
	"github.com/ivlev/dofcapture/internal/effects"
	"github.com/ivlev/dofcapture/internal/logging"
	"github.com/ivlev/dofcapture/internal/renderer"
)

// ErrFrameLimit is returned when a capture does not finish within
// Options.MaxFrames frames.
var ErrFrameLimit = errors.New("frame limit reached")

// ErrSessionNotStarted is returned when the controller refused to start.
var ErrSessionNotStarted = errors.New("depth-of-field session not started")

// Options controls a capture run.
type Options struct {
	// FPS paces the render loop. Zero runs frames back to back.
	FPS int
	// MaxFrames aborts the run when exceeded. Zero means 100000.
	MaxFrames int
	// ReloadEffects reloads the host effects once Setup is reached, which
	// makes the controller migrate its shader state.
	ReloadEffects bool
	// OverlaySize is the edge of the shape preview redrawn every frame in
	// Setup. Zero disables the overlay.
	OverlaySize int
	// Setup runs on the render goroutine once the session is in Setup,
	// before rendering starts.
	Setup func(c *dof.Controller, rt effects.Runtime)
}

// Status is published by the render loop after every frame.
type Status struct {
	Frame        int
	State        dof.SessionState
	CurrentFrame int
	Total        int
}

// Report summarises a finished capture.
type Report struct {
	Frames      int
	Steps       int
	Blends      int
	Moves       int
	Previews    int
	Progress    string
	Accumulated [2]float64
	Duration    time.Duration
}

// CaptureProject owns the simulated host around a controller.
type CaptureProject struct {
	Controller *dof.Controller
	Runtime    *effects.MemoryRuntime
	Camera     *SimCamera
	Options    Options

	commands chan command
	statuses chan Status

	frame       int
	blends      int
	previews    int
	progress    string
	baseline    [2]float64
	accumulated [2]float64
}

type command struct {
	run   func()
	reply chan int
}

// NewCaptureProject wires a controller driving cam to rt.
func NewCaptureProject(ctrl *dof.Controller, rt *effects.MemoryRuntime, cam *SimCamera, opts Options) *CaptureProject {
	if opts.MaxFrames <= 0 {
		opts.MaxFrames = 100000
	}
	return &CaptureProject{
		Controller: ctrl,
		Runtime:    rt,
		Camera:     cam,
		Options:    opts,
		commands:   make(chan command),
		statuses:   make(chan Status, 1),
	}
}

// Run performs one capture: start a session, wait for Setup, render every
// step and end the session.
func (p *CaptureProject) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	log := logging.Logger()

	g, gctx := errgroup.WithContext(ctx)
	stop := make(chan struct{})

	g.Go(func() error {
		return p.renderLoop(gctx, stop)
	})
	g.Go(func() error {
		defer close(stop)
		return p.script(gctx)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Frames:      p.frame,
		Steps:       p.Controller.FramesToRender(),
		Blends:      p.blends,
		Moves:       p.Camera.Moves(),
		Previews:    p.previews,
		Progress:    p.progress,
		Accumulated: p.accumulated,
		Duration:    time.Since(start),
	}
	log.Info("capture finished",
		"frames", report.Frames,
		"steps", report.Steps,
		"blends", report.Blends,
		"duration", report.Duration)
	return report, nil
}

func (p *CaptureProject) script(ctx context.Context) error {
	c, rt := p.Controller, p.Runtime

	var started bool
	at, err := p.do(ctx, func() {
		c.StartSession(rt)
		started = c.State() != dof.SessionOff
	})
	if err != nil {
		return err
	}
	if !started {
		return ErrSessionNotStarted
	}
	if err := p.waitFor(ctx, dof.SessionSetup, at); err != nil {
		return err
	}

	if p.Options.ReloadEffects {
		at, err = p.do(ctx, func() {
			rt.Reload()
			c.MigrateState(rt)
		})
		if err != nil {
			return err
		}
		if err := p.waitFor(ctx, dof.SessionSetup, at); err != nil {
			return err
		}
	}

	if p.Options.Setup != nil {
		if _, err := p.do(ctx, func() { p.Options.Setup(c, rt) }); err != nil {
			return err
		}
	}

	at, err = p.do(ctx, func() { c.StartRender(rt) })
	if err != nil {
		return err
	}
	if err := p.waitFor(ctx, dof.SessionDone, at); err != nil {
		return err
	}

	_, err = p.do(ctx, func() { c.EndSession(rt) })
	return err
}

// do queues fn on the render goroutine and returns the frame number it ran
// before.
func (p *CaptureProject) do(ctx context.Context, fn func()) (int, error) {
	cmd := command{run: fn, reply: make(chan int, 1)}
	select {
	case p.commands <- cmd:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case at := <-cmd.reply:
		return at, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// waitFor blocks until a frame after frame `after` reports state.
func (p *CaptureProject) waitFor(ctx context.Context, state dof.SessionState, after int) error {
	for {
		select {
		case s := <-p.statuses:
			if s.Frame > after && s.State == state {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *CaptureProject) renderLoop(ctx context.Context, stop <-chan struct{}) error {
	var tick <-chan time.Time
	if p.Options.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(p.Options.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stop:
			return nil
		default:
		}

		p.drainCommands()

		if p.frame >= p.Options.MaxFrames {
			return fmt.Errorf("capture after %d frames: %w", p.frame, ErrFrameLimit)
		}
		p.presentFrame()
		p.publish()

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-stop:
				return nil
			case <-tick:
			}
		}
	}
}

func (p *CaptureProject) drainCommands() {
	for {
		select {
		case cmd := <-p.commands:
			cmd.run()
			cmd.reply <- p.frame
		default:
			return
		}
	}
}

func (p *CaptureProject) presentFrame() {
	p.frame++
	p.Controller.BeforeEffects(p.Runtime)
	p.effectPass()
	p.Controller.AfterEffects(p.Runtime)
	p.drawOverlay()
}

func (p *CaptureProject) drawOverlay() {
	c := p.Controller
	if c.ShowProgressOverlay() {
		p.progress = c.ProgressLabel()
	}
	if p.Options.OverlaySize > 0 && c.State() == dof.SessionSetup {
		renderer.ReleaseCanvas(c.Preview(p.Options.OverlaySize))
		p.previews++
	}
}

// effectPass stands in for the shader: it reads the uniforms the controller
// wrote and accumulates the camera position the way the shader accumulates
// frames.
func (p *CaptureProject) effectPass() {
	state, ok := p.Runtime.Int(effects.EffectName, effects.VarSessionState)
	if !ok {
		return
	}
	pos := p.Camera.Position()
	current := [2]float64{pos[0], pos[1]}

	switch dof.SessionState(state) {
	case dof.SessionStart:
		p.baseline = current
		p.accumulated = current
	case dof.SessionRendering:
		blend, _ := p.Runtime.Bool(effects.EffectName, effects.VarBlendFrame)
		if !blend {
			return
		}
		factor, ok := p.Runtime.Float(effects.EffectName, effects.VarBlendFactor)
		if !ok || len(factor) == 0 {
			return
		}
		f := float64(factor[0])
		p.accumulated[0] = p.accumulated[0]*(1-f) + current[0]*f
		p.accumulated[1] = p.accumulated[1]*(1-f) + current[1]*f
		p.blends++
	}
}

func (p *CaptureProject) publish() {
	s := Status{
		Frame:        p.frame,
		State:        p.Controller.State(),
		CurrentFrame: p.Controller.CurrentFrame(),
		Total:        p.Controller.FramesToRender(),
	}
	// Keep only the latest status; the render loop is the only sender.
	select {
	case <-p.statuses:
	default:
	}
	p.statuses <- s
}
