// Package transition animates page roots in and out around navigation and
// reports completion through a Future.
//
// The package does not interpolate frames itself unless asked to: callers
// supply an Engine. TickerEngine is a goroutine based Engine for callers that
// have no animation engine of their own.
package transition

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

var (
	// ErrBusy is returned when a transition is started while another one
	// on the same controller is still in flight.
	ErrBusy = errors.New("transition: already transitioning")
	// ErrNilElement is returned when the target element is missing.
	ErrNilElement = errors.New("transition: nil element")
)

// Element is an animation target, typically a page's root element.
type Element interface {
	Apply(Style)
}

// Engine runs a tween on an element and calls onComplete once it has
// finished. Engines are external to the controller.
type Engine interface {
	Animate(el Element, tw Tween, onComplete func())
}

// State is the controller's animation state.
type State int32

const (
	Idle State = iota
	AnimatingIn
	AnimatingOut
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AnimatingIn:
		return "animating-in"
	case AnimatingOut:
		return "animating-out"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Controller serializes enter and leave animations for one view. The zero
// value is not usable; call NewController.
type Controller struct {
	engine Engine
	recipe Recipe
	log    zerolog.Logger

	busy  *atomic.Bool
	state *atomic.Int32
}

// Option configures a Controller.
type Option func(*Controller)

// WithRecipe replaces the default FadeUp recipe.
func WithRecipe(r Recipe) Option {
	return func(c *Controller) { c.recipe = r }
}

// WithLogger sets the controller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// NewController returns an idle controller driving engine.
func NewController(engine Engine, opts ...Option) *Controller {
	fadeUp, _ := Lookup(FadeUp)
	c := &Controller{
		engine: engine,
		recipe: fadeUp,
		log:    zerolog.Nop(),
		busy:   atomic.NewBool(false),
		state:  atomic.NewInt32(int32(Idle)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Recipe returns the recipe the controller plays.
func (c *Controller) Recipe() Recipe {
	return c.recipe
}

// IsTransitioning reports whether an animation is in flight.
func (c *Controller) IsTransitioning() bool {
	return c.busy.Load()
}

// State returns the current animation state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// TransitionIn plays the enter tween on el. The future settles once the
// element is fully visible, after the controller has gone back to Idle.
func (c *Controller) TransitionIn(el Element) (*Future, error) {
	return c.start(el, AnimatingIn, c.recipe.In)
}

// TransitionOut plays the leave tween on el. The controller returns to Idle
// when the leave animation completes, before the future settles.
func (c *Controller) TransitionOut(el Element) (*Future, error) {
	return c.start(el, AnimatingOut, c.recipe.Out)
}

func (c *Controller) start(el Element, s State, tw Tween) (*Future, error) {
	if el == nil {
		return nil, ErrNilElement
	}
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	c.state.Store(int32(s))
	c.log.Debug().Str("state", s.String()).Dur("duration", tw.Duration).Str("ease", tw.Ease.Name).Msg("transition started")

	f := newFuture()
	var once sync.Once
	el.Apply(tw.From)
	c.engine.Animate(el, tw, func() {
		once.Do(func() {
			c.state.Store(int32(Idle))
			c.busy.Store(false)
			c.log.Debug().Str("state", s.String()).Msg("transition completed")
			f.settle()
		})
	})
	return f, nil
}

// Swap performs the leave, mount, enter sequence of a page change: it plays
// the leave animation on out, waits for it, calls mount, then plays the
// enter animation on in and waits for that too. A nil out skips the leave
// step, which is the case on first render.
func (c *Controller) Swap(ctx context.Context, out, in Element, mount func() error) error {
	if out != nil {
		f, err := c.TransitionOut(out)
		if err != nil {
			return fmt.Errorf("leave: %w", err)
		}
		if err := f.Wait(ctx); err != nil {
			return fmt.Errorf("leave: %w", err)
		}
	}
	if mount != nil {
		if err := mount(); err != nil {
			return fmt.Errorf("mount: %w", err)
		}
	}
	f, err := c.TransitionIn(in)
	if err != nil {
		return fmt.Errorf("enter: %w", err)
	}
	if err := f.Wait(ctx); err != nil {
		return fmt.Errorf("enter: %w", err)
	}
	return nil
}
