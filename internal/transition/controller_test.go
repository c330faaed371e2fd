package transition

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingElement struct {
	mu     sync.Mutex
	styles []Style
}

func (e *recordingElement) Apply(s Style) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.styles = append(e.styles, s)
}

func (e *recordingElement) last() Style {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.styles[len(e.styles)-1]
}

// manualEngine holds completions until the test fires them.
type manualEngine struct {
	tweens []Tween
	done   []func()
}

func (m *manualEngine) Animate(el Element, tw Tween, onComplete func()) {
	m.tweens = append(m.tweens, tw)
	m.done = append(m.done, func() {
		el.Apply(tw.To)
		onComplete()
	})
}

func (m *manualEngine) finish(i int) { m.done[i]() }

func TestTransitionIn(t *testing.T) {
	eng := &manualEngine{}
	c := NewController(eng)
	el := &recordingElement{}

	require.False(t, c.IsTransitioning())
	f, err := c.TransitionIn(el)
	require.NoError(t, err)

	assert.True(t, c.IsTransitioning())
	assert.Equal(t, AnimatingIn, c.State())
	assert.False(t, f.Settled())
	assert.Equal(t, Style{Opacity: 0, Y: 50}, el.last())

	tw := eng.tweens[0]
	assert.Equal(t, 600*time.Millisecond, tw.Duration)
	assert.Equal(t, Power3Out.Name, tw.Ease.Name)

	eng.finish(0)
	assert.True(t, f.Settled())
	assert.False(t, c.IsTransitioning())
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, Style{Opacity: 1, Y: 0}, el.last())
}

// TransitionOut clears the busy flag on completion, same as TransitionIn.
func TestTransitionOutClearsFlag(t *testing.T) {
	eng := &manualEngine{}
	c := NewController(eng)
	el := &recordingElement{}

	f, err := c.TransitionOut(el)
	require.NoError(t, err)
	assert.True(t, c.IsTransitioning())
	assert.Equal(t, AnimatingOut, c.State())

	tw := eng.tweens[0]
	assert.Equal(t, 400*time.Millisecond, tw.Duration)
	assert.Equal(t, Power3In.Name, tw.Ease.Name)

	eng.finish(0)
	assert.True(t, f.Settled())
	assert.False(t, c.IsTransitioning())
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, Style{Opacity: 0, Y: -50}, el.last())
}

func TestRejectsOverlappingTransitions(t *testing.T) {
	eng := &manualEngine{}
	c := NewController(eng)

	_, err := c.TransitionOut(&recordingElement{})
	require.NoError(t, err)

	_, err = c.TransitionIn(&recordingElement{})
	assert.ErrorIs(t, err, ErrBusy)
	assert.Len(t, eng.tweens, 1)

	eng.finish(0)
	_, err = c.TransitionIn(&recordingElement{})
	assert.NoError(t, err)
}

func TestNilElement(t *testing.T) {
	c := NewController(&manualEngine{})
	_, err := c.TransitionIn(nil)
	assert.ErrorIs(t, err, ErrNilElement)
	assert.False(t, c.IsTransitioning())
}

func TestDuplicateCompletionIgnored(t *testing.T) {
	eng := &manualEngine{}
	c := NewController(eng)

	first, err := c.TransitionIn(&recordingElement{})
	require.NoError(t, err)
	eng.finish(0)

	second, err := c.TransitionOut(&recordingElement{})
	require.NoError(t, err)

	// A stray second callback from the first animation must not end the
	// second one early.
	eng.finish(0)
	assert.True(t, first.Settled())
	assert.False(t, second.Settled())
	assert.True(t, c.IsTransitioning())
}

func TestFutureWaitHonoursContext(t *testing.T) {
	f := newFuture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, f.Wait(ctx), context.Canceled)

	assert.True(t, f.settle())
	assert.False(t, f.settle())
	assert.NoError(t, f.Wait(context.Background()))
}

func TestSwapWithTickerEngine(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewController(TickerEngine{Frame: time.Millisecond, Speed: 20})
	out, in := &recordingElement{}, &recordingElement{}

	mounted := false
	err := c.Swap(context.Background(), out, in, func() error {
		mounted = true
		assert.Equal(t, Style{Opacity: 0, Y: -50}, out.last())
		assert.Empty(t, in.styles)
		return nil
	})
	require.NoError(t, err)

	assert.True(t, mounted)
	assert.Equal(t, Style{Opacity: 1, Y: 0}, in.last())
	assert.False(t, c.IsTransitioning())
	assert.Equal(t, Idle, c.State())
}

func TestSwapFirstRender(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewController(TickerEngine{Speed: 100})
	in := &recordingElement{}
	require.NoError(t, c.Swap(context.Background(), nil, in, nil))
	assert.Equal(t, Style{Opacity: 1, Y: 0}, in.last())
}
