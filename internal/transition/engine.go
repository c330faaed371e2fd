package transition

import (
	"time"
)

// DefaultFrame is the frame interval TickerEngine uses when Frame is zero.
const DefaultFrame = time.Second / 60

// TickerEngine interpolates tweens on a ticker, one goroutine per animation.
// Speed scales playback; values <= 0 mean real time.
type TickerEngine struct {
	Frame time.Duration
	Speed float64
}

// Animate implements Engine. The final style is always applied exactly
// before onComplete runs.
func (e TickerEngine) Animate(el Element, tw Tween, onComplete func()) {
	frame := e.Frame
	if frame <= 0 {
		frame = DefaultFrame
	}
	total := tw.Duration
	if e.Speed > 0 {
		total = time.Duration(float64(total) / e.Speed)
	}

	go func() {
		if total <= 0 {
			el.Apply(tw.To)
			onComplete()
			return
		}
		ticker := time.NewTicker(frame)
		defer ticker.Stop()

		start := time.Now()
		for now := range ticker.C {
			p := float64(now.Sub(start)) / float64(total)
			if p >= 1 {
				break
			}
			el.Apply(tw.At(p))
		}
		el.Apply(tw.To)
		onComplete()
	}()
}
