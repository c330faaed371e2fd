package transition

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Kind identifies a transition recipe. Routes are tagged with one.
type Kind string

// FadeUp fades the page in while it rises, and out while it keeps rising.
const FadeUp Kind = "fade-up"

// Style is the pair of animated properties: opacity and vertical offset.
type Style struct {
	Opacity float64
	Y       float64
}

// Easing is a named easing curve. CSS holds the equivalent timing function
// for browsers; At evaluates the curve for progress p in [0, 1].
type Easing struct {
	Name string
	CSS  string
	fn   func(p float64) float64
}

// At returns the eased progress for p, clamped to [0, 1].
func (e Easing) At(p float64) float64 {
	p = math.Max(0, math.Min(1, p))
	if e.fn == nil {
		return p
	}
	return e.fn(p)
}

var (
	// Power3Out decelerates toward the end.
	Power3Out = Easing{
		Name: "power3.out",
		CSS:  "cubic-bezier(0.215, 0.61, 0.355, 1)",
		fn:   func(p float64) float64 { return 1 - math.Pow(1-p, 3) },
	}
	// Power3In accelerates from the start.
	Power3In = Easing{
		Name: "power3.in",
		CSS:  "cubic-bezier(0.55, 0.055, 0.675, 0.19)",
		fn:   func(p float64) float64 { return p * p * p },
	}
)

// Tween is a single animation from one Style to another.
type Tween struct {
	From     Style
	To       Style
	Duration time.Duration
	Ease     Easing
}

// At interpolates the tween at progress p.
func (t Tween) At(p float64) Style {
	e := t.Ease.At(p)
	return Style{
		Opacity: t.From.Opacity + (t.To.Opacity-t.From.Opacity)*e,
		Y:       t.From.Y + (t.To.Y-t.From.Y)*e,
	}
}

// Recipe is the enter/leave pair for a Kind.
type Recipe struct {
	Kind Kind
	In   Tween
	Out  Tween
}

var recipes = map[Kind]Recipe{
	FadeUp: {
		Kind: FadeUp,
		In: Tween{
			From:     Style{Opacity: 0, Y: 50},
			To:       Style{Opacity: 1, Y: 0},
			Duration: 600 * time.Millisecond,
			Ease:     Power3Out,
		},
		Out: Tween{
			From:     Style{Opacity: 1, Y: 0},
			To:       Style{Opacity: 0, Y: -50},
			Duration: 400 * time.Millisecond,
			Ease:     Power3In,
		},
	},
}

// Lookup returns the recipe registered for kind.
func Lookup(kind Kind) (Recipe, bool) {
	r, ok := recipes[kind]
	return r, ok
}

// CSS renders the recipe as keyframes plus enter/leave classes named after
// the kind, e.g. .fade-up-enter and .fade-up-leave.
func (r Recipe) CSS() string {
	var b strings.Builder
	writeTween(&b, string(r.Kind)+"-enter", r.In)
	writeTween(&b, string(r.Kind)+"-leave", r.Out)
	return b.String()
}

func writeTween(b *strings.Builder, name string, t Tween) {
	fmt.Fprintf(b, "@keyframes %s {\n", name)
	fmt.Fprintf(b, "  from { opacity: %s; transform: translateY(%spx); }\n", num(t.From.Opacity), num(t.From.Y))
	fmt.Fprintf(b, "  to { opacity: %s; transform: translateY(%spx); }\n", num(t.To.Opacity), num(t.To.Y))
	b.WriteString("}\n")
	fmt.Fprintf(b, ".%s {\n  animation: %s %sms %s both;\n}\n",
		name, name, num(float64(t.Duration.Milliseconds())), t.Ease.CSS)
}

func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.3f", f), "0"), ".")
}
