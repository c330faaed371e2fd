// Package navigation maps request paths to the site's pages and applies the
// side effects of a page change: the document title and the scroll target.
//
// The route table is fixed when the Router is built. Guards registered with
// OnNavigate return a Decision instead of calling a continuation, so a guard
// can never leave a navigation hanging.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/creativedev/portfolio/internal/transition"
)

// TitleSuffix follows the route name in every document title.
const TitleSuffix = "Creative Developer Portfolio"

// MaxRedirects bounds guard redirects within a single navigation.
const MaxRedirects = 8

// Route is a registered page. View names the template that renders it.
type Route struct {
	Path       string
	Name       string
	View       string
	Transition transition.Kind
}

// DefaultRoutes returns the site's page table.
func DefaultRoutes() []Route {
	return []Route{
		{Path: "/", Name: "Home", View: "home", Transition: transition.FadeUp},
		{Path: "/about", Name: "About", View: "about", Transition: transition.FadeUp},
		{Path: "/projects", Name: "Projects", View: "projects", Transition: transition.FadeUp},
		{Path: "/skills", Name: "Skills", View: "skills", Transition: transition.FadeUp},
		{Path: "/contact", Name: "Contact", View: "contact", Transition: transition.FadeUp},
	}
}

// Title formats the document title for a route name. Names are trusted and
// not escaped.
func Title(name string) string {
	return name + " | " + TitleSuffix
}

// Document receives the side effects of a navigation.
type Document interface {
	SetTitle(title string)
	ScrollTo(target ScrollTarget)
}

// Request describes a navigation. From is the page being left, nil on first
// load. Saved is the scroll position remembered for history navigation.
type Request struct {
	Path  string
	Hash  string
	From  *Route
	Saved *Position
}

// Event is the outcome of a successful navigation.
type Event struct {
	From   *Route
	To     Route
	Hash   string
	Saved  *Position
	Title  string
	Scroll ScrollTarget
}

type decisionKind int

const (
	proceed decisionKind = iota
	redirect
	abort
)

// Decision is a guard's verdict on a navigation.
type Decision struct {
	kind   decisionKind
	target string
	err    error
}

// Proceed lets the navigation continue.
func Proceed() Decision { return Decision{kind: proceed} }

// RedirectTo sends the navigation to the route with the given name instead.
func RedirectTo(name string) Decision { return Decision{kind: redirect, target: name} }

// Abort stops the navigation with err.
func Abort(err error) Decision { return Decision{kind: abort, err: err} }

// Guard is consulted after every successful resolution.
type Guard func(ctx context.Context, to Route, from *Route) Decision

// Router resolves paths to routes. It is safe for concurrent use once
// guards have been registered.
type Router struct {
	routes []Route
	byPath map[string]Route
	byName map[string]Route
	guards []Guard
	log    zerolog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the router's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Router) { r.log = l }
}

// New builds a router over routes. Paths and names must be unique.
func New(routes []Route, opts ...Option) (*Router, error) {
	if len(routes) == 0 {
		return nil, errors.New("navigation: no routes")
	}
	r := &Router{
		byPath: make(map[string]Route, len(routes)),
		byName: make(map[string]Route, len(routes)),
		log:    zerolog.Nop(),
	}
	for _, rt := range routes {
		if !strings.HasPrefix(rt.Path, "/") {
			return nil, fmt.Errorf("navigation: route %q: path %q must start with /", rt.Name, rt.Path)
		}
		if rt.Name == "" {
			return nil, fmt.Errorf("navigation: route %q has no name", rt.Path)
		}
		if _, dup := r.byPath[rt.Path]; dup {
			return nil, fmt.Errorf("navigation: duplicate path %q", rt.Path)
		}
		if _, dup := r.byName[rt.Name]; dup {
			return nil, fmt.Errorf("navigation: duplicate name %q", rt.Name)
		}
		r.byPath[rt.Path] = rt
		r.byName[rt.Name] = rt
		r.routes = append(r.routes, rt)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Routes returns the route table in registration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.routes))
	copy(out, r.routes)
	return out
}

// Lookup finds a route by name.
func (r *Router) Lookup(name string) (Route, bool) {
	rt, ok := r.byName[name]
	return rt, ok
}

// Resolve returns the route registered for exactly path. A fragment on path
// is ignored.
func (r *Router) Resolve(path string) (Route, error) {
	if i := strings.IndexByte(path, '#'); i >= 0 {
		path = path[:i]
	}
	rt, ok := r.byPath[path]
	if !ok {
		return Route{}, &NotFoundError{Path: path}
	}
	return rt, nil
}

// OnNavigate registers a guard. Guards run in registration order; the first
// one that does not proceed decides the navigation.
func (r *Router) OnNavigate(g Guard) {
	r.guards = append(r.guards, g)
}

// Navigate resolves req, runs the guards, then sets the title and scroll
// target on doc. doc may be nil when only the Event is wanted.
func (r *Router) Navigate(ctx context.Context, doc Document, req Request) (*Event, error) {
	to, err := r.Resolve(req.Path)
	if err != nil {
		return nil, err
	}

	hops := 0
guards:
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, g := range r.guards {
			d := g(ctx, to, req.From)
			switch d.kind {
			case proceed:
				continue
			case abort:
				if d.err == nil {
					return nil, fmt.Errorf("%w: %s", ErrAborted, to.Name)
				}
				return nil, fmt.Errorf("%w: %s: %w", ErrAborted, to.Name, d.err)
			case redirect:
				hops++
				if hops > MaxRedirects {
					return nil, fmt.Errorf("%w: last target %q", ErrRedirectLoop, d.target)
				}
				next, ok := r.byName[d.target]
				if !ok {
					return nil, fmt.Errorf("redirect to unknown route %q: %w", d.target, ErrNotFound)
				}
				r.log.Debug().Str("from", to.Name).Str("to", next.Name).Msg("navigation redirected")
				to = next
				continue guards
			}
		}
		break
	}

	ev := &Event{
		From:   req.From,
		To:     to,
		Hash:   req.Hash,
		Saved:  req.Saved,
		Title:  Title(to.Name),
		Scroll: ScrollFor(req.Saved, req.Hash),
	}
	if doc != nil {
		doc.SetTitle(ev.Title)
		doc.ScrollTo(ev.Scroll)
	}
	r.log.Debug().Str("path", to.Path).Str("route", to.Name).Str("scroll", string(ev.Scroll.Kind)).Msg("navigated")
	return ev, nil
}
