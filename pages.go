package main

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/creativedev/portfolio/internal/navigation"
	"github.com/creativedev/portfolio/internal/transition"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Headers the page script sends on in-page navigation. HX-Current-URL is
// set by htmx itself.
const (
	headerHash    = "X-Nav-Hash"
	headerRestore = "X-Scroll-Restore"
	scrollEvent   = "portfolio:scroll"
)

// loadTemplates parses the embedded views. The "view" func renders a named
// template so the layout can embed whichever page a route names.
func loadTemplates() (*template.Template, error) {
	var tmpl *template.Template
	tmpl = template.New("").Funcs(template.FuncMap{
		"view": func(name string, data any) (template.HTML, error) {
			var buf bytes.Buffer
			if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return template.HTML(buf.String()), nil
		},
		"join": strings.Join,
	})
	return tmpl.ParseFS(templatesFS, "templates/*.html")
}

// pageDocument collects a navigation's side effects for the response.
type pageDocument struct {
	title  string
	scroll navigation.ScrollTarget
}

func (d *pageDocument) SetTitle(title string)                   { d.title = title }
func (d *pageDocument) ScrollTo(target navigation.ScrollTarget) { d.scroll = target }

type pageData struct {
	Title        string
	View         string
	Route        navigation.Route
	Routes       []navigation.Route
	Content      Content
	Scroll       navigation.ScrollTarget
	ContactReady bool
	Year         int
	// LeaveMS delays htmx swaps until the leave animation has played.
	LeaveMS int64
}

type pages struct {
	router       *navigation.Router
	content      Content
	contactReady bool
	recipe       transition.Recipe
	log          zerolog.Logger
}

// show navigates to the request path and renders the resulting page.
func (p *pages) show(c *gin.Context) {
	req := navigation.Request{
		Path:  c.Request.URL.Path,
		Hash:  c.GetHeader(headerHash),
		From:  p.previous(c),
		Saved: parsePosition(c.GetHeader(headerRestore)),
	}
	doc := &pageDocument{}
	ev, err := p.router.Navigate(withVisit(c), doc, req)
	if errors.Is(err, navigation.ErrNotFound) {
		p.notFound(c)
		return
	}
	if err != nil {
		p.log.Error().Err(err).Str("path", req.Path).Msg("navigation failed")
		_ = c.Error(err)
		p.render(c, http.StatusInternalServerError, "error", navigation.Route{Transition: transition.FadeUp}, &pageDocument{
			title:  navigation.Title("Error"),
			scroll: navigation.ScrollFor(nil, ""),
		})
		return
	}
	p.render(c, http.StatusOK, ev.To.View, ev.To, doc)
}

func (p *pages) notFound(c *gin.Context) {
	p.render(c, http.StatusNotFound, "not-found", navigation.Route{Transition: transition.FadeUp}, &pageDocument{
		title:  navigation.Title("Not Found"),
		scroll: navigation.ScrollFor(nil, ""),
	})
}

// render writes the whole layout, or only the page fragment for htmx
// requests. The scroll target travels in HX-Trigger for the page script.
func (p *pages) render(c *gin.Context, status int, view string, route navigation.Route, doc *pageDocument) {
	data := pageData{
		Title:        doc.title,
		View:         view,
		Route:        route,
		Routes:       p.router.Routes(),
		Content:      p.content,
		Scroll:       doc.scroll,
		ContactReady: p.contactReady,
		Year:         time.Now().Year(),
		LeaveMS:      p.recipe.Out.Duration.Milliseconds(),
	}
	if trigger, err := json.Marshal(map[string]navigation.ScrollTarget{scrollEvent: doc.scroll}); err == nil {
		c.Header("HX-Trigger", string(trigger))
	}
	if isHTMX(c) {
		c.HTML(status, "fragment", data)
		return
	}
	c.HTML(status, "layout", data)
}

// previous resolves the page htmx reports the visitor is leaving.
func (p *pages) previous(c *gin.Context) *navigation.Route {
	raw := c.GetHeader("HX-Current-URL")
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	route, err := p.router.Resolve(u.Path)
	if err != nil {
		return nil
	}
	return &route
}

// parsePosition reads "x,y". Anything else means no saved position.
func parsePosition(s string) *navigation.Position {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return nil
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return nil
	}
	return &navigation.Position{X: x, Y: y}
}

func isHTMX(c *gin.Context) bool {
	return c.GetHeader("HX-Request") == "true"
}

func (p *pages) experience(c *gin.Context) {
	c.HTML(http.StatusOK, "entries", gin.H{"heading": "Experience", "entries": p.content.Experience})
}

func (p *pages) education(c *gin.Context) {
	c.HTML(http.StatusOK, "entries", gin.H{"heading": "Education", "entries": p.content.Education})
}

func transitionsCSS(recipe transition.Recipe) gin.HandlerFunc {
	css := []byte(recipe.CSS())
	return func(c *gin.Context) {
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "text/css; charset=utf-8", css)
	}
}
