// admin.go - privacy-conscious page-view tracking and the admin dashboard
package main

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/creativedev/portfolio/internal/navigation"
)

type visitKey struct{}

// visit is the request data a tracking guard needs.
type visit struct {
	IP        string
	UserAgent string
	Path      string
	DNT       bool
}

func withVisit(c *gin.Context) context.Context {
	return context.WithValue(c.Request.Context(), visitKey{}, visit{
		IP:        c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
		Path:      c.Request.URL.Path,
		DNT:       c.GetHeader("DNT") == "1",
	})
}

// trackingGuard records a page view for every navigation made on behalf of
// a request, unless the visitor sent Do Not Track. It never blocks the
// navigation; storage errors are only logged.
func trackingGuard(store *Store, log zerolog.Logger) navigation.Guard {
	return func(ctx context.Context, to navigation.Route, _ *navigation.Route) navigation.Decision {
		v, ok := ctx.Value(visitKey{}).(visit)
		if !ok || v.DNT {
			return navigation.Proceed()
		}
		if err := store.RecordVisit(ctx, v.IP, v.UserAgent, v.Path, to.Name, time.Now()); err != nil {
			log.Error().Err(err).Str("route", to.Name).Msg("error recording visitor")
		}
		return navigation.Proceed()
	}
}

type admin struct {
	store *Store
	cfg   AdminConfig
	token string
	log   zerolog.Logger
}

func newAdmin(store *Store, cfg AdminConfig, log zerolog.Logger) *admin {
	a := &admin{store: store, cfg: cfg, token: randomToken(), log: log}

	log.Info().Msg("admin access available at /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Debug().Str("token", a.token).Msg("admin token (dev only)")
		if cfg.Username == "admin" || cfg.Password == "admin123" {
			log.Warn().Msg("using default admin credentials; set ADMIN_USERNAME and ADMIN_PASSWORD")
		}
	}
	return a
}

func (a *admin) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("admin_token")
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *admin) checkCredentials(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.cfg.Username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.cfg.Password))
	return u&p == 1
}

func (a *admin) routes(r *gin.Engine) {
	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy", gin.H{"title": navigation.Title("Privacy Policy")})
	})

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login", gin.H{"title": "Admin Login"})
	})

	r.POST("/admin/login", func(c *gin.Context) {
		if !a.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			a.log.Warn().Str("visitor", a.store.hashIP(c.ClientIP())).Msg("failed admin login attempt")
			c.HTML(http.StatusUnauthorized, "admin-login", gin.H{
				"title": "Admin Login",
				"error": "Invalid credentials",
			})
			return
		}
		c.SetCookie("admin_token", a.token, 3600*24, "/admin", "", secureCookies(), true)
		a.log.Info().Str("visitor", a.store.hashIP(c.ClientIP())).Msg("admin login successful")
		c.Redirect(http.StatusFound, "/admin/dashboard")
	})

	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie("admin_token", "", -1, "/admin", "", secureCookies(), true)
		c.Redirect(http.StatusFound, "/admin/login")
	})

	g := r.Group("/admin")
	g.Use(a.authMiddleware())

	g.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			a.log.Error().Err(err).Msg("error loading admin stats")
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load statistics"})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard", gin.H{"title": "Dashboard", "stats": stats})
	})

	g.GET("/visitors", func(c *gin.Context) {
		visitors, err := a.store.RecentVisitors(c.Request.Context(), 200)
		if err != nil {
			a.log.Error().Err(err).Msg("error loading visitors")
			c.HTML(http.StatusInternalServerError, "admin-error", gin.H{"error": "Failed to load visitors"})
			return
		}
		c.HTML(http.StatusOK, "admin-visitors", gin.H{"title": "Visitors", "visitors": visitors})
	})

	g.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	g.POST("/privacy/cleanup", func(c *gin.Context) {
		n, err := a.store.Cleanup(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": n})
	})

	g.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.store.Stats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
		a.log.Info().Str("visitor", a.store.hashIP(c.ClientIP())).Msg("admin stats exported")
		c.JSON(http.StatusOK, stats)
	})
}

// secureCookies marks the admin cookie Secure outside development.
func secureCookies() bool {
	return gin.Mode() == gin.ReleaseMode
}

// isAssetPath reports paths that are never tracked nor logged at info.
func isAssetPath(path string) bool {
	for _, prefix := range []string{"/static/", "/images/", "/favicon", "/transitions.css"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
