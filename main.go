package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"github.com/creativedev/portfolio/internal/navigation"
	"github.com/creativedev/portfolio/internal/transition"
)

func main() {
	cfg := LoadConfig()
	log := newLogger(cfg, os.Stderr)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	gin.SetMode(cfg.GinMode)

	content, err := loadContent(cfg.ContentPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load content")
	}
	store, err := openStore(cfg.DatabasePath, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	go func() {
		if _, err := store.Cleanup(context.Background()); err != nil {
			log.Error().Err(err).Msg("error cleaning up old visitor data")
		}
	}()

	r, err := newServer(cfg, log, content, store, newSMTPMailer(cfg.SMTP, log))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}

// newServer wires the route table, visitor tracking and handlers into a gin
// engine.
func newServer(cfg Config, log zerolog.Logger, content Content, store *Store, mailer Mailer) (*gin.Engine, error) {
	router, err := navigation.New(navigation.DefaultRoutes(), navigation.WithLogger(log))
	if err != nil {
		return nil, err
	}
	router.OnNavigate(trackingGuard(store, log))

	recipe, ok := transition.Lookup(transition.FadeUp)
	if !ok {
		return nil, fmt.Errorf("no %s transition recipe", transition.FadeUp)
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))
	r.SetHTMLTemplate(tmpl)

	r.Static("/images", cfg.ImagesDir)
	r.Static("/static", cfg.StaticDir)
	r.GET("/transitions.css", transitionsCSS(recipe))

	p := &pages{router: router, content: content, contactReady: cfg.SMTP.Configured(), recipe: recipe, log: log}
	for _, route := range router.Routes() {
		r.GET(route.Path, p.show)
	}
	r.NoRoute(p.show)

	r.GET("/about/experience", p.experience)
	r.GET("/about/education", p.education)

	h := &contact{mailer: mailer, log: log}
	r.GET("/contact-form", h.form)
	r.POST("/contact", h.submit)

	newAdmin(store, cfg.Admin, log).routes(r)
	return r, nil
}
