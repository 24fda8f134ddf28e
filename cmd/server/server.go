package main

import (
	"time"

	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/internal/infrastructure"
)

// Server owns the HTTP listener and the systems predictions run on. The
// segmentation model is loaded before the listener opens and released only
// after the listener has drained.
type Server struct {
	infra     *infrastructure.Infrastructure
	modules   *Modules
	http      *httpServer
	runBudget time.Duration
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	s := &Server{
		infra:     infra,
		modules:   modules,
		http:      newHTTPServer(&cfg.Server, router, infra.Logger),
		runBudget: cfg.Pipeline.RunBudget(),
	}

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"modules", router.Prefixes(),
		"background", cfg.Background.Provider,
		"max_pixels", cfg.Background.MaxPixels,
		"model", cfg.Agent.Model.Name,
		"capacity", cfg.Pipeline.Capacity,
		"run_budget", s.runBudget,
		"write_timeout", cfg.Server.WriteTimeoutDuration(),
	)

	return s, nil
}

// Start loads the background remover, then opens the listener. Readiness
// flips once every startup hook has returned.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("accepting predictions")
	}()

	return nil
}

// Shutdown withdraws readiness, drains in-flight predictions, then releases
// the segmentation model. A timeout shorter than the run budget can cut off
// runs that are still retrying.
func (s *Server) Shutdown(timeout time.Duration) error {
	if timeout < s.runBudget {
		s.infra.Logger.Warn(
			"shutdown timeout is shorter than a worst-case run",
			"timeout", timeout,
			"run_budget", s.runBudget,
		)
	}

	s.infra.Logger.Info("draining predictions", "timeout", timeout)
	return s.infra.Lifecycle.Shutdown(timeout)
}
