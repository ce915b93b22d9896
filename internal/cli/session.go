package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rocketgeek/akismetclient-go/client"
	"github.com/rocketgeek/akismetclient-go/config"
	"github.com/rocketgeek/akismetclient-go/internal/logging"
	"github.com/rocketgeek/akismetclient-go/internal/trace"
	"github.com/rocketgeek/akismetclient-go/settings"
	"github.com/rocketgeek/akismetclient-go/settings/sqlite"
)

// session holds everything a command needs to talk to the provider
type session struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   settings.Store
	client  *client.Client
	closers []func() error
}

func (a *app) open(cmd *cobra.Command, opts ...client.Option) (*session, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	if a.tracePath != "" {
		cfg.TracePath = a.tracePath
	}

	s := &session{
		cfg:    cfg,
		logger: logging.New(cmd.ErrOrStderr(), a.logFormat, logging.ParseLevel(a.logLevel)),
	}

	if cfg.SettingsPath != "" {
		db, err := sqlite.Open(cfg.SettingsPath)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, db.Close)
		s.store = db
		if cfg.SealKey != "" {
			sealed, err := settings.NewSealedStore(db, cfg.SealKey)
			if err != nil {
				_ = s.Close()
				return nil, err
			}
			s.store = sealed
		}
		opts = append(opts, client.WithStore(s.store))
	}

	if cfg.TracePath != "" {
		rec, err := trace.Create(cfg.TracePath)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		// closed before the store so the last exchange is flushed first
		s.closers = append([]func() error{rec.Close}, s.closers...)
		opts = append(opts, client.WithRecorder(rec))
	}

	opts = append([]client.Option{client.WithLogger(s.logger)}, opts...)
	if a.transport != nil {
		opts = append(opts, client.WithTransport(a.transport))
	}

	c, err := client.New(cmd.Context(), cfg, opts...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.client = c
	return s, nil
}

// Close releases the trace and the settings database
func (s *session) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
