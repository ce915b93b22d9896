// Package server exposes the registration validation chain over HTTP.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/rocketgeek/akismetclient-go/client"
)

// Form fields of a registration request
const (
	FieldLogin = "user_login"
	FieldEmail = "user_email"
)

// CoreTag tags the built-in required-field checks
const CoreTag = "core"

// RegistrationMetrics receives the decision of every registration
type RegistrationMetrics interface {
	RecordRegistration(decision client.Decision)
}

type hook struct {
	tag string
	fn  client.RegistrationHook
}

// Server runs registration submissions through a chain of hooks
type Server struct {
	client  *client.Client
	hooks   []hook
	limiter *rate.Limiter
	metrics RegistrationMetrics
	logger  *slog.Logger
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics sets the registration metrics
func WithMetrics(m RegistrationMetrics) Option {
	return func(s *Server) { s.metrics = m }
}

// New creates a Server. The chain starts with the required-field checks;
// the client's ValidateRegistration follows under its callback tag when the
// client is default-enabled.
func New(c *client.Client, opts ...Option) *Server {
	s := &Server{
		client: c,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	cfg := c.Config()
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	s.Register(CoreTag, requireFields)
	if c.DefaultEnabled() {
		s.Register(c.CallbackTag(), s.limited(c.ValidateRegistration))
	}
	return s
}

// Register appends a hook to the chain
func (s *Server) Register(tag string, fn client.RegistrationHook) {
	s.hooks = append(s.hooks, hook{tag: tag, fn: fn})
}

// Tags lists the registered hooks in chain order
func (s *Server) Tags() []string {
	tags := make([]string, len(s.hooks))
	for i, h := range s.hooks {
		tags[i] = h.tag
	}
	return tags
}

// Validate runs sub through every hook in order
func (s *Server) Validate(ctx context.Context, sub client.Submission) client.Errors {
	var errs client.Errors
	for _, h := range s.hooks {
		errs = h.fn(ctx, errs, sub)
	}
	if s.metrics != nil {
		s.metrics.RecordRegistration(errs.Decision())
	}
	return errs
}

// limited waits for the rate limiter before calling fn. If the wait is
// abandoned the submission is passed on unchecked.
func (s *Server) limited(fn client.RegistrationHook) client.RegistrationHook {
	return func(ctx context.Context, errs client.Errors, sub client.Submission) client.Errors {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				s.logger.WarnContext(ctx, "rate limiter wait failed; skipping spam check", "error", err)
				return errs
			}
		}
		return fn(ctx, errs, sub)
	}
}

func requireFields(_ context.Context, errs client.Errors, sub client.Submission) client.Errors {
	if sub.Username == "" {
		errs = errs.Add("empty_username", "Please enter a username.")
	}
	if sub.Email == "" {
		errs = errs.Add("empty_email", "Please type your email address.")
	}
	return errs
}

// Router returns the HTTP handler
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { writeText(w, http.StatusOK, "ok\n") })
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/register", s.register)
	r.Post("/check", s.check)

	return r
}

type registrationResponse struct {
	Decision client.Decision `json:"decision"`
	Errors   client.Errors   `json:"errors"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid form"})
		return
	}
	sub := client.SubmissionFromRequest(r, r.PostForm.Get(FieldEmail), r.PostForm.Get(FieldLogin))
	errs := s.Validate(r.Context(), sub)
	if errs == nil {
		errs = client.Errors{}
	}

	status := http.StatusOK
	if errs.Decision() == client.Block {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, registrationResponse{Decision: errs.Decision(), Errors: errs})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid form"})
		return
	}
	sub := client.SubmissionFromRequest(r, r.PostForm.Get(FieldEmail), r.PostForm.Get(FieldLogin))
	if s.limiter != nil {
		if err := s.limiter.Wait(r.Context()); err != nil {
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": "rate limited"})
			return
		}
	}
	spam, err := s.client.CheckSpam(r.Context(), sub)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"spam": spam})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, s string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(s))
}

// Run serves handler on addr until ctx is done, then shuts down gracefully
func Run(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
