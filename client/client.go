// Package client implements the Akismet client: credential resolution, the
// TLS transport and the spam-check and key-verification operations.
package client

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rocketgeek/akismetclient-go/config"
	"github.com/rocketgeek/akismetclient-go/errors"
	"github.com/rocketgeek/akismetclient-go/protocol"
	"github.com/rocketgeek/akismetclient-go/settings"
)

// Submission is the identity checked for one registration or comment
type Submission struct {
	UserIP    string
	Email     string
	Username  string
	UserAgent string
	Referrer  string
}

// FailPolicy decides the spam verdict when the provider could not give one
type FailPolicy int

const (
	// FailOpen lets the submission through: an outage never blocks users
	FailOpen FailPolicy = iota
	// FailClosed treats the submission as spam
	FailClosed
)

// Verdict maps a CheckSpam error to a spam verdict. A missing key is never
// spam regardless of policy: an unconfigured site must not block anyone.
func (p FailPolicy) Verdict(err error) bool {
	if errors.IsConfigError(err) {
		return false
	}
	return p == FailClosed
}

// Client checks submissions against the provider. It is safe for concurrent
// use; the only state mutated after New is the active API key.
type Client struct {
	cfg       *config.Config
	transport Transport
	store     settings.Store
	logger    *slog.Logger
	metrics   MetricsReporter
	recorder  Recorder
	filter    MessageFilter
	policy    FailPolicy

	mu         sync.RWMutex
	credential string
}

// Option configures a Client
type Option func(*Client)

// WithTransport replaces the TLS transport
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithStore sets the settings store API keys are read from and saved to
func WithStore(s settings.Store) Option {
	return func(c *Client) { c.store = s }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics sets the metrics reporter
func WithMetrics(m MetricsReporter) Option {
	return func(c *Client) { c.metrics = m }
}

// WithRecorder sets a recorder receiving every exchange
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// WithMessageFilter sets a filter applied to the block message of
// ValidateRegistration
func WithMessageFilter(f MessageFilter) Option {
	return func(c *Client) { c.filter = f }
}

// New validates cfg, applies opts and resolves the API key
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		logger:  slog.Default(),
		metrics: noopMetrics{},
		policy:  FailOpen,
	}
	if cfg.FailClosed {
		c.policy = FailClosed
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "akismet")

	if c.transport == nil {
		t, err := NewTLSTransport(cfg)
		if err != nil {
			return nil, err
		}
		c.transport = t
	}

	c.Refresh(ctx)
	return c, nil
}

func (c *Client) sources() []CredentialSource {
	var sources []CredentialSource
	if c.cfg.APIKey != "" {
		sources = append(sources, StaticCredential(c.cfg.APIKey))
	}
	if c.store != nil {
		if c.cfg.SharedKeyOption != "" {
			sources = append(sources, OptionCredential{Store: c.store, Name: c.cfg.SharedKeyOption})
		}
		sources = append(sources, OptionCredential{Store: c.store, Name: c.cfg.APIKeyOption})
	}
	return sources
}

// Refresh re-resolves the active API key from the configured sources and
// returns it
func (c *Client) Refresh(ctx context.Context) string {
	key := ResolveCredential(ctx, c.logger, c.sources()...)
	c.mu.Lock()
	c.credential = key
	c.mu.Unlock()
	if key == "" {
		c.logger.WarnContext(ctx, "no API key configured; spam checks are disabled")
	}
	return key
}

// Credential returns the active API key
func (c *Client) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

// Config returns the client configuration
func (c *Client) Config() *config.Config {
	return c.cfg
}

// FailPolicy returns the policy IsSpam resolves failures with
func (c *Client) FailPolicy() FailPolicy {
	return c.policy
}

// CallbackTag returns the tag the host registers the validation hook under
func (c *Client) CallbackTag() string {
	return c.cfg.CallbackTag
}

// DefaultEnabled reports whether the host should wire ValidateRegistration
func (c *Client) DefaultEnabled() bool {
	return c.cfg.DefaultEnabled
}

// SaveKey stores key under the configured option and re-resolves the active
// key. A key shared by a sibling integration keeps precedence.
func (c *Client) SaveKey(ctx context.Context, key string) error {
	if c.store == nil {
		return errors.NewConfigError("no settings store configured")
	}
	if err := c.store.Set(ctx, c.cfg.APIKeyOption, key); err != nil {
		return err
	}
	c.Refresh(ctx)
	return nil
}

func (c *Client) commentCheckFields(s Submission) protocol.Fields {
	fields := protocol.Fields{}.
		Add(protocol.FieldBlog, c.cfg.SiteURL).
		Add(protocol.FieldUserIP, s.UserIP).
		Add(protocol.FieldUserAgent, s.UserAgent).
		Add(protocol.FieldReferrer, s.Referrer).
		Add(protocol.FieldCommentType, protocol.CommentTypeSignup)
	if s.Email != "" {
		fields = fields.Add(protocol.FieldAuthorEmail, s.Email)
	}
	if s.Username != "" {
		fields = fields.Add(protocol.FieldAuthor, s.Username)
	}
	if c.cfg.TestMode {
		fields = fields.Add(protocol.FieldIsTest, "true")
	}
	return fields
}

// CheckSpam asks the provider whether s is spam. Without an API key it
// returns a ConfigError without contacting the provider.
func (c *Client) CheckSpam(ctx context.Context, s Submission) (bool, error) {
	key := c.Credential()
	if key == "" {
		return false, errors.NewConfigError("no API key configured")
	}

	resp, err := c.exchange(ctx, protocol.CommentCheck, key, c.commentCheckFields(s), func(body string) string {
		if protocol.IsSpamVerdict(body) {
			return OutcomeSpam
		}
		return OutcomeHam
	})
	if err != nil {
		return false, err
	}
	return protocol.IsSpamVerdict(resp.Body), nil
}

// IsSpam is CheckSpam with failures resolved by the fail policy. It never
// returns an error so a provider outage cannot break the caller.
func (c *Client) IsSpam(ctx context.Context, s Submission) bool {
	spam, err := c.CheckSpam(ctx, s)
	if err == nil {
		return spam
	}
	verdict := c.policy.Verdict(err)
	c.logger.WarnContext(ctx, "spam check failed", "error", err, "spam", verdict)
	return verdict
}

// CheckKey asks the provider whether key is valid
func (c *Client) CheckKey(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.NewConfigError("empty API key")
	}
	fields := protocol.Fields{}.
		Add(protocol.FieldKey, key).
		Add(protocol.FieldBlog, c.cfg.SiteURL)

	resp, err := c.exchange(ctx, protocol.VerifyKey, key, fields, func(body string) string {
		if protocol.IsValidKeyVerdict(body) {
			return OutcomeValid
		}
		return OutcomeInvalid
	})
	if err != nil {
		return false, err
	}
	return protocol.IsValidKeyVerdict(resp.Body), nil
}

// VerifyKey is CheckKey with every failure reported as an invalid key
func (c *Client) VerifyKey(ctx context.Context, key string) bool {
	valid, err := c.CheckKey(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "key verification failed", "error", err)
		return false
	}
	return valid
}

func (c *Client) exchange(ctx context.Context, cmd protocol.AkismetCommand, key string, fields protocol.Fields, outcome func(string) string) (*protocol.WireResponse, error) {
	endpoint := protocol.FromCommand(cmd)
	ex := Exchange{
		ID:      uuid.NewString(),
		Time:    time.Now().UTC(),
		Command: cmd.String(),
		Path:    endpoint.Path,
		Fields:  redactFields(fields),
	}
	logger := c.logger.With("exchange_id", ex.ID, "command", ex.Command)

	start := time.Now()
	resp, err := c.transport.Send(ctx, endpoint.Host(c.cfg.Endpoint, key), endpoint.Path, fields.Encode())
	ex.Duration = time.Since(start)

	result := ""
	if err != nil {
		ex.Error = err.Error()
		result = errors.TypeOf(err).String()
	} else {
		ex.Status = resp.Status()
		ex.Body = resp.Body
		result = outcome(resp.Body)
		if help := resp.HeaderValue(protocol.HeaderDebugHelp); help != "" {
			logger.WarnContext(ctx, "provider debug help", "help", help, "body", resp.Body)
		}
		if tip := resp.HeaderValue(protocol.HeaderProTip); tip != "" {
			logger.DebugContext(ctx, "provider pro tip", "tip", tip)
		}
	}
	c.metrics.RecordExchange(ex.Command, result, ex.Duration.Seconds())
	logger.DebugContext(ctx, "provider exchange", "outcome", result, "duration", ex.Duration)

	if c.recorder != nil {
		if rerr := c.recorder.Record(ex); rerr != nil {
			logger.WarnContext(ctx, "failed to record exchange", "error", rerr)
		}
	}
	return resp, err
}
