// Package config provides configuration for the Akismet client
package config

import (
	"runtime"
	"strings"

	"github.com/rocketgeek/akismetclient-go/protocol"
)

// Defaults applied by NewConfig
const (
	DefaultAPIKeyOption    = "akismet_api_key"
	DefaultSharedKeyOption = "wordpress_api_key"
	DefaultCallbackTag     = "akismet"
	DefaultErrorTag        = "likely_spammer"
	DefaultErrorMessage    = "Cannot register. Please contact site administrator for assistance."
	DefaultConnectTimeout  = 10.0
	DefaultReadTimeout     = 10.0
	DefaultHostApplication = "Go"
)

// TLSSettings represents custom TLS settings for the provider connection
type TLSSettings struct {
	// Optional path to a PEM bundle trusted in addition to the system roots
	CAPath *string `yaml:"ca_path"`
}

// Config represents configuration for the Akismet client
type Config struct {
	// Canonical URL of the protected site, sent as "blog" on every request
	SiteURL string `yaml:"site_url" validate:"required,url"`
	// Explicit API key. Takes precedence over any stored key.
	APIKey string `yaml:"api_key"`
	// Settings name of this library's stored API key
	APIKeyOption string `yaml:"api_key_option" validate:"required"`
	// Settings name of a key shared with a sibling integration, checked first
	SharedKeyOption string `yaml:"shared_key_option"`
	// Endpoint template containing the "<key>." placeholder
	Endpoint string `yaml:"endpoint" validate:"required,endpoint_template"`
	// TLS port of the provider
	Port int `yaml:"port" validate:"min=1,max=65535"`
	// Connect timeout in seconds
	ConnectTimeout float64 `yaml:"connect_timeout" validate:"gt=0"`
	// Read timeout in seconds once connected; 0 waits for the peer indefinitely
	ReadTimeout float64 `yaml:"read_timeout" validate:"gte=0"`
	// Flag comment-check requests as tests so they are not scored against the account
	TestMode bool `yaml:"test_mode"`
	// Opaque tag under which the host registers the validation hook
	CallbackTag string `yaml:"callback_tag" validate:"required"`
	// Whether the host should wire the default registration hook
	DefaultEnabled bool `yaml:"default_enabled"`
	// Tag and message of the entry added when a registration is blocked
	ErrorTag     string `yaml:"error_tag" validate:"required"`
	ErrorMessage string `yaml:"error_message" validate:"required"`
	// Treat an unreachable provider as a spam verdict instead of letting the submission through
	FailClosed bool `yaml:"fail_closed"`
	// Host application name and version reported in the User-Agent
	HostApplication string `yaml:"host_application" validate:"required"`
	HostVersion     string `yaml:"host_version"`
	// Custom TLS settings
	TLSSettings *TLSSettings `yaml:"tls"`
	// Path of the sqlite settings database
	SettingsPath string `yaml:"settings_path"`
	// Passphrase used to encrypt stored API keys; empty stores them as plain text
	SealKey string `yaml:"seal_key"`
	// Path of a zstd-compressed trace of provider exchanges; empty disables tracing
	TracePath string `yaml:"trace_path"`
	// Provider calls per second allowed from the HTTP surface; 0 disables limiting
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" validate:"gte=0"`
}

// NewConfig creates a new Config with default values
func NewConfig(siteURL string) *Config {
	return &Config{
		SiteURL:         siteURL,
		APIKeyOption:    DefaultAPIKeyOption,
		SharedKeyOption: DefaultSharedKeyOption,
		Endpoint:        protocol.DefaultEndpoint,
		Port:            protocol.DefaultPort,
		ConnectTimeout:  DefaultConnectTimeout,
		ReadTimeout:     DefaultReadTimeout,
		CallbackTag:     DefaultCallbackTag,
		DefaultEnabled:  true,
		ErrorTag:        DefaultErrorTag,
		ErrorMessage:    DefaultErrorMessage,
		HostApplication: DefaultHostApplication,
		HostVersion:     strings.TrimPrefix(runtime.Version(), "go"),
		RateBurst:       1,
	}
}

// WithAPIKey sets an explicit API key
func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

// WithAPIKeyOption sets the settings name of the stored API key
func (c *Config) WithAPIKeyOption(name string) *Config {
	c.APIKeyOption = name
	return c
}

// WithSharedKeyOption sets the settings name of the shared API key
func (c *Config) WithSharedKeyOption(name string) *Config {
	c.SharedKeyOption = name
	return c
}

// WithEndpoint sets the endpoint template
func (c *Config) WithEndpoint(template string) *Config {
	c.Endpoint = template
	return c
}

// WithPort sets the provider port
func (c *Config) WithPort(port int) *Config {
	c.Port = port
	return c
}

// WithConnectTimeout sets the connect timeout in seconds
func (c *Config) WithConnectTimeout(timeout float64) *Config {
	c.ConnectTimeout = timeout
	return c
}

// WithReadTimeout sets the read timeout in seconds
func (c *Config) WithReadTimeout(timeout float64) *Config {
	c.ReadTimeout = timeout
	return c
}

// WithTestMode enables or disables test mode
func (c *Config) WithTestMode(enabled bool) *Config {
	c.TestMode = enabled
	return c
}

// WithCallbackTag sets the callback tag
func (c *Config) WithCallbackTag(tag string) *Config {
	c.CallbackTag = tag
	return c
}

// WithDefaultEnabled sets whether the default registration hook is wired
func (c *Config) WithDefaultEnabled(enabled bool) *Config {
	c.DefaultEnabled = enabled
	return c
}

// WithErrorMessage sets the tag and message of blocked registrations
func (c *Config) WithErrorMessage(tag, message string) *Config {
	c.ErrorTag = tag
	c.ErrorMessage = message
	return c
}

// WithFailClosed sets the failure policy
func (c *Config) WithFailClosed(enabled bool) *Config {
	c.FailClosed = enabled
	return c
}

// WithHost sets the host application reported in the User-Agent
func (c *Config) WithHost(application, version string) *Config {
	c.HostApplication = application
	c.HostVersion = version
	return c
}

// WithTLSSettings sets custom TLS settings
func (c *Config) WithTLSSettings(tls *TLSSettings) *Config {
	c.TLSSettings = tls
	return c
}

// WithSettingsPath sets the sqlite settings database path
func (c *Config) WithSettingsPath(path string) *Config {
	c.SettingsPath = path
	return c
}

// WithSealKey sets the passphrase for stored API keys
func (c *Config) WithSealKey(key string) *Config {
	c.SealKey = key
	return c
}

// WithTracePath sets the exchange trace file
func (c *Config) WithTracePath(path string) *Config {
	c.TracePath = path
	return c
}

// WithRateLimit sets the outbound call rate of the HTTP surface
func (c *Config) WithRateLimit(perSecond float64, burst int) *Config {
	c.RateLimit = perSecond
	c.RateBurst = burst
	return c
}
