// Package akismet_client checks user registrations against the Akismet
// spam-detection service. It resolves the site's API key, speaks the
// provider's form-encoded protocol over TLS and plugs into a host's
// registration validation chain.
//
// Example usage:
//
//	cfg := akismet_client.NewConfig("https://example.com").WithAPIKey("abc123")
//	sub := akismet_client.Submission{UserIP: "1.2.3.4", Email: "bob@example.com", Username: "bob"}
//
//	if akismet_client.IsSpam(context.Background(), cfg, sub) {
//		// reject the registration
//	}
package akismet_client

import (
	"context"

	"github.com/rocketgeek/akismetclient-go/client"
	"github.com/rocketgeek/akismetclient-go/config"
	"github.com/rocketgeek/akismetclient-go/protocol"
)

// Re-export commonly used types and functions
type (
	Config           = config.Config
	TLSSettings      = config.TLSSettings
	Client           = client.Client
	Submission       = client.Submission
	Errors           = client.Errors
	ErrorEntry       = client.ErrorEntry
	Decision         = client.Decision
	FailPolicy       = client.FailPolicy
	RegistrationHook = client.RegistrationHook
	AkismetCommand   = protocol.AkismetCommand
)

// Re-export constructors
var (
	NewConfig  = config.NewConfig
	LoadConfig = config.Load
	NewClient  = client.New
)

// Re-export commands and decisions
const (
	CommentCheck = protocol.CommentCheck
	VerifyKeyCmd = protocol.VerifyKey

	Allow = client.Allow
	Block = client.Block

	FailOpen   = client.FailOpen
	FailClosed = client.FailClosed
)

// CheckSpam asks the provider whether s is spam using a one-off client.
//
// Example:
//
//	cfg := NewConfig("https://example.com").WithAPIKey("abc123")
//	spam, err := CheckSpam(context.Background(), cfg, Submission{UserIP: "1.2.3.4", Email: "bob@example.com"})
//	if err != nil {
//		return err
//	}
func CheckSpam(ctx context.Context, cfg *Config, s Submission) (bool, error) {
	c, err := client.New(ctx, cfg)
	if err != nil {
		return false, err
	}
	return c.CheckSpam(ctx, s)
}

// IsSpam is CheckSpam with failures resolved by cfg's fail policy. An
// invalid configuration is never spam.
func IsSpam(ctx context.Context, cfg *Config, s Submission) bool {
	c, err := client.New(ctx, cfg)
	if err != nil {
		return false
	}
	return c.IsSpam(ctx, s)
}

// VerifyKey reports whether the provider accepts key for cfg's site. Any
// failure counts as an invalid key.
func VerifyKey(ctx context.Context, cfg *Config, key string) bool {
	c, err := client.New(ctx, cfg)
	if err != nil {
		return false
	}
	return c.VerifyKey(ctx, key)
}
