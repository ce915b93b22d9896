package client

import (
	"context"
	"log/slog"

	"github.com/rocketgeek/akismetclient-go/settings"
)

// CredentialSource yields an API key, or "" when it holds none
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// StaticCredential is a key supplied directly by the caller
type StaticCredential string

// Credential implements CredentialSource
func (s StaticCredential) Credential(context.Context) (string, error) {
	return string(s), nil
}

// OptionCredential reads a key from a settings option
type OptionCredential struct {
	Store settings.Store
	Name  string
}

// Credential implements CredentialSource
func (o OptionCredential) Credential(ctx context.Context) (string, error) {
	v, ok, err := o.Store.Get(ctx, o.Name)
	if err != nil || !ok {
		return "", err
	}
	return v, nil
}

// ResolveCredential tries sources in order and returns the first non-empty
// key. A failing source is logged and skipped. "" means no key is
// configured anywhere.
func ResolveCredential(ctx context.Context, logger *slog.Logger, sources ...CredentialSource) string {
	for i, src := range sources {
		key, err := src.Credential(ctx)
		if err != nil {
			logger.WarnContext(ctx, "credential source failed", "source", i, "error", err)
			continue
		}
		if key != "" {
			return key
		}
	}
	return ""
}
