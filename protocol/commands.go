// Package protocol contains the Akismet wire protocol: commands, endpoints,
// request encoding and response interpretation.
package protocol

// AkismetCommand represents commands that can be sent to the provider
type AkismetCommand int

const (
	CommentCheck AkismetCommand = iota
	VerifyKey
)

// DefaultEndpoint is the provider's endpoint template. KeyPlaceholder is
// substituted with the API key for commands that need it.
const (
	DefaultEndpoint = "<key>.rest.akismet.com"
	KeyPlaceholder  = "<key>"
	DefaultPort     = 443
)

// String returns the command name as used in logs and metrics
func (c AkismetCommand) String() string {
	switch c {
	case VerifyKey:
		return "verify-key"
	default:
		return "comment-check"
	}
}

// AkismetEndpoint represents an ephemeral endpoint representation
type AkismetEndpoint struct {
	Path    string
	Command AkismetCommand
	// WithKey reports whether the host is prefixed with the API key.
	// Key verification must work while the key itself is unverified,
	// so it always goes to the bare host.
	WithKey bool
}

// FromCommand creates a new endpoint from a command
func FromCommand(command AkismetCommand) AkismetEndpoint {
	switch command {
	case VerifyKey:
		return AkismetEndpoint{
			Path:    "/1.1/verify-key",
			Command: command,
			WithKey: false,
		}
	default:
		return AkismetEndpoint{
			Path:    "/1.1/comment-check",
			Command: CommentCheck,
			WithKey: true,
		}
	}
}

// Host resolves the endpoint host from template for the given key
func (e AkismetEndpoint) Host(template, key string) string {
	return BuildEndpoint(template, key, e.WithKey)
}
