package client

import "context"

// Decision is the outcome of a registration validation chain
type Decision string

const (
	Allow Decision = "allow"
	Block Decision = "block"
)

// ErrorEntry is one tagged error of a validation chain
type ErrorEntry struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Errors accumulates entries across a chain of registration hooks. It is a
// value: Add returns a new Errors and never modifies the receiver.
type Errors []ErrorEntry

// Add returns e with one more entry
func (e Errors) Add(tag, message string) Errors {
	out := make(Errors, len(e), len(e)+1)
	copy(out, e)
	return append(out, ErrorEntry{Tag: tag, Message: message})
}

// Has reports whether an entry with tag exists
func (e Errors) Has(tag string) bool {
	for _, entry := range e {
		if entry.Tag == tag {
			return true
		}
	}
	return false
}

// Decision blocks as soon as any hook added an entry
func (e Errors) Decision() Decision {
	if len(e) > 0 {
		return Block
	}
	return Allow
}

// RegistrationHook is one step of a host's registration validation chain
type RegistrationHook func(ctx context.Context, errs Errors, s Submission) Errors

// MessageFilter rewrites the entry added for a blocked registration
type MessageFilter func(ErrorEntry) ErrorEntry

// ValidateRegistration is a RegistrationHook. Submissions without an email
// are not checked. A spam verdict adds exactly one entry carrying the
// configured tag and message; otherwise errs is returned unchanged.
func (c *Client) ValidateRegistration(ctx context.Context, errs Errors, s Submission) Errors {
	if s.Email == "" {
		return errs
	}
	if !c.IsSpam(ctx, s) {
		return errs
	}

	entry := ErrorEntry{Tag: c.cfg.ErrorTag, Message: c.cfg.ErrorMessage}
	if c.filter != nil {
		entry = c.filter(entry)
	}
	c.logger.InfoContext(ctx, "registration blocked", "tag", entry.Tag, "user_ip", s.UserIP)
	return errs.Add(entry.Tag, entry.Message)
}

// AllowRegistration checks s directly and reports whether it may register
func (c *Client) AllowRegistration(ctx context.Context, s Submission) bool {
	return !c.IsSpam(ctx, s)
}
