package protocol

import (
	"bytes"
	"strings"
)

// Provider hint headers returned alongside a verdict
const (
	HeaderDebugHelp = "X-akismet-debug-help"
	HeaderProTip    = "X-akismet-pro-tip"
)

var headerBoundary = []byte("\r\n\r\n")

// WireResponse is a raw provider response split into its header block and body
type WireResponse struct {
	// Status line and headers, without the terminating blank line
	Header string
	// Everything after the first blank line
	Body string
}

// SplitResponse splits raw on the first CRLFCRLF. ok is false when no
// boundary is present, which means the response is unusable.
func SplitResponse(raw []byte) (*WireResponse, bool) {
	head, body, found := bytes.Cut(raw, headerBoundary)
	if !found {
		return nil, false
	}
	return &WireResponse{
		Header: string(head),
		Body:   string(body),
	}, true
}

// Status returns the status line, e.g. "HTTP/1.0 200 OK"
func (r *WireResponse) Status() string {
	status, _, _ := strings.Cut(r.Header, "\r\n")
	return status
}

// HeaderValue returns the value of the named header, matched case-insensitively
func (r *WireResponse) HeaderValue(name string) string {
	_, headers, _ := strings.Cut(r.Header, "\r\n")
	for _, line := range strings.Split(headers, "\r\n") {
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), name) {
			return strings.TrimSpace(parts[1])
		}
	}
	return ""
}

// IsSpamVerdict reports whether a comment-check body is a positive spam
// verdict. Only the exact literal "true" counts.
func IsSpamVerdict(body string) bool {
	return body == "true"
}

// IsValidKeyVerdict reports whether a verify-key body accepts the key.
// Only the exact literal "valid" counts.
func IsValidKeyVerdict(body string) bool {
	return body == "valid"
}
