package protocol

import (
	"fmt"
	"strings"
)

// BuildEndpoint derives a provider hostname from template.
//
// With withKey set the placeholder is replaced by key, giving the
// comment-check host ("abc123.rest.akismet.com"). Otherwise the placeholder
// and its trailing dot are removed, giving the verification host
// ("rest.akismet.com").
func BuildEndpoint(template, key string, withKey bool) string {
	if withKey {
		return strings.ReplaceAll(template, KeyPlaceholder, key)
	}
	return strings.ReplaceAll(template, KeyPlaceholder+".", "")
}

// UserAgent builds the User-Agent sent with every request, in the form
// "<host app>/<host version> | AkismetClient-Go/<version>".
func UserAgent(hostApp, hostVersion, version string) string {
	if hostVersion == "" {
		return fmt.Sprintf("%s | AkismetClient-Go/%s", hostApp, version)
	}
	return fmt.Sprintf("%s/%s | AkismetClient-Go/%s", hostApp, hostVersion, version)
}
