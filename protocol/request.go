package protocol

import (
	"strconv"
	"strings"
)

// ClientVersion is reported to the provider in the User-Agent
const ClientVersion = "1.1.0"

// ContentTypeForm is the only body encoding the provider accepts
const ContentTypeForm = "application/x-www-form-urlencoded"

// BuildRequest frames body as a raw HTTP/1.0 POST. HTTP/1.0 makes the
// provider close the connection after the response, which is how the end of
// the response is detected.
func BuildRequest(host, path, body, userAgent string) []byte {
	var sb strings.Builder
	sb.Grow(len(body) + 256)
	sb.WriteString("POST " + path + " HTTP/1.0\r\n")
	sb.WriteString("Host: " + host + "\r\n")
	sb.WriteString("Content-Type: " + ContentTypeForm + "\r\n")
	sb.WriteString("Content-Length: " + strconv.Itoa(len(body)) + "\r\n")
	sb.WriteString("User-Agent: " + userAgent + "\r\n")
	sb.WriteString("\r\n")
	sb.WriteString(body)
	return []byte(sb.String())
}
