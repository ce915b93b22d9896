package client

import (
	"context"
	"encoding/pem"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketgeek/akismetclient-go/config"
	"github.com/rocketgeek/akismetclient-go/errors"
	"github.com/rocketgeek/akismetclient-go/protocol"
)

// tlsProvider starts a TLS test server and returns a config trusting it
func tlsProvider(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *config.Config) {
	t.Helper()
	server := httptest.NewTLSServer(handler)
	t.Cleanup(server.Close)

	caPath := filepath.Join(t.TempDir(), "ca.pem")
	caPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: server.Certificate().Raw})
	require.NoError(t, os.WriteFile(caPath, caPEM, 0o600))

	_, portStr, err := net.SplitHostPort(server.Listener.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := config.NewConfig("http://a.com").
		WithAPIKey("abc123").
		WithPort(port).
		WithReadTimeout(5).
		WithHost("WordPress", "6.4").
		WithTLSSettings(&config.TLSSettings{CAPath: &caPath})
	return server, cfg
}

func TestTLSTransportWireFormat(t *testing.T) {
	type captured struct {
		method, path, proto, host, contentType, userAgent, body string
		contentLength                                           int64
	}
	got := make(chan captured, 1)

	_, cfg := tlsProvider(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got <- captured{
			method:        r.Method,
			path:          r.URL.Path,
			proto:         r.Proto,
			host:          r.Host,
			contentType:   r.Header.Get("Content-Type"),
			userAgent:     r.UserAgent(),
			body:          string(body),
			contentLength: r.ContentLength,
		}
		w.Header().Set("X-akismet-pro-tip", "discard")
		_, _ = w.Write([]byte("true"))
	})

	transport, err := NewTLSTransport(cfg)
	require.NoError(t, err)

	body := "blog=http%3A%2F%2Fa.com&user_ip=1.2.3.4"
	resp, err := transport.Send(context.Background(), "127.0.0.1", "/1.1/comment-check", body)
	require.NoError(t, err)
	assert.Equal(t, "true", resp.Body)
	assert.Contains(t, resp.Status(), "200")
	assert.Equal(t, "discard", resp.HeaderValue("X-akismet-pro-tip"))

	req := <-got
	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/1.1/comment-check", req.path)
	assert.Equal(t, "HTTP/1.0", req.proto)
	assert.Equal(t, "127.0.0.1", req.host)
	assert.Equal(t, "application/x-www-form-urlencoded", req.contentType)
	assert.Equal(t, "WordPress/6.4 | AkismetClient-Go/1.1.0", req.userAgent)
	assert.Equal(t, body, req.body)
	assert.Equal(t, int64(len(body)), req.contentLength)
}

func TestClientOverTLS(t *testing.T) {
	_, cfg := tlsProvider(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/1.1/verify-key":
			_ = r.ParseForm()
			if r.PostForm.Get("key") == "abc123" {
				_, _ = w.Write([]byte("valid"))
				return
			}
			w.Header().Set("X-akismet-debug-help", "We were unable to verify the key")
			_, _ = w.Write([]byte("invalid"))
		case "/1.1/comment-check":
			_, _ = w.Write([]byte("true"))
		}
	})
	// Both hosts must resolve to the test server
	cfg.WithEndpoint("<key>.127.0.0.1")

	transport := &hostRewriter{inner: mustTLSTransport(t, cfg)}
	c := newTestClient(t, cfg, transport)
	ctx := context.Background()

	assert.True(t, c.VerifyKey(ctx, "abc123"))
	assert.False(t, c.VerifyKey(ctx, "wrong"))
	assert.True(t, c.IsSpam(ctx, Submission{UserIP: "1.2.3.4", Email: "spammer@example.com"}))
	assert.Equal(t, []string{"127.0.0.1", "127.0.0.1", "abc123.127.0.0.1"}, transport.hosts)
}

// hostRewriter dials the test server whatever host the client asks for
type hostRewriter struct {
	inner Transport
	hosts []string
}

func (h *hostRewriter) Send(ctx context.Context, host, path, body string) (*protocol.WireResponse, error) {
	h.hosts = append(h.hosts, host)
	return h.inner.Send(ctx, "127.0.0.1", path, body)
}

func mustTLSTransport(t *testing.T, cfg *config.Config) *TLSTransport {
	t.Helper()
	transport, err := NewTLSTransport(cfg)
	require.NoError(t, err)
	return transport
}

func TestTLSTransportConnectionFailed(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	transport := mustTLSTransport(t, config.NewConfig("http://a.com").WithPort(port).WithConnectTimeout(2))
	resp, err := transport.Send(context.Background(), "127.0.0.1", "/1.1/comment-check", "")
	assert.Nil(t, resp)
	assert.Equal(t, errors.TransportError, errors.TypeOf(err))
	assert.True(t, errors.IsIndeterminate(err))
}

func TestTLSTransportUntrustedCertificate(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("true"))
	}))
	defer server.Close()
	port := server.Listener.Addr().(*net.TCPAddr).Port

	transport := mustTLSTransport(t, config.NewConfig("http://a.com").WithPort(port))
	_, err := transport.Send(context.Background(), "127.0.0.1", "/1.1/comment-check", "")
	assert.Equal(t, errors.TransportError, errors.TypeOf(err))
}

func TestTLSTransportMalformedResponse(t *testing.T) {
	_, cfg := tlsProvider(t, func(w http.ResponseWriter, r *http.Request) {
		conn, buf, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		_, _ = buf.WriteString("HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\n")
		_ = buf.Flush()
		_ = conn.Close()
	})

	transport := mustTLSTransport(t, cfg)
	resp, err := transport.Send(context.Background(), "127.0.0.1", "/1.1/comment-check", "")
	assert.Nil(t, resp)
	assert.Equal(t, errors.MalformedResponseError, errors.TypeOf(err))

	c := newTestClient(t, cfg, transport)
	assert.False(t, c.IsSpam(context.Background(), Submission{UserIP: "1.2.3.4"}))
}

func TestTLSTransportReadTimeout(t *testing.T) {
	release := make(chan struct{})
	_, cfg := tlsProvider(t, func(w http.ResponseWriter, r *http.Request) {
		conn, _, err := w.(http.Hijacker).Hijack()
		if err != nil {
			return
		}
		defer conn.Close()
		<-release
	})
	defer close(release)
	cfg.WithReadTimeout(0.2)

	transport := mustTLSTransport(t, cfg)
	_, err := transport.Send(context.Background(), "127.0.0.1", "/1.1/comment-check", "")
	require.Error(t, err)
	assert.True(t, errors.IsIndeterminate(err))
}

func TestNewTLSTransportBadCA(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.pem")
	_, err := NewTLSTransport(config.NewConfig("http://a.com").WithTLSSettings(&config.TLSSettings{CAPath: &missing}))
	assert.True(t, errors.IsConfigError(err))

	garbage := filepath.Join(t.TempDir(), "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a certificate"), 0o600))
	_, err = NewTLSTransport(config.NewConfig("http://a.com").WithTLSSettings(&config.TLSSettings{CAPath: &garbage}))
	assert.True(t, errors.IsConfigError(err))
}
