package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/rocketgeek/akismetclient-go/config"
	"github.com/rocketgeek/akismetclient-go/errors"
	"github.com/rocketgeek/akismetclient-go/protocol"
)

// Transport sends one encoded request to the provider and returns the raw
// response split into header block and body
type Transport interface {
	Send(ctx context.Context, host, path, body string) (*protocol.WireResponse, error)
}

// TLSTransport speaks HTTP/1.0 over a fresh TLS connection per request.
// There is no pooling and no retry: every Send dials, writes, drains the
// connection until the peer closes it, and closes it.
type TLSTransport struct {
	port           int
	connectTimeout time.Duration
	readTimeout    time.Duration
	tlsConfig      *tls.Config
	userAgent      string
}

// NewTLSTransport creates a transport from cfg
func NewTLSTransport(cfg *config.Config) (*TLSTransport, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.TLSSettings != nil && cfg.TLSSettings.CAPath != nil {
		caCert, err := os.ReadFile(*cfg.TLSSettings.CAPath)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Sprintf("failed to read CA file: %v", err))
		}
		caCertPool, err := x509.SystemCertPool()
		if err != nil || caCertPool == nil {
			caCertPool = x509.NewCertPool()
		}
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, errors.NewConfigError("failed to append CA certificate")
		}
		tlsConfig.RootCAs = caCertPool
	}

	return &TLSTransport{
		port:           cfg.Port,
		connectTimeout: seconds(cfg.ConnectTimeout),
		readTimeout:    seconds(cfg.ReadTimeout),
		tlsConfig:      tlsConfig,
		userAgent:      protocol.UserAgent(cfg.HostApplication, cfg.HostVersion, protocol.ClientVersion),
	}, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Send implements Transport
func (t *TLSTransport) Send(ctx context.Context, host, path, body string) (*protocol.WireResponse, error) {
	tlsConfig := t.tlsConfig.Clone()
	tlsConfig.ServerName = host

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: t.connectTimeout},
		Config:    tlsConfig,
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(t.port)))
	if err != nil {
		return nil, errors.NewTransportError("connection failed", err)
	}
	defer conn.Close()

	if t.readTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(t.readTimeout)); err != nil {
			return nil, errors.NewTransportError("failed to set deadline", err)
		}
	}

	if _, err := conn.Write(protocol.BuildRequest(host, path, body, t.userAgent)); err != nil {
		return nil, errors.NewTransportError("failed to write request", err)
	}

	raw, err := io.ReadAll(conn)
	// A peer that drops the TCP connection without a TLS close_notify still
	// delivered a complete HTTP/1.0 response.
	if err != nil && !(stderrors.Is(err, io.ErrUnexpectedEOF) && len(raw) > 0) {
		return nil, errors.NewIOError(err)
	}

	resp, ok := protocol.SplitResponse(raw)
	if !ok {
		return nil, errors.NewMalformedResponseError(fmt.Sprintf("no header boundary in %d byte response", len(raw)))
	}
	return resp, nil
}
