package testharness

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/network/brew"
)

// listenALPN and keepAlive mirror the production Brew QUIC transport
// so the harness exercises the same negotiation path.
const (
	listenALPN = "hq-29"
	keepAlive  = 5 * time.Second
	idleTimeout = 30 * time.Second

	// testResponseData stands in for a real call-routing lookup result.
	testResponseData uint32 = 0x1234ABCD
)

// Server is the QUIC test-PDU service: it
// answers HeartbeatTick with HeartbeatTock and TestRequest with
// TestResponse, on every bidirectional stream a client opens.
type Server struct {
	addr string
}

// NewServer returns a harness bound to addr (typically "[::]:4433").
func NewServer(addr string) *Server {
	return &Server{addr: addr}
}

// Run accepts connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	tlsConf, err := selfSignedTLSConfig()
	if err != nil {
		return fmt.Errorf("testharness: generating TLS config: %w", err)
	}

	ln, err := quic.ListenAddr(s.addr, tlsConf, &quic.Config{
		KeepAlivePeriod: keepAlive,
		MaxIdleTimeout:  idleTimeout,
	})
	if err != nil {
		return fmt.Errorf("testharness: listening on %s: %w", s.addr, err)
	}
	defer ln.Close()

	slog.Info("testharness: quic service listening", "addr", s.addr)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("testharness: accept: %w", err)
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn *quic.Conn) {
	slog.Info("testharness: client connected", "remote", conn.RemoteAddr())
	for {
		stream, err := conn.AcceptStream(ctx)
		if err != nil {
			return
		}
		go s.handleStream(stream)
	}
}

func (s *Server) handleStream(stream *quic.Stream) {
	for {
		payload, err := brew.ReadFrame(stream)
		if err != nil {
			return
		}

		req, err := Decode(payload)
		if err != nil {
			slog.Warn("testharness: failed to decode pdu", "err", err)
			continue
		}

		resp, ok := respond(req)
		if !ok {
			slog.Warn("testharness: unexpected pdu, ignoring")
			continue
		}

		encoded, err := Encode(resp)
		if err != nil {
			slog.Error("testharness: failed to encode response", "err", err)
			continue
		}
		if err := brew.WriteFrame(stream, encoded); err != nil {
			return
		}
	}
}

func respond(req *PDU) (PDU, bool) {
	switch {
	case req.Tick != nil:
		return PDU{Tock: &HeartbeatTock{Handle: req.Tick.Handle}}, true
	case req.Request != nil:
		return PDU{Response: &TestResponse{
			Handle: req.Request.Handle,
			SSI:    req.Request.SSI,
			Data:   testResponseData,
		}}, true
	default:
		return PDU{}, false
	}
}

// selfSignedTLSConfig builds an in-memory self-signed certificate for
// local/testing use only, matching the harness's Rust counterpart.
func selfSignedTLSConfig() (*tls.Config, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}

	serial, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		return nil, err
	}

	tmpl := &x509.Certificate{
		SerialNumber: serial,
		Subject:      pkix.Name{CommonName: "localhost"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(24 * time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		DNSNames:     []string{"localhost"},
	}

	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}

	cert := tls.Certificate{Certificate: [][]byte{der}, PrivateKey: key}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{listenALPN},
	}, nil
}
