package transport

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/quic-go/quic-go"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/network/brew"
)

// quicALPN is the protocol negotiated for the Brew QUIC transport.
const quicALPN = "hq-29"

const (
	quicKeepAlive   = 5 * time.Second
	quicIdleTimeout = 30 * time.Second
)

// quicConn wraps a QUIC connection's reliable bidirectional stream for
// signalling, using Brew's length-prefixed framing. Voice's unreliable
// datagram channel is exposed separately via SendDatagram/ReceiveDatagram
// for callers that want it, rather than through the Conn interface.
type quicConn struct {
	conn   *quic.Conn
	stream *quic.Stream
}

func (c *quicConn) Send(payload []byte) error {
	return brew.WriteFrame(c.stream, payload)
}

func (c *quicConn) Receive(timeout time.Duration) ([]byte, error) {
	if err := c.stream.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	return brew.ReadFrame(c.stream)
}

func (c *quicConn) Close() error {
	_ = c.stream.Close()
	return c.conn.CloseWithError(0, "closing")
}

// SendDatagram sends one voice/unreliable payload on the connection's
// QUIC datagram channel.
func (c *quicConn) SendDatagram(payload []byte) error {
	return c.conn.SendDatagram(payload)
}

// ReceiveDatagram blocks for the next datagram from the peer.
func (c *quicConn) ReceiveDatagram(ctx context.Context) ([]byte, error) {
	return c.conn.ReceiveDatagram(ctx)
}

// DialQUIC returns a Dialer that opens a QUIC connection to addr,
// negotiating the Brew ALPN and opening a reliable bidirectional stream
// for signalling. insecureSkipVerify is for local/test-harness use only.
func DialQUIC(addr string, insecureSkipVerify bool) Dialer {
	return func(ctx context.Context) (Conn, error) {
		tlsConf := &tls.Config{
			NextProtos:         []string{quicALPN},
			InsecureSkipVerify: insecureSkipVerify, //nolint:gosec
		}
		quicConf := &quic.Config{
			KeepAlivePeriod: quicKeepAlive,
			MaxIdleTimeout:  quicIdleTimeout,
			EnableDatagrams: true,
		}

		conn, err := quic.DialAddr(ctx, addr, tlsConf, quicConf)
		if err != nil {
			return nil, err
		}
		stream, err := conn.OpenStreamSync(ctx)
		if err != nil {
			return nil, err
		}
		return &quicConn{conn: conn, stream: stream}, nil
	}
}
