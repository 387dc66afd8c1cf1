// Package transport carries Brew frames between this stack and the
// call-routing backend over TCP or QUIC. The worker runs on its own
// goroutine and talks to the protocol core through channels: a bounded
// request channel, and the reply channel each request carries; the core
// never touches transport state directly.
package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/web-rpi/tetra-bluestation-sub001/internal/tetra/network/brew"
)

// ErrClosed names the closed-worker condition. Nothing in this package
// returns it: once Requests is closed, Run closes the connection and
// returns.
var ErrClosed = errors.New("transport: worker closed")

// Request is one core→worker unit of work: a Brew frame payload to send,
// with the reply delivered back to ReplyTo.
type Request struct {
	Payload []byte
	ReplyTo chan<- Response
}

// Response is one worker→core reply, either a received frame or an
// error describing why none arrived.
type Response struct {
	Payload []byte
	Err     error
}

// Conn is the minimal reliable-stream contract a transport backend
// (TCP or QUIC reliable stream) must satisfy.
type Conn interface {
	Send(payload []byte) error
	Receive(timeout time.Duration) ([]byte, error)
	Close() error
}

// Dialer opens a fresh Conn to the backend; called once up front and
// again whenever the worker needs to reconnect.
type Dialer func(ctx context.Context) (Conn, error)

// Worker runs the blocking request/reply loop: wait for a core request,
// send it, block for the reply with a timeout,
// post the reply back. A send or receive failure drops the connection
// and the next request dials a fresh one; cancellation is by closing
// Requests.
type Worker struct {
	Requests       chan Request
	dial           Dialer
	connectTimeout time.Duration
	replyTimeout   time.Duration

	conn Conn
}

// NewWorker creates a Worker. connectTimeout bounds each dial attempt;
// replyTimeout bounds how long the worker waits for a reply to a sent
// request before reporting Timeout.
func NewWorker(dial Dialer, connectTimeout, replyTimeout time.Duration) *Worker {
	return &Worker{
		Requests:       make(chan Request, 16),
		dial:           dial,
		connectTimeout: connectTimeout,
		replyTimeout:   replyTimeout,
	}
}

// Run drives the worker loop until ctx is cancelled or Requests is
// closed. Intended to run on its own goroutine/OS thread for the
// lifetime of the process.
func (w *Worker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.closeConn()
			return
		case req, ok := <-w.Requests:
			if !ok {
				w.closeConn()
				return
			}
			w.handle(ctx, req)
		}
	}
}

func (w *Worker) handle(ctx context.Context, req Request) {
	if w.conn == nil {
		if err := w.reconnect(ctx); err != nil {
			req.ReplyTo <- Response{Err: fmt.Errorf("transport: connect failed: %w", err)}
			return
		}
	}

	if err := w.conn.Send(req.Payload); err != nil {
		slog.Warn("transport: send failed, will reconnect on next request", "err", err)
		w.closeConn()
		req.ReplyTo <- Response{Err: fmt.Errorf("transport: send failed: %w", err)}
		return
	}

	payload, err := w.conn.Receive(w.replyTimeout)
	if err != nil {
		slog.Warn("transport: receive failed, will reconnect on next request", "err", err)
		w.closeConn()
		req.ReplyTo <- Response{Err: fmt.Errorf("transport: receive failed: %w", err)}
		return
	}
	req.ReplyTo <- Response{Payload: payload}
}

func (w *Worker) reconnect(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, w.connectTimeout)
	defer cancel()
	conn, err := w.dial(dialCtx)
	if err != nil {
		return err
	}
	w.conn = conn
	return nil
}

func (w *Worker) closeConn() {
	if w.conn != nil {
		_ = w.conn.Close()
		w.conn = nil
	}
}

// tcpConn adapts a net.Conn to the Conn interface using Brew's
// length-prefixed framing.
type tcpConn struct {
	nc net.Conn
}

func (c *tcpConn) Send(payload []byte) error {
	return brew.WriteFrame(c.nc, payload)
}

func (c *tcpConn) Receive(timeout time.Duration) ([]byte, error) {
	if err := c.nc.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, err
	}
	return brew.ReadFrame(c.nc)
}

func (c *tcpConn) Close() error { return c.nc.Close() }

// DialTCP returns a Dialer that opens a plain TCP connection to addr and
// frames Brew payloads with a length prefix, the reliable-stream
// counterpart to DialQUIC.
func DialTCP(addr string) Dialer {
	return func(ctx context.Context) (Conn, error) {
		var d net.Dialer
		nc, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, err
		}
		return &tcpConn{nc: nc}, nil
	}
}
