package brew

import (
	"encoding/binary"
	"fmt"
	"io"
)

// WriteFrame writes a single length-prefixed (u32 big-endian) Brew frame
// to a reliable stream (TCP or a QUIC reliable stream).
func WriteFrame(w io.Writer, payload []byte) error {
	if len(payload) > MaxFrameLength {
		return ErrFrameTooLarge
	}
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("brew: writing frame length: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("brew: writing frame payload: %w", err)
	}
	return nil
}

// ReadFrame reads a single length-prefixed Brew frame from a reliable
// stream.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("brew: reading frame length: %w", err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	if n > MaxFrameLength {
		return nil, ErrFrameTooLarge
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("brew: reading frame payload: %w", err)
	}
	return payload, nil
}
