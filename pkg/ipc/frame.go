package ipc

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize bounds the payload of a single frame.
const MaxFrameSize = 1 << 12

const frameHeaderSize = 10

// WriteFrame writes one frame: handle (uint64 LE), payload length
// (uint16 LE), payload.
func WriteFrame(w io.Writer, h Handle, payload []byte) error {
	if len(payload) > MaxFrameSize {
		return ErrFrameTooLarge
	}
	buf := make([]byte, frameHeaderSize, frameHeaderSize+len(payload))
	binary.LittleEndian.PutUint64(buf, uint64(h))
	binary.LittleEndian.PutUint16(buf[8:], uint16(len(payload)))
	_, err := w.Write(append(buf, payload...))
	return err
}

// ReadFrame reads one frame into buf, which must hold MaxFrameSize bytes,
// and returns the handle and the payload slice of buf.
func ReadFrame(r io.Reader, buf []byte) (Handle, []byte, error) {
	var header [frameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, err
	}
	h := Handle(binary.LittleEndian.Uint64(header[:]))
	n := int(binary.LittleEndian.Uint16(header[8:]))
	if n > MaxFrameSize || n > len(buf) {
		return 0, nil, ErrFrameTooLarge
	}
	if _, err := io.ReadFull(r, buf[:n]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, nil, fmt.Errorf("frame payload: %w", err)
	}
	return h, buf[:n], nil
}

// Serve reads frames from r and dispatches them until r is exhausted or
// ctx is done. Delivery errors are passed to onError, if set, and do not
// stop the loop. A clean end of stream returns nil.
func (reg *Registry) Serve(ctx context.Context, r io.Reader, onError func(Handle, error)) error {
	buf := make([]byte, MaxFrameSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		h, payload, err := ReadFrame(r, buf)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := reg.Dispatch(h, payload); err != nil && onError != nil {
			onError(h, err)
		}
	}
}
