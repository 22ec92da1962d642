package wire

import (
	"fmt"
	"io"
	"slices"
)

// appendWriter is the in-memory destination used by Marshal. It never fails.
type appendWriter struct {
	b []byte
}

func (a *appendWriter) Write(p []byte) (int, error) {
	a.b = append(a.b, p...)
	return len(p), nil
}

func (a *appendWriter) WriteByte(c byte) error {
	a.b = append(a.b, c)
	return nil
}

func (a *appendWriter) WriteString(s string) (int, error) {
	a.b = append(a.b, s...)
	return len(s), nil
}

// Marshal encodes m into a new buffer of exactly m.Size() bytes.
func Marshal(m Writable) ([]byte, error) {
	return MarshalAppend(nil, m)
}

// MarshalAppend appends the encoding of m to b. On error the original b is
// returned unchanged in length.
func MarshalAppend(b []byte, m Writable) ([]byte, error) {
	size := m.Size()
	if size < 0 {
		return b, negativeSize(m, size)
	}
	start := len(b)
	aw := &appendWriter{b: slices.Grow(b, size)}
	w := NewWriter(aw)
	if err := m.MarshalWire(w); err != nil {
		return b, err
	}
	if w.cfg.CheckSize && len(aw.b)-start != size {
		return b, fmt.Errorf("%w: %T reported %d bytes, wrote %d", ErrSizeMismatch, m, size, len(aw.b)-start)
	}
	return aw.b, nil
}

// Unmarshal decodes data into m. The whole of data is one message; byte
// fields of m may alias data afterwards.
func Unmarshal(data []byte, m Readable) error {
	return m.UnmarshalWire(NewReader(data))
}

// WriteDelimited writes m to dst as one length-prefixed frame. The frame is
// assembled in memory first so dst receives it in a single Write; a sequence
// of frames is read back with repeated Reader.ReadMessage calls.
func WriteDelimited(dst io.Writer, m Writable) error {
	size := m.Size()
	if size < 0 {
		return negativeSize(m, size)
	}
	frame := AppendVarint(make([]byte, 0, SizeVarint(uint64(size))+size), uint64(size))
	frame, err := MarshalAppend(frame, m)
	if err != nil {
		return err
	}
	n, err := dst.Write(frame)
	if err != nil {
		return ioFailure(err)
	}
	if n < len(frame) {
		return ioFailure(io.ErrShortWrite)
	}
	return nil
}

func negativeSize(m Writable, size int) error {
	return fmt.Errorf("%w: %T reported %d bytes", ErrSizeMismatch, m, size)
}
