package wire

import (
	"fmt"
)

// Writable is implemented by records that can serialize themselves.
type Writable interface {
	// Size returns the exact number of bytes MarshalWire emits, excluding
	// any length prefix an enclosing message adds.
	Size() int
	// MarshalWire writes the record's fields, conventionally in ascending
	// field-number order.
	MarshalWire(w *Writer) error
}

// Readable is implemented by records that can populate themselves from the
// active region of a Reader. UnmarshalWire runs the decode loop: read a tag,
// dispatch on (field number, wire type), fall back to SkipField, and stop at
// IsEOF. Fields already set are overwritten (scalars) or appended to
// (repeated); a record left half-populated by an error must be discarded.
type Readable interface {
	UnmarshalWire(r *Reader) error
}

// SizeMessage returns the size of m including its length prefix.
func SizeMessage(m Writable) int {
	n := m.Size()
	return SizeVarint(uint64(n)) + n
}

// WriteMessage writes m's size as a varint followed by m's fields. With
// Config.CheckSize set, a record that writes more or fewer bytes than it
// reported fails with ErrSizeMismatch; the bytes stay written either way.
func (w *Writer) WriteMessage(m Writable) error {
	size := m.Size()
	if size < 0 {
		return negativeSize(m, size)
	}
	if err := w.WriteVarint(uint64(size)); err != nil {
		return err
	}
	start := w.count
	if err := m.MarshalWire(w); err != nil {
		return err
	}
	if w.cfg.CheckSize {
		if written := w.count - start; written != int64(size) {
			return fmt.Errorf("%w: %T reported %d bytes, wrote %d", ErrSizeMismatch, m, size, written)
		}
	}
	return nil
}

// ReadMessage decodes a length-delimited nested message into m. m only sees
// the nested region; afterwards the reader continues right after it.
func (r *Reader) ReadMessage(m Readable) error {
	n, err := r.readLen()
	if err != nil {
		return err
	}
	if r.cfg.MaxDepth > 0 && r.depth >= r.cfg.MaxDepth {
		return ErrDepthExceeded
	}
	outer := r.enter(n)
	r.depth++
	err = m.UnmarshalWire(r)
	r.depth--
	r.leave(outer)
	return err
}
