package wire

import (
	"io"
)

// Writer emits protobuf wire data to an io.Writer. It holds no buffer of its
// own: every primitive reaches the destination before returning, and bytes
// already written are not rolled back when a later call fails. Callers that
// need all-or-nothing output should marshal into memory first (see Marshal).
//
// A Writer is not safe for concurrent use.
type Writer struct {
	w       io.Writer
	bw      io.ByteWriter // set when w can take single bytes cheaply
	count   int64
	cfg     Config
	scratch [MaxVarintLen]byte
}

// NewWriter creates a Writer on top of w using the current global Config.
func NewWriter(w io.Writer) *Writer {
	return NewWriterConfig(w, CurrentConfig())
}

// NewWriterConfig creates a Writer with an explicit configuration.
func NewWriterConfig(w io.Writer, cfg Config) *Writer {
	wr := &Writer{w: w, cfg: cfg}
	if bw, ok := w.(io.ByteWriter); ok {
		wr.bw = bw
	}
	return wr
}

// Count returns the number of bytes handed to the destination so far.
func (w *Writer) Count() int64 { return w.count }

func (w *Writer) write(p []byte) error {
	n, err := w.w.Write(p)
	return w.account(n, len(p), err)
}

// account records n of want bytes as written and turns a failed or short
// write into an ErrIO error. A count outside [0, want] is never trusted.
func (w *Writer) account(n, want int, err error) error {
	if n < 0 || n > want {
		return ioFailure(io.ErrShortWrite)
	}
	w.count += int64(n)
	if err != nil {
		return ioFailure(err)
	}
	if n < want {
		return ioFailure(io.ErrShortWrite)
	}
	return nil
}

func (w *Writer) writeByte(b byte) error {
	if w.bw == nil {
		w.scratch[0] = b
		return w.write(w.scratch[:1])
	}
	if err := w.bw.WriteByte(b); err != nil {
		return ioFailure(err)
	}
	w.count++
	return nil
}

// WriteTag writes the tag for a field. Field numbers outside
// [MinFieldNumber, MaxFieldNumber] and the group wire types are rejected.
func (w *Writer) WriteTag(num FieldNumber, typ WireType) error {
	if !num.Valid() {
		return ErrInvalidFieldNumber
	}
	if !typ.Supported() {
		return ErrUnsupportedWireType
	}
	return w.WriteVarint(uint64(MakeTag(num, typ)))
}

// writeRawTag writes a precomputed tag as generated code passes it.
func (w *Writer) writeRawTag(tag Tag) error {
	return w.WriteVarint(uint64(tag))
}
