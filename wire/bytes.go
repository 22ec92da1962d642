package wire

import (
	"io"
	"unicode/utf8"
)

// SizeBytes returns the size needed to encode the given bytes
func SizeBytes(data []byte) int {
	return SizeVarint(uint64(len(data))) + len(data)
}

// SizeString returns the size needed to encode the given string
func SizeString(s string) int {
	return SizeVarint(uint64(len(s))) + len(s)
}

// WRITER METHODS

// WriteBytes writes len(data) as a varint followed by data.
func (w *Writer) WriteBytes(data []byte) error {
	if err := w.WriteVarint(uint64(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return w.write(data)
}

// WriteString writes s like WriteBytes. UTF-8 validity is the caller's
// responsibility.
func (w *Writer) WriteString(s string) error {
	if err := w.WriteVarint(uint64(len(s))); err != nil {
		return err
	}
	if len(s) == 0 {
		return nil
	}
	if sw, ok := w.w.(io.StringWriter); ok {
		n, err := sw.WriteString(s)
		return w.account(n, len(s), err)
	}
	return w.write([]byte(s))
}

// READER METHODS

// ReadBytes returns a view into the reader's buffer; the slice is valid as
// long as the buffer is and must be copied if the caller wants to mutate it.
func (r *Reader) ReadBytes() ([]byte, error) {
	n, err := r.readLen()
	if err != nil {
		return nil, err
	}
	return r.next(n)
}

// ReadString decodes a length-delimited string. Go strings are immutable, so
// unlike ReadBytes this copies the payload.
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	if err != nil {
		return "", err
	}
	if r.cfg.StrictUTF8 && !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}
