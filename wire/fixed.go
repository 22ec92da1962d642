package wire

import (
	"encoding/binary"
	"math"
)

const (
	SizeFixed32 = 4
	SizeFixed64 = 8
)

// WRITER METHODS

// WriteFixed32 writes v as 4 little-endian bytes.
func (w *Writer) WriteFixed32(v uint32) error {
	binary.LittleEndian.PutUint32(w.scratch[:4], v)
	return w.write(w.scratch[:4])
}

// WriteFixed64 writes v as 8 little-endian bytes.
func (w *Writer) WriteFixed64(v uint64) error {
	binary.LittleEndian.PutUint64(w.scratch[:8], v)
	return w.write(w.scratch[:8])
}

func (w *Writer) WriteSfixed32(v int32) error { return w.WriteFixed32(uint32(v)) }
func (w *Writer) WriteSfixed64(v int64) error { return w.WriteFixed64(uint64(v)) }
func (w *Writer) WriteFloat(v float32) error { return w.WriteFixed32(math.Float32bits(v)) }
func (w *Writer) WriteDouble(v float64) error { return w.WriteFixed64(math.Float64bits(v)) }

// READER METHODS

// ReadFixed32 decodes a 32-bit fixed-width value
func (r *Reader) ReadFixed32() (uint32, error) {
	b, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadFixed64 decodes a 64-bit fixed-width value
func (r *Reader) ReadFixed64() (uint64, error) {
	b, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (r *Reader) ReadSfixed32() (int32, error) {
	v, err := r.ReadFixed32()
	return int32(v), err
}

func (r *Reader) ReadSfixed64() (int64, error) {
	v, err := r.ReadFixed64()
	return int64(v), err
}

func (r *Reader) ReadFloat() (float32, error) {
	v, err := r.ReadFixed32()
	return math.Float32frombits(v), err
}

func (r *Reader) ReadDouble() (float64, error) {
	v, err := r.ReadFixed64()
	return math.Float64frombits(v), err
}
