package wire

import (
	"encoding/binary"
	"unsafe"

	"golang.org/x/exp/constraints"
)

// FixedWidth covers the element kinds that pack as raw 4 or 8 byte values:
// fixed32, sfixed32, float, fixed64, sfixed64 and double.
type FixedWidth interface {
	~uint32 | ~int32 | ~float32 | ~uint64 | ~int64 | ~float64
}

// hostLittleEndian gates the raw-memory fast path of WritePackedFixed.
var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// WritePacked writes vs as the payload of a packed field: the summed element
// sizes once as a length prefix, then each element with no tag. Nothing is
// written for an empty slice.
func WritePacked[T any](w *Writer, vs []T, write func(*Writer, T) error, size func(T) int) error {
	if len(vs) == 0 {
		return nil
	}
	n := 0
	for _, v := range vs {
		n += size(v)
	}
	if err := w.WriteVarint(uint64(n)); err != nil {
		return err
	}
	for _, v := range vs {
		if err := write(w, v); err != nil {
			return err
		}
	}
	return nil
}

// WritePackedWithTag is WritePacked preceded by tag, which must use
// WireBytes. An empty slice writes nothing at all, not even the tag.
func WritePackedWithTag[T any](w *Writer, tag Tag, vs []T, write func(*Writer, T) error, size func(T) int) error {
	if len(vs) == 0 {
		return nil
	}
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return WritePacked(w, vs, write, size)
}

// SizePacked returns the payload size of a packed field, without tag or
// length prefix.
func SizePacked[T any](vs []T, size func(T) int) int {
	n := 0
	for _, v := range vs {
		n += size(v)
	}
	return n
}

// SizePackedField returns the full encoded size of a packed field for num:
// tag, length prefix and payload, or zero when vs is empty.
func SizePackedField(num FieldNumber, payload int) int {
	if payload == 0 {
		return 0
	}
	return SizeTag(num) + SizeVarint(uint64(payload)) + payload
}

// SizePackedVarint returns the payload size of vs packed as plain varints
// (int32, int64, uint32, uint64, enum).
func SizePackedVarint[T constraints.Integer](vs []T) int {
	n := 0
	for _, v := range vs {
		n += SizeVarint(uint64(v))
	}
	return n
}

// WritePackedVarintWithTag packs integers as plain varints. Signed values are
// sign-extended, matching int32/int64/enum.
func WritePackedVarintWithTag[T constraints.Integer](w *Writer, tag Tag, vs []T) error {
	if len(vs) == 0 {
		return nil
	}
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	if err := w.WriteVarint(uint64(SizePackedVarint(vs))); err != nil {
		return err
	}
	for _, v := range vs {
		if err := w.WriteVarint(uint64(v)); err != nil {
			return err
		}
	}
	return nil
}

// WritePackedSint32WithTag packs zigzag-encoded sint32 values.
func (w *Writer) WritePackedSint32WithTag(tag Tag, vs []int32) error {
	return WritePackedWithTag(w, tag, vs, (*Writer).WriteSint32, SizeSint32)
}

// WritePackedSint64WithTag packs zigzag-encoded sint64 values.
func (w *Writer) WritePackedSint64WithTag(tag Tag, vs []int64) error {
	return WritePackedWithTag(w, tag, vs, (*Writer).WriteSint64, SizeSint64)
}

// WritePackedBoolWithTag packs bools, one byte each.
func (w *Writer) WritePackedBoolWithTag(tag Tag, vs []bool) error {
	return WritePackedWithTag(w, tag, vs, (*Writer).WriteBool, SizeBool)
}

// SizePackedFixed returns the payload size of vs packed as fixed-width values.
func SizePackedFixed[T FixedWidth](vs []T) int {
	var zero T
	return len(vs) * int(unsafe.Sizeof(zero))
}

// WritePackedFixedWithTag packs fixed-width values as raw little-endian bytes.
// Elements are encoded one by one unless Config.PackedFastPath is set and the
// host is little-endian, in which case the slice memory is written directly.
func WritePackedFixedWithTag[T FixedWidth](w *Writer, tag Tag, vs []T) error {
	if len(vs) == 0 {
		return nil
	}
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return WritePackedFixed(w, vs)
}

// WritePackedFixed is WritePackedFixedWithTag without the tag. Unlike
// WritePacked it writes a zero length prefix for an empty slice.
func WritePackedFixed[T FixedWidth](w *Writer, vs []T) error {
	n := SizePackedFixed(vs)
	if err := w.WriteVarint(uint64(n)); err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if w.cfg.PackedFastPath && hostLittleEndian {
		return w.write(unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(vs))), n))
	}
	for _, v := range vs {
		var err error
		if unsafe.Sizeof(v) == SizeFixed32 {
			err = w.WriteFixed32(fixedBits32(v))
		} else {
			err = w.WriteFixed64(fixedBits64(v))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// fixedBits32 returns the in-memory bits of a 4-byte element. Bits are
// independent of byte order, so encoding them with binary.LittleEndian is
// portable.
func fixedBits32[T FixedWidth](v T) uint32 { return *(*uint32)(unsafe.Pointer(&v)) }

func fixedBits64[T FixedWidth](v T) uint64 { return *(*uint64)(unsafe.Pointer(&v)) }

// READER FUNCTIONS

// ReadPacked decodes one packed payload, appending each element to dst.
// An element that runs past the payload fails with ErrTruncated.
func ReadPacked[T any](r *Reader, dst []T, read func(*Reader) (T, error)) ([]T, error) {
	n, err := r.readLen()
	if err != nil {
		return dst, err
	}
	outer := r.enter(n)
	defer r.leave(outer)
	for !r.IsEOF() {
		v, err := read(r)
		if err != nil {
			return dst, err
		}
		dst = append(dst, v)
	}
	return dst, nil
}

// ReadPackedVarint decodes packed plain varints, truncating each to T.
func ReadPackedVarint[T constraints.Integer](r *Reader, dst []T) ([]T, error) {
	return ReadPacked(r, dst, func(r *Reader) (T, error) {
		v, err := r.ReadVarint()
		return T(v), err
	})
}

func (r *Reader) ReadPackedSint32(dst []int32) ([]int32, error) {
	return ReadPacked(r, dst, (*Reader).ReadSint32)
}

func (r *Reader) ReadPackedSint64(dst []int64) ([]int64, error) {
	return ReadPacked(r, dst, (*Reader).ReadSint64)
}

func (r *Reader) ReadPackedBool(dst []bool) ([]bool, error) {
	return ReadPacked(r, dst, (*Reader).ReadBool)
}

// ReadPackedFixed decodes packed fixed-width values. A payload whose length is
// not a multiple of the element width fails with ErrTruncated.
func ReadPackedFixed[T FixedWidth](r *Reader, dst []T) ([]T, error) {
	n, err := r.readLen()
	if err != nil {
		return dst, err
	}
	var zero T
	width := int(unsafe.Sizeof(zero))
	if n%width != 0 {
		return dst, truncated("packed payload of %d bytes is not a multiple of %d", n, width)
	}
	b, err := r.next(n)
	if err != nil {
		return dst, err
	}
	dst = growSlice(dst, n/width)
	for i := 0; i < len(b); i += width {
		var v T
		if width == SizeFixed32 {
			*(*uint32)(unsafe.Pointer(&v)) = binary.LittleEndian.Uint32(b[i:])
		} else {
			*(*uint64)(unsafe.Pointer(&v)) = binary.LittleEndian.Uint64(b[i:])
		}
		dst = append(dst, v)
	}
	return dst, nil
}

func growSlice[T any](s []T, n int) []T {
	if cap(s)-len(s) >= n {
		return s
	}
	grown := make([]T, len(s), len(s)+n)
	copy(grown, s)
	return grown
}

// Element bundles how one value kind is written, sized and read, so packed
// and map helpers can be parameterised by kind.
type Element[T any] struct {
	WireType WireType
	Write    func(*Writer, T) error
	Size     func(T) int
	Read     func(*Reader) (T, error)
	// New, when set, returns the value a map entry holds if its value field
	// is absent. Scalar kinds leave it nil and fall back to T's zero value.
	New func() T
}

func scalar[T any](wt WireType, write func(*Writer, T) error, size func(T) int, read func(*Reader) (T, error)) Element[T] {
	return Element[T]{WireType: wt, Write: write, Size: size, Read: read}
}

var (
	Int32Element    = scalar(WireVarint, (*Writer).WriteInt32, SizeInt32, (*Reader).ReadInt32)
	Int64Element    = scalar(WireVarint, (*Writer).WriteInt64, SizeInt64, (*Reader).ReadInt64)
	Uint32Element   = scalar(WireVarint, (*Writer).WriteUint32, SizeUint32, (*Reader).ReadUint32)
	Uint64Element   = scalar(WireVarint, (*Writer).WriteUint64, SizeUint64, (*Reader).ReadUint64)
	Sint32Element   = scalar(WireVarint, (*Writer).WriteSint32, SizeSint32, (*Reader).ReadSint32)
	Sint64Element   = scalar(WireVarint, (*Writer).WriteSint64, SizeSint64, (*Reader).ReadSint64)
	BoolElement     = scalar(WireVarint, (*Writer).WriteBool, SizeBool, (*Reader).ReadBool)
	EnumElement     = scalar(WireVarint, (*Writer).WriteEnum, SizeEnum, (*Reader).ReadEnum)
	Fixed32Element  = scalar(WireFixed32, (*Writer).WriteFixed32, fixedSize32[uint32], (*Reader).ReadFixed32)
	Fixed64Element  = scalar(WireFixed64, (*Writer).WriteFixed64, fixedSize64[uint64], (*Reader).ReadFixed64)
	Sfixed32Element = scalar(WireFixed32, (*Writer).WriteSfixed32, fixedSize32[int32], (*Reader).ReadSfixed32)
	Sfixed64Element = scalar(WireFixed64, (*Writer).WriteSfixed64, fixedSize64[int64], (*Reader).ReadSfixed64)
	FloatElement    = scalar(WireFixed32, (*Writer).WriteFloat, fixedSize32[float32], (*Reader).ReadFloat)
	DoubleElement   = scalar(WireFixed64, (*Writer).WriteDouble, fixedSize64[float64], (*Reader).ReadDouble)
	StringElement   = scalar(WireBytes, (*Writer).WriteString, SizeString, (*Reader).ReadString)
	BytesElement    = scalar(WireBytes, (*Writer).WriteBytes, SizeBytes, (*Reader).ReadBytes)
)

func fixedSize32[T any](T) int { return SizeFixed32 }
func fixedSize64[T any](T) int { return SizeFixed64 }

// MessageElement describes a nested message kind. newMsg allocates the
// record each decoded value is read into.
func MessageElement[M interface {
	Writable
	Readable
}](newMsg func() M) Element[M] {
	return Element[M]{
		WireType: WireBytes,
		Write:    func(w *Writer, m M) error { return w.WriteMessage(m) },
		Size:     func(m M) int { return SizeMessage(m) },
		Read: func(r *Reader) (M, error) {
			m := newMsg()
			err := r.ReadMessage(m)
			return m, err
		},
		New: newMsg,
	}
}
