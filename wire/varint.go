package wire

// MaxVarintLen is the longest legal varint encoding of a 64-bit value.
const MaxVarintLen = 10

// AppendVarint appends the varint encoding of v to b.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// ConsumeVarint decodes a varint from the front of b and reports how many
// bytes it used.
func ConsumeVarint(b []byte) (uint64, int, error) {
	var result uint64
	for i := 0; i < MaxVarintLen; i++ {
		if i >= len(b) {
			return 0, 0, truncated("varint needs more than %d bytes", len(b))
		}
		c := b[i]
		// The tenth byte may only carry the top bit of a uint64.
		if i == MaxVarintLen-1 && c > 1 {
			return 0, 0, ErrVarintOverflow
		}
		result |= uint64(c&0x7F) << (7 * uint(i))
		if c < 0x80 {
			return result, i + 1, nil
		}
	}
	return 0, 0, ErrVarintOverflow
}

// SizeVarint returns the number of bytes needed to encode the given varint
func SizeVarint(v uint64) int {
	switch {
	case v < 1<<7:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<21:
		return 3
	case v < 1<<28:
		return 4
	case v < 1<<35:
		return 5
	case v < 1<<42:
		return 6
	case v < 1<<49:
		return 7
	case v < 1<<56:
		return 8
	case v < 1<<63:
		return 9
	default:
		return 10
	}
}

// SizeTag returns the encoded size of a tag for num.
func SizeTag(num FieldNumber) int { return SizeVarint(uint64(MakeTag(num, WireVarint))) }

// SizeInt32 is 10 for negative values: int32 is sign-extended to 64 bits.
func SizeInt32(v int32) int { return SizeVarint(uint64(v)) }
func SizeInt64(v int64) int { return SizeVarint(uint64(v)) }
func SizeUint32(v uint32) int { return SizeVarint(uint64(v)) }
func SizeUint64(v uint64) int { return SizeVarint(v) }
func SizeSint32(v int32) int { return SizeVarint(EncodeZigZag32(v)) }
func SizeSint64(v int64) int { return SizeVarint(EncodeZigZag64(v)) }
func SizeBool(bool) int { return 1 }
func SizeEnum(v int32) int { return SizeInt32(v) }

// DecodeZigZag32 decodes a zigzag-encoded 32-bit integer
func DecodeZigZag32(encoded uint64) int32 {
	return int32((uint32(encoded) >> 1) ^ uint32(-int32(encoded&1)))
}

// DecodeZigZag64 decodes a zigzag-encoded 64-bit integer
func DecodeZigZag64(encoded uint64) int64 {
	return int64((encoded >> 1) ^ uint64(-int64(encoded&1)))
}

// EncodeZigZag32 encodes a signed 32-bit integer using zigzag encoding
func EncodeZigZag32(v int32) uint64 {
	return uint64((uint32(v) << 1) ^ uint32(v>>31))
}

// EncodeZigZag64 encodes a signed 64-bit integer using zigzag encoding
func EncodeZigZag64(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// WRITER METHODS

// WriteVarint writes v as a varint.
func (w *Writer) WriteVarint(v uint64) error {
	if v < 0x80 {
		return w.writeByte(byte(v))
	}
	return w.write(AppendVarint(w.scratch[:0], v))
}

// WriteInt32 writes v sign-extended to 64 bits, so negatives take 10 bytes.
func (w *Writer) WriteInt32(v int32) error { return w.WriteVarint(uint64(v)) }

func (w *Writer) WriteInt64(v int64) error { return w.WriteVarint(uint64(v)) }
func (w *Writer) WriteUint32(v uint32) error { return w.WriteVarint(uint64(v)) }
func (w *Writer) WriteUint64(v uint64) error { return w.WriteVarint(v) }
func (w *Writer) WriteSint32(v int32) error { return w.WriteVarint(EncodeZigZag32(v)) }
func (w *Writer) WriteSint64(v int64) error { return w.WriteVarint(EncodeZigZag64(v)) }
func (w *Writer) WriteEnum(v int32) error { return w.WriteInt32(v) }

// WriteBool writes 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) error {
	if v {
		return w.writeByte(1)
	}
	return w.writeByte(0)
}

// READER METHODS

// ReadVarint decodes a varint from the current position
func (r *Reader) ReadVarint() (uint64, error) {
	// Fast path for the common single-byte case.
	if r.pos < r.end && r.buf[r.pos] < 0x80 {
		v := uint64(r.buf[r.pos])
		r.pos++
		return v, nil
	}
	v, n, err := ConsumeVarint(r.buf[r.pos:r.end])
	if err != nil {
		return 0, err
	}
	r.pos += n
	return v, nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadVarint()
	return int32(v), err
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadVarint()
	return int64(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	v, err := r.ReadVarint()
	return uint32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	return r.ReadVarint()
}

// ReadSint32 decodes a zigzag-encoded signed varint as int32
func (r *Reader) ReadSint32() (int32, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag32(v), nil
}

// ReadSint64 decodes a zigzag-encoded signed varint as int64
func (r *Reader) ReadSint64() (int64, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	return DecodeZigZag64(v), nil
}

// ReadBool treats any non-zero varint as true.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

func (r *Reader) ReadEnum() (int32, error) { return r.ReadInt32() }
