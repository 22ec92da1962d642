package wire

// Reader decodes protobuf wire data from a caller-owned buffer without
// copying it. It tracks a read offset and the end of the active
// length-delimited region; 0 <= offset <= end <= len(buffer) always holds, and
// no method reads past end.
//
// A Reader is not safe for concurrent use.
type Reader struct {
	buf   []byte
	pos   int
	end   int
	depth int
	cfg   Config
}

// NewReader creates a reader over buf with the current global Config. The
// active region is the whole buffer.
func NewReader(buf []byte) *Reader {
	return NewReaderConfig(buf, CurrentConfig())
}

// NewReaderConfig creates a reader with an explicit configuration.
func NewReaderConfig(buf []byte, cfg Config) *Reader {
	return &Reader{buf: buf, end: len(buf), cfg: cfg}
}

// IsEOF reports whether the active region is fully consumed.
func (r *Reader) IsEOF() bool { return r.pos >= r.end }

// Offset returns the absolute read position in the buffer.
func (r *Reader) Offset() int { return r.pos }

// Len returns the number of unread bytes in the active region.
func (r *Reader) Len() int { return r.end - r.pos }

// next returns a view of the next n bytes and advances past them.
func (r *Reader) next(n int) ([]byte, error) {
	if n < 0 || n > r.end-r.pos {
		return nil, truncated("need %d bytes, have %d", n, r.end-r.pos)
	}
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadTag decodes a field tag. Field number zero, numbers above
// MaxFieldNumber and the group or reserved wire types are malformed.
func (r *Reader) ReadTag() (FieldNumber, WireType, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, 0, err
	}
	if v>>3 > uint64(MaxFieldNumber) {
		return 0, 0, ErrInvalidFieldNumber
	}
	num, typ := ParseTag(Tag(v))
	if num < MinFieldNumber {
		return 0, 0, ErrInvalidFieldNumber
	}
	if !typ.Supported() {
		return 0, 0, fmtWireType(typ)
	}
	return num, typ, nil
}

// readLen decodes a length prefix and checks it fits the active region.
func (r *Reader) readLen() (int, error) {
	v, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}
	if v > uint64(r.end-r.pos) {
		return 0, truncated("length %d exceeds %d remaining bytes", v, r.end-r.pos)
	}
	return int(v), nil
}

// enter narrows the active region to the next n bytes and returns the end to
// restore with leave.
func (r *Reader) enter(n int) int {
	outer := r.end
	r.end = r.pos + n
	return outer
}

// leave moves past the inner region and restores the outer end.
func (r *Reader) leave(outer int) {
	r.pos = r.end
	r.end = outer
}
