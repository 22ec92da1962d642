package wire

import "fmt"

func fmtWireType(t WireType) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedWireType, t)
}

// SkipField consumes exactly the value bytes of a field with wire type typ,
// leaving the reader at the next tag. Records call it for tags they do not
// recognise.
func (r *Reader) SkipField(typ WireType) error {
	_, err := r.skip(typ)
	return err
}

// skip advances past one value and returns its offset.
func (r *Reader) skip(typ WireType) (int, error) {
	start := r.pos
	switch typ {
	case WireVarint:
		_, n, err := ConsumeVarint(r.buf[r.pos:r.end])
		if err != nil {
			return 0, err
		}
		r.pos += n
	case WireFixed64:
		if _, err := r.next(SizeFixed64); err != nil {
			return 0, err
		}
	case WireFixed32:
		if _, err := r.next(SizeFixed32); err != nil {
			return 0, err
		}
	case WireBytes:
		n, err := r.readLen()
		if err != nil {
			r.pos = start
			return 0, err
		}
		r.pos += n
	default:
		return 0, fmtWireType(typ)
	}
	return start, nil
}

// ReadRaw skips a field like SkipField and returns its value bytes (including
// the length prefix for WireBytes) as a view into the buffer, so a record can
// keep fields it does not know and write them back with WriteRaw.
func (r *Reader) ReadRaw(num FieldNumber, typ WireType) (RawValue, error) {
	start, err := r.skip(typ)
	if err != nil {
		return RawValue{}, err
	}
	return RawValue{
		FieldNumber: num,
		WireType:    typ,
		RawData:     r.buf[start:r.pos:r.pos],
	}, nil
}

// WriteRaw writes a field captured by ReadRaw: its tag, then its value bytes
// unchanged.
func (w *Writer) WriteRaw(v RawValue) error {
	if err := w.WriteTag(v.FieldNumber, v.WireType); err != nil {
		return err
	}
	if len(v.RawData) == 0 {
		return nil
	}
	return w.write(v.RawData)
}
