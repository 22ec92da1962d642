package wire

// Map fields travel as repeated nested messages, one per entry, with the key
// in field 1 and the value in field 2.

const (
	mapKeyField   FieldNumber = 1
	mapValueField FieldNumber = 2
)

// MapEntry describes the key and value kinds of a map field.
type MapEntry[K, V any] struct {
	Key   Element[K]
	Value Element[V]
}

// Size returns the payload size of one entry, without tag or length prefix.
func (e MapEntry[K, V]) Size(k K, v V) int {
	return SizeTag(mapKeyField) + e.Key.Size(k) + SizeTag(mapValueField) + e.Value.Size(v)
}

// SizeField returns the full encoded size of one entry under num.
func (e MapEntry[K, V]) SizeField(num FieldNumber, k K, v V) int {
	n := e.Size(k, v)
	return SizeTag(num) + SizeVarint(uint64(n)) + n
}

// WriteWithTag writes one entry as a nested message under tag.
func (e MapEntry[K, V]) WriteWithTag(w *Writer, tag Tag, k K, v V) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	if err := w.WriteVarint(uint64(e.Size(k, v))); err != nil {
		return err
	}
	if err := w.WriteVarint(uint64(MakeTag(mapKeyField, e.Key.WireType))); err != nil {
		return err
	}
	if err := e.Key.Write(w, k); err != nil {
		return err
	}
	if err := w.WriteVarint(uint64(MakeTag(mapValueField, e.Value.WireType))); err != nil {
		return err
	}
	return e.Value.Write(w, v)
}

// Read decodes one length-delimited entry. A missing key leaves the zero
// value; a missing value comes from Value.New when set, so message values
// are never nil. Unknown fields inside the entry are skipped.
func (e MapEntry[K, V]) Read(r *Reader) (K, V, error) {
	var (
		key K
		val V
	)
	n, err := r.readLen()
	if err != nil {
		return key, val, err
	}
	outer := r.enter(n)
	defer r.leave(outer)

	seen := false
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return key, val, err
		}
		switch {
		case num == mapKeyField && typ == e.Key.WireType:
			if key, err = e.Key.Read(r); err != nil {
				return key, val, WrapDecodingError(err, "key")
			}
		case num == mapValueField && typ == e.Value.WireType:
			if val, err = e.Value.Read(r); err != nil {
				return key, val, WrapDecodingError(err, "value")
			}
			seen = true
		default:
			if err := r.SkipField(typ); err != nil {
				return key, val, err
			}
		}
	}
	if !seen && e.Value.New != nil {
		val = e.Value.New()
	}
	return key, val, nil
}
