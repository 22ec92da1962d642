package wire

import (
	"bytes"
	"errors"
)

// testRecord is a hand-written record exercising the common field kinds.
type testRecord struct {
	ID     int32
	Name   string
	Values []int64
	Child  *testRecord
	Score  float64
	Blob   []byte
}

var (
	tagRecordID     = MakeTag(1, WireVarint)
	tagRecordName   = MakeTag(2, WireBytes)
	tagRecordValues = MakeTag(3, WireBytes)
	tagRecordChild  = MakeTag(4, WireBytes)
	tagRecordScore  = MakeTag(5, WireFixed64)
	tagRecordBlob   = MakeTag(6, WireBytes)
)

func (m *testRecord) Size() int {
	n := 0
	if m.ID != 0 {
		n += SizeTag(1) + SizeInt32(m.ID)
	}
	if m.Name != "" {
		n += SizeTag(2) + SizeString(m.Name)
	}
	n += SizePackedField(3, SizePacked(m.Values, SizeSint64))
	if m.Child != nil {
		n += SizeTag(4) + SizeMessage(m.Child)
	}
	if m.Score != 0 {
		n += SizeTag(5) + SizeFixed64
	}
	if len(m.Blob) > 0 {
		n += SizeTag(6) + SizeBytes(m.Blob)
	}
	return n
}

func (m *testRecord) MarshalWire(w *Writer) error {
	if m.ID != 0 {
		if err := w.WriteInt32WithTag(tagRecordID, m.ID); err != nil {
			return err
		}
	}
	if m.Name != "" {
		if err := w.WriteStringWithTag(tagRecordName, m.Name); err != nil {
			return err
		}
	}
	if err := w.WritePackedSint64WithTag(tagRecordValues, m.Values); err != nil {
		return err
	}
	if m.Child != nil {
		if err := w.WriteMessageWithTag(tagRecordChild, m.Child); err != nil {
			return WrapEncodingError(err, "child")
		}
	}
	if m.Score != 0 {
		if err := w.WriteDoubleWithTag(tagRecordScore, m.Score); err != nil {
			return err
		}
	}
	if len(m.Blob) > 0 {
		if err := w.WriteBytesWithTag(tagRecordBlob, m.Blob); err != nil {
			return err
		}
	}
	return nil
}

func (m *testRecord) UnmarshalWire(r *Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch {
		case num == 1 && typ == WireVarint:
			if m.ID, err = r.ReadInt32(); err != nil {
				return WrapDecodingError(err, "id")
			}
		case num == 2 && typ == WireBytes:
			if m.Name, err = r.ReadString(); err != nil {
				return WrapDecodingError(err, "name")
			}
		case num == 3 && typ == WireBytes:
			if m.Values, err = r.ReadPackedSint64(m.Values); err != nil {
				return WrapDecodingError(err, "values")
			}
		case num == 3 && typ == WireVarint:
			v, err := r.ReadSint64()
			if err != nil {
				return WrapDecodingError(err, "values")
			}
			m.Values = append(m.Values, v)
		case num == 4 && typ == WireBytes:
			if m.Child == nil {
				m.Child = &testRecord{}
			}
			if err := r.ReadMessage(m.Child); err != nil {
				return WrapDecodingError(err, "child")
			}
		case num == 5 && typ == WireFixed64:
			if m.Score, err = r.ReadDouble(); err != nil {
				return WrapDecodingError(err, "score")
			}
		case num == 6 && typ == WireBytes:
			if m.Blob, err = r.ReadBytes(); err != nil {
				return WrapDecodingError(err, "blob")
			}
		default:
			if err := r.SkipField(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *testRecord) equal(o *testRecord) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.ID != o.ID || m.Name != o.Name || m.Score != o.Score || !bytes.Equal(m.Blob, o.Blob) {
		return false
	}
	if len(m.Values) != len(o.Values) {
		return false
	}
	for i := range m.Values {
		if m.Values[i] != o.Values[i] {
			return false
		}
	}
	return m.Child.equal(o.Child)
}

func sampleRecord() *testRecord {
	return &testRecord{
		ID:     -7,
		Name:   "héllo",
		Values: []int64{0, -1, 1, 1 << 40, -1 << 62},
		Child: &testRecord{
			ID:    300,
			Name:  "child",
			Child: &testRecord{Blob: []byte{0, 1, 2}},
		},
		Score: 2.5,
		Blob:  []byte("blob"),
	}
}

// lyingRecord reports one byte but writes three.
type lyingRecord struct{}

func (lyingRecord) Size() int { return 1 }

func (lyingRecord) MarshalWire(w *Writer) error {
	return w.WriteInt32WithTag(MakeTag(1, WireVarint), 300)
}

// negativeRecord reports a size no encoding can have.
type negativeRecord struct{}

func (negativeRecord) Size() int { return -5 }

func (negativeRecord) MarshalWire(*Writer) error { return nil }

// inflatingStringWriter claims to have written more of a string than it was
// given.
type inflatingStringWriter struct{ bytes.Buffer }

func (s *inflatingStringWriter) WriteString(v string) (int, error) {
	s.Buffer.WriteString(v)
	return len(v) + 1, nil
}

var errBoom = errors.New("boom")

// failingWriter accepts limit bytes, then fails.
type failingWriter struct {
	limit int
	n     int
}

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.n+len(p) > f.limit {
		k := f.limit - f.n
		f.n = f.limit
		return k, errBoom
	}
	f.n += len(p)
	return len(p), nil
}

// shortWriter drops the last byte of every write without reporting an error.
type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return len(p) - 1, nil
}
