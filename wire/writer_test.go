package wire

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestWriteTaggedGolden(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer) error
		want  []byte
	}{
		{
			name:  "int32 300 in field 1",
			write: func(w *Writer) error { return w.WriteInt32WithTag(MakeTag(1, WireVarint), 300) },
			want:  []byte{0x08, 0xAC, 0x02},
		},
		{
			name:  "string in field 2",
			write: func(w *Writer) error { return w.WriteStringWithTag(MakeTag(2, WireBytes), "testing") },
			want:  []byte{0x12, 0x07, 't', 'e', 's', 't', 'i', 'n', 'g'},
		},
		{
			name:  "sint32 -1 in field 3",
			write: func(w *Writer) error { return w.WriteSint32WithTag(MakeTag(3, WireVarint), -1) },
			want:  []byte{0x18, 0x01},
		},
		{
			name:  "fixed32 in field 4",
			write: func(w *Writer) error { return w.WriteFixed32WithTag(MakeTag(4, WireFixed32), 1) },
			want:  []byte{0x25, 0x01, 0x00, 0x00, 0x00},
		},
		{
			name:  "double in field 5",
			write: func(w *Writer) error { return w.WriteDoubleWithTag(MakeTag(5, WireFixed64), 1) },
			want:  []byte{0x29, 0, 0, 0, 0, 0, 0, 0xF0, 0x3F},
		},
		{
			name:  "empty bytes in field 16",
			write: func(w *Writer) error { return w.WriteBytesWithTag(MakeTag(16, WireBytes), nil) },
			want:  []byte{0x82, 0x01, 0x00},
		},
		{
			name: "packed varints in field 2",
			write: func(w *Writer) error {
				return WritePackedVarintWithTag(w, MakeTag(2, WireBytes), []int32{1, 2, 3})
			},
			want: []byte{0x12, 0x03, 0x01, 0x02, 0x03},
		},
		{
			name: "empty packed writes nothing",
			write: func(w *Writer) error {
				return WritePackedVarintWithTag(w, MakeTag(2, WireBytes), []int32{})
			},
			want: nil,
		},
		{
			name:  "bool true in field 1",
			write: func(w *Writer) error { return w.WriteBoolWithTag(MakeTag(1, WireVarint), true) },
			want:  []byte{0x08, 0x01},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			require.NoError(t, tt.write(w))
			assert.Equal(t, len(tt.want), buf.Len())
			if len(tt.want) > 0 {
				assert.Equal(t, tt.want, buf.Bytes())
			}
		})
	}
}

func TestWriteTag(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTag(MaxFieldNumber, WireFixed32))
	assert.Equal(t, protowire.AppendTag(nil, protowire.Number(MaxFieldNumber), protowire.Fixed32Type), buf.Bytes())
	assert.Equal(t, buf.Len(), SizeTag(MaxFieldNumber))

	assert.ErrorIs(t, w.WriteTag(0, WireVarint), ErrInvalidFieldNumber)
	assert.ErrorIs(t, w.WriteTag(MaxFieldNumber+1, WireVarint), ErrInvalidFieldNumber)
	assert.ErrorIs(t, w.WriteTag(1, WireStartGroup), ErrUnsupportedWireType)
	assert.ErrorIs(t, w.WriteTag(1, WireType(7)), ErrUnsupportedWireType)
}

func TestWriterWithoutByteWriter(t *testing.T) {
	// failingWriter with a large limit has no WriteByte or WriteString.
	dst := &failingWriter{limit: 1 << 20}
	w := NewWriter(dst)
	require.NoError(t, w.WriteVarint(1))
	require.NoError(t, w.WriteString("abc"))
	require.NoError(t, w.WriteBool(false))
	assert.Equal(t, int64(6), w.Count())
	assert.Equal(t, 6, dst.n)
}

func TestWriterIOFailure(t *testing.T) {
	for limit := 0; limit < sampleRecord().Size(); limit += 3 {
		w := NewWriter(&failingWriter{limit: limit})
		err := sampleRecord().MarshalWire(w)
		require.Error(t, err, "limit %d", limit)
		assert.Equal(t, KindIO, KindOf(err), "limit %d: %v", limit, err)
		assert.ErrorIs(t, err, errBoom)
		assert.LessOrEqual(t, w.Count(), int64(limit))
	}
}

func TestWriterShortWrite(t *testing.T) {
	w := NewWriter(shortWriter{})
	err := w.WriteFixed64(42)
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, int64(7), w.Count())

	err = NewWriter(shortWriter{}).WriteBool(true)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestWriteStringBadCount(t *testing.T) {
	dst := &inflatingStringWriter{}
	w := NewWriter(dst)
	err := w.WriteString("abc")
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, io.ErrShortWrite)
	// only the length prefix is counted
	assert.Equal(t, int64(1), w.Count())
}

func TestWriteMessageSizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf).WriteMessage(lyingRecord{})
	require.Error(t, err)
	assert.Equal(t, KindSizeMismatch, KindOf(err))
	assert.True(t, strings.Contains(err.Error(), "reported 1 bytes, wrote 3"), err.Error())

	cfg := DefaultConfig()
	cfg.CheckSize = false
	buf.Reset()
	require.NoError(t, NewWriterConfig(&buf, cfg).WriteMessage(lyingRecord{}))
	assert.Equal(t, []byte{0x01, 0x08, 0xAC, 0x02}, buf.Bytes())
}

func TestWriteMessageNested(t *testing.T) {
	rec := &testRecord{ID: 1, Child: &testRecord{Name: "x"}}

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).WriteMessageWithTag(MakeTag(9, WireBytes), rec))

	var want []byte
	want = protowire.AppendTag(want, 9, protowire.BytesType)
	inner := protowire.AppendTag(nil, 2, protowire.BytesType)
	inner = protowire.AppendString(inner, "x")
	outer := protowire.AppendTag(nil, 1, protowire.VarintType)
	outer = protowire.AppendVarint(outer, 1)
	outer = protowire.AppendTag(outer, 4, protowire.BytesType)
	outer = protowire.AppendBytes(outer, inner)
	want = protowire.AppendBytes(want, outer)

	assert.Equal(t, want, buf.Bytes())
	assert.Equal(t, len(want), SizeTag(9)+SizeMessage(rec))
}

func TestRecordSizeMatchesOutput(t *testing.T) {
	recs := []*testRecord{
		{},
		{ID: -1},
		{Values: []int64{}},
		{Child: &testRecord{}},
		sampleRecord(),
		{Name: strings.Repeat("x", 200), Blob: make([]byte, 20000)},
	}
	for i, rec := range recs {
		var buf bytes.Buffer
		w := NewWriter(&buf)
		require.NoError(t, rec.MarshalWire(w), "record %d", i)
		assert.Equal(t, rec.Size(), buf.Len(), "record %d", i)
		assert.Equal(t, int64(buf.Len()), w.Count(), "record %d", i)
	}
}
