package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestReadTag(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantNum FieldNumber
		wantTyp WireType
		wantErr error
	}{
		{name: "field 1 varint", data: []byte{0x08}, wantNum: 1, wantTyp: WireVarint},
		{name: "field 2 bytes", data: []byte{0x12}, wantNum: 2, wantTyp: WireBytes},
		{name: "field 16 fixed32", data: []byte{0x85, 0x01}, wantNum: 16, wantTyp: WireFixed32},
		{name: "max field", data: protowire.AppendTag(nil, protowire.MaxValidNumber, protowire.Fixed64Type), wantNum: MaxFieldNumber, wantTyp: WireFixed64},
		{name: "field zero", data: []byte{0x00}, wantErr: ErrInvalidFieldNumber},
		{name: "field too large", data: AppendVarint(nil, uint64(MaxFieldNumber+1)<<3), wantErr: ErrInvalidFieldNumber},
		{name: "start group", data: []byte{0x0B}, wantErr: ErrUnsupportedWireType},
		{name: "end group", data: []byte{0x0C}, wantErr: ErrUnsupportedWireType},
		{name: "wire type 6", data: []byte{0x0E}, wantErr: ErrUnsupportedWireType},
		{name: "wire type 7", data: []byte{0x0F}, wantErr: ErrUnsupportedWireType},
		{name: "truncated", data: []byte{0x80}, wantErr: ErrTruncated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			num, typ, err := NewReader(tt.data).ReadTag()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNum, num)
			assert.Equal(t, tt.wantTyp, typ)
		})
	}
}

func TestMalformedTagsAreMalformedKind(t *testing.T) {
	for _, data := range [][]byte{{0x00}, {0x0B}, {0x0C}, {0x0E}, {0x0F}} {
		rec := &testRecord{}
		err := Unmarshal(data, rec)
		assert.Equal(t, KindMalformed, KindOf(err), "data %x", data)
	}
}

func TestReadBytesIsView(t *testing.T) {
	buf := []byte{0x03, 'a', 'b', 'c', 0x02, 'd', 'e'}
	r := NewReader(buf)

	got, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
	assert.Same(t, &buf[1], &got[0])
	assert.Equal(t, 3, cap(got))

	s, err := r.ReadString()
	require.NoError(t, err)
	buf[5] = 'X'
	assert.Equal(t, "de", s)
	assert.True(t, r.IsEOF())
}

func TestReadStringUTF8(t *testing.T) {
	data := []byte{0x02, 0xC3, 0x28}

	_, err := NewReader(data).ReadString()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, KindMalformed, KindOf(err))

	cfg := DefaultConfig()
	cfg.StrictUTF8 = false
	s, err := NewReaderConfig(data, cfg).ReadString()
	require.NoError(t, err)
	assert.Equal(t, "\xC3\x28", s)

	// bytes fields never validate
	b, err := NewReader(data).ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xC3, 0x28}, b)
}

func TestReadLengthPastEnd(t *testing.T) {
	r := NewReader([]byte{0x05, 'a', 'b'})
	_, err := r.ReadBytes()
	assert.ErrorIs(t, err, ErrTruncated)

	r = NewReader(append(AppendVarint(nil, 1<<40), 'a'))
	_, err = r.ReadString()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestReaderPosition(t *testing.T) {
	r := NewReader([]byte{0x08, 0x96, 0x01})
	assert.Equal(t, 0, r.Offset())
	assert.Equal(t, 3, r.Len())
	assert.False(t, r.IsEOF())

	_, _, err := r.ReadTag()
	require.NoError(t, err)
	assert.Equal(t, 1, r.Offset())

	v, err := r.ReadVarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(150), v)
	assert.Equal(t, 3, r.Offset())
	assert.Equal(t, 0, r.Len())
	assert.True(t, r.IsEOF())

	assert.True(t, NewReader(nil).IsEOF())
}

func TestReadMessageRegion(t *testing.T) {
	// A nested record followed by a sibling varint: the nested decode must
	// stop at its length and leave the sibling for the outer reader.
	child := &testRecord{ID: 5, Name: "n"}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteMessage(child))
	require.NoError(t, w.WriteVarint(99))

	r := NewReader(buf.Bytes())
	got := &testRecord{}
	require.NoError(t, r.ReadMessage(got))
	assert.True(t, child.equal(got))
	assert.Equal(t, buf.Len()-1, r.Offset())
	assert.Equal(t, 1, r.Len())

	v, err := r.ReadVarint()
	require.NoError(t, err)
	assert.Equal(t, uint64(99), v)
}

func TestRecordRoundTrip(t *testing.T) {
	want := sampleRecord()
	data, err := Marshal(want)
	require.NoError(t, err)
	assert.Len(t, data, want.Size())

	got := &testRecord{}
	require.NoError(t, Unmarshal(data, got))
	assert.True(t, want.equal(got), "got %+v", got)

	// decoding the same bytes twice gives equal records
	again := &testRecord{}
	require.NoError(t, Unmarshal(data, again))
	assert.True(t, got.equal(again))
}

func TestUnpackedRepeatedAccepted(t *testing.T) {
	var data []byte
	for _, v := range []int64{-1, 2, -3} {
		data = protowire.AppendTag(data, 3, protowire.VarintType)
		data = protowire.AppendVarint(data, protowire.EncodeZigZag(v))
	}
	data = protowire.AppendTag(data, 3, protowire.BytesType)
	data = protowire.AppendBytes(data, protowire.AppendVarint(nil, protowire.EncodeZigZag(4)))

	got := &testRecord{}
	require.NoError(t, Unmarshal(data, got))
	assert.Equal(t, []int64{-1, 2, -3, 4}, got.Values)
}

func TestLastScalarWins(t *testing.T) {
	var data []byte
	data = protowire.AppendTag(data, 1, protowire.VarintType)
	data = protowire.AppendVarint(data, 1)
	data = protowire.AppendTag(data, 1, protowire.VarintType)
	data = protowire.AppendVarint(data, 2)

	got := &testRecord{}
	require.NoError(t, Unmarshal(data, got))
	assert.Equal(t, int32(2), got.ID)
}

func TestNestedMessageMerges(t *testing.T) {
	a, err := Marshal(&testRecord{Child: &testRecord{ID: 1}})
	require.NoError(t, err)
	b, err := Marshal(&testRecord{Child: &testRecord{Name: "b"}})
	require.NoError(t, err)

	got := &testRecord{}
	require.NoError(t, Unmarshal(append(a, b...), got))
	require.NotNil(t, got.Child)
	assert.Equal(t, int32(1), got.Child.ID)
	assert.Equal(t, "b", got.Child.Name)
}

func TestUnknownFieldsSkipped(t *testing.T) {
	want := sampleRecord()
	known, err := Marshal(want)
	require.NoError(t, err)

	split := SizeTag(1) + SizeInt32(want.ID)

	var data []byte
	data = protowire.AppendTag(data, 100, protowire.VarintType)
	data = protowire.AppendVarint(data, 1<<63)
	data = append(data, known[:split]...)
	data = protowire.AppendTag(data, 101, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 7)
	data = protowire.AppendTag(data, 102, protowire.Fixed64Type)
	data = protowire.AppendFixed64(data, 8)
	data = append(data, known[split:]...)
	data = protowire.AppendTag(data, 103, protowire.BytesType)
	data = protowire.AppendBytes(data, known)
	// a known field number with an unexpected wire type is skipped too
	data = protowire.AppendTag(data, 1, protowire.Fixed32Type)
	data = protowire.AppendFixed32(data, 9)

	got := &testRecord{}
	require.NoError(t, Unmarshal(data, got))
	assert.True(t, want.equal(got), "got %+v", got)
}

func TestSkipFieldTruncated(t *testing.T) {
	tests := []struct {
		typ  WireType
		data []byte
	}{
		{WireVarint, []byte{0x80, 0x80}},
		{WireFixed32, []byte{1, 2}},
		{WireFixed64, []byte{1, 2, 3, 4}},
		{WireBytes, []byte{0x04, 'a'}},
	}
	for _, tt := range tests {
		r := NewReader(tt.data)
		err := r.SkipField(tt.typ)
		assert.ErrorIs(t, err, ErrTruncated, "wire type %s", tt.typ)
	}
	assert.ErrorIs(t, NewReader([]byte{0}).SkipField(WireStartGroup), ErrUnsupportedWireType)
}

func TestFrameTruncation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDelimited(&buf, sampleRecord()))
	frame := buf.Bytes()

	for cut := 0; cut < len(frame); cut++ {
		r := NewReader(frame[:cut])
		err := r.ReadMessage(&testRecord{})
		require.Error(t, err, "cut at %d", cut)
		assert.Equal(t, KindTruncated, KindOf(err), "cut at %d: %v", cut, err)
	}

	r := NewReader(frame)
	got := &testRecord{}
	require.NoError(t, r.ReadMessage(got))
	assert.True(t, sampleRecord().equal(got))
	assert.True(t, r.IsEOF())
}

func TestNestedTruncationInsideRegion(t *testing.T) {
	// The outer length covers the whole record, but the child claims more
	// bytes than the outer region holds.
	var inner []byte
	inner = protowire.AppendTag(inner, 4, protowire.BytesType)
	inner = protowire.AppendVarint(inner, 10)
	inner = append(inner, 0x08, 0x01)
	data := protowire.AppendBytes(nil, inner)
	data = append(data, bytes.Repeat([]byte{0x08, 0x01}, 8)...)

	err := NewReader(data).ReadMessage(&testRecord{})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestDepthLimit(t *testing.T) {
	nest := func(depth int) *testRecord {
		rec := &testRecord{ID: 1}
		for i := 0; i < depth; i++ {
			rec = &testRecord{Child: rec}
		}
		return rec
	}
	cfg := DefaultConfig()
	cfg.MaxDepth = 3

	data, err := Marshal(nest(3))
	require.NoError(t, err)
	require.NoError(t, (&testRecord{}).UnmarshalWire(NewReaderConfig(data, cfg)))

	data, err = Marshal(nest(4))
	require.NoError(t, err)
	err = (&testRecord{}).UnmarshalWire(NewReaderConfig(data, cfg))
	assert.ErrorIs(t, err, ErrDepthExceeded)
	assert.Equal(t, KindMalformed, KindOf(err))

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"child", "child", "child", "child"}, fe.FieldPath)
}

func TestDecodeErrorPath(t *testing.T) {
	rec := &testRecord{Child: &testRecord{Child: &testRecord{Name: "ok"}}}
	data, err := Marshal(rec)
	require.NoError(t, err)
	// corrupt the innermost string payload
	i := bytes.Index(data, []byte("ok"))
	require.Positive(t, i)
	data[i] = 0xFF

	err = Unmarshal(data, &testRecord{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Contains(t, err.Error(), "decoding error at proto path child.child.name")
}
