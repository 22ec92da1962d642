package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalAppend(t *testing.T) {
	prefix := []byte{0xAA, 0xBB}
	out, err := MarshalAppend(prefix, sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, prefix, out[:2])

	plain, err := Marshal(sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, plain, out[2:])
}

func TestMarshalEmpty(t *testing.T) {
	out, err := Marshal(&testRecord{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMarshalSizeMismatch(t *testing.T) {
	prefix := []byte{1}
	out, err := MarshalAppend(prefix, lyingRecord{})
	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.Equal(t, prefix, out)
}

func TestNegativeSizeRejected(t *testing.T) {
	prefix := []byte{1}
	out, err := MarshalAppend(prefix, negativeRecord{})
	assert.ErrorIs(t, err, ErrSizeMismatch)
	assert.Equal(t, prefix, out)

	var buf bytes.Buffer
	assert.Equal(t, KindSizeMismatch, KindOf(WriteDelimited(&buf, negativeRecord{})))
	assert.Equal(t, KindSizeMismatch, KindOf(NewWriter(&buf).WriteMessage(negativeRecord{})))
	assert.Zero(t, buf.Len())
}

func TestWriteDelimitedSequence(t *testing.T) {
	recs := []*testRecord{sampleRecord(), {}, {ID: 42, Name: "last"}}

	var buf bytes.Buffer
	for _, rec := range recs {
		require.NoError(t, WriteDelimited(&buf, rec))
	}

	r := NewReader(buf.Bytes())
	for i, want := range recs {
		got := &testRecord{}
		require.NoError(t, r.ReadMessage(got), "frame %d", i)
		assert.True(t, want.equal(got), "frame %d", i)
	}
	assert.True(t, r.IsEOF())
}

func TestWriteDelimitedFailures(t *testing.T) {
	// the destination sees nothing when the record misreports its size
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteDelimited(&buf, lyingRecord{}), ErrSizeMismatch)
	assert.Zero(t, buf.Len())

	err := WriteDelimited(&failingWriter{limit: 3}, sampleRecord())
	assert.Equal(t, KindIO, KindOf(err))
	assert.ErrorIs(t, err, errBoom)
}

func TestGlobalConfig(t *testing.T) {
	saved := CurrentConfig()
	t.Cleanup(func() { SetConfig(saved) })

	cfg := saved
	cfg.StrictUTF8 = false
	SetConfig(cfg)
	assert.False(t, CurrentConfig().StrictUTF8)

	rec := &testRecord{}
	require.NoError(t, Unmarshal([]byte{0x12, 0x01, 0xFF}, rec))
	assert.Equal(t, "\xFF", rec.Name)

	SetConfig(DefaultConfig())
	assert.ErrorIs(t, Unmarshal([]byte{0x12, 0x01, 0xFF}, &testRecord{}), ErrInvalidUTF8)
}
