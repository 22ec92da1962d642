// Package perftest holds the records of perftest.proto written the way a
// code generator targeting the wire package would emit them: precomputed
// tags, exact Size implementations and a decode loop per message.
package perftest

import (
	"github.com/anirudhraja/quickwire/wire"
)

const (
	wtVarint = wire.Tag(wire.WireVarint)
	wtBytes  = wire.Tag(wire.WireBytes)
)

// Tags of every field, field number << 3 | wire type.
const (
	tagTest1Value = 1<<3 | wtVarint

	tagRepeatedBoolValues       = 1<<3 | wtVarint
	tagRepeatedBoolValuesPacked = 1<<3 | wtBytes

	tagPackedInt32Values         = 1<<3 | wtBytes
	tagPackedInt32ValuesUnpacked = 1<<3 | wtVarint

	tagRepeatedMessages1 = 1<<3 | wtBytes
	tagRepeatedMessages2 = 2<<3 | wtBytes
	tagRepeatedMessages3 = 3<<3 | wtBytes

	tagOptionalMessage1 = 1<<3 | wtBytes
	tagOptionalMessage2 = 2<<3 | wtBytes
	tagOptionalMessage3 = 3<<3 | wtBytes

	tagStringsS1 = 1<<3 | wtBytes
	tagStringsS2 = 2<<3 | wtBytes
	tagStringsS3 = 3<<3 | wtBytes

	tagBytesB1 = 1<<3 | wtBytes

	tagDataTest1                   = 1<<3 | wtBytes
	tagDataTestRepeatedBool        = 2<<3 | wtBytes
	tagDataTestRepeatedMessages    = 3<<3 | wtBytes
	tagDataTestOptionalMessages    = 4<<3 | wtBytes
	tagDataTestStrings             = 5<<3 | wtBytes
	tagDataTestRepeatedPackedInt32 = 6<<3 | wtBytes
	tagDataTestSmallBytearrays     = 7<<3 | wtBytes
	tagDataTestLargeBytearrays     = 8<<3 | wtBytes
)

// Every field number in this file is below 16, so each tag takes one byte.
const tagSize = 1

var (
	test1Element                   = wire.MessageElement(func() *Test1 { return new(Test1) })
	testRepeatedBoolElement        = wire.MessageElement(func() *TestRepeatedBool { return new(TestRepeatedBool) })
	testRepeatedPackedInt32Element = wire.MessageElement(func() *TestRepeatedPackedInt32 { return new(TestRepeatedPackedInt32) })
	testRepeatedMessagesElement    = wire.MessageElement(func() *TestRepeatedMessages { return new(TestRepeatedMessages) })
	testOptionalMessagesElement    = wire.MessageElement(func() *TestOptionalMessages { return new(TestOptionalMessages) })
	testStringsElement             = wire.MessageElement(func() *TestStrings { return new(TestStrings) })
	testBytesElement               = wire.MessageElement(func() *TestBytes { return new(TestBytes) })
)

// sizeRepeated is the encoded size of a repeated message field.
func sizeRepeated[M wire.Writable](ms []M) int {
	n := 0
	for _, m := range ms {
		n += tagSize + wire.SizeMessage(m)
	}
	return n
}

func writeRepeated[M wire.Writable](w *wire.Writer, tag wire.Tag, ms []M, field string) error {
	for _, m := range ms {
		if err := w.WriteMessageWithTag(tag, m); err != nil {
			return wire.WrapEncodingError(err, field)
		}
	}
	return nil
}

func readRepeated[M any](r *wire.Reader, el wire.Element[M], dst []M, field string) ([]M, error) {
	m, err := el.Read(r)
	if err != nil {
		return dst, wire.WrapDecodingError(err, field)
	}
	return append(dst, m), nil
}

// Test1 is message perftest_data.Test1.
type Test1 struct {
	Value *int32
}

func (m *Test1) Size() int {
	if m.Value == nil {
		return 0
	}
	return tagSize + wire.SizeInt32(*m.Value)
}

func (m *Test1) MarshalWire(w *wire.Writer) error {
	if m.Value != nil {
		return w.WriteInt32WithTag(tagTest1Value, *m.Value)
	}
	return nil
}

func (m *Test1) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagTest1Value:
			v, err := r.ReadInt32()
			if err != nil {
				return wire.WrapDecodingError(err, "value")
			}
			m.Value = &v
		default:
			if err := r.SkipField(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// TestRepeatedBool is message perftest_data.TestRepeatedBool. Values is not
// packed in proto2 but a packed run is accepted on decode.
type TestRepeatedBool struct {
	Values []bool
}

func (m *TestRepeatedBool) Size() int {
	return len(m.Values) * (tagSize + 1)
}

func (m *TestRepeatedBool) MarshalWire(w *wire.Writer) error {
	for _, v := range m.Values {
		if err := w.WriteBoolWithTag(tagRepeatedBoolValues, v); err != nil {
			return wire.WrapEncodingError(err, "values")
		}
	}
	return nil
}

func (m *TestRepeatedBool) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagRepeatedBoolValues:
			v, err := r.ReadBool()
			if err != nil {
				return wire.WrapDecodingError(err, "values")
			}
			m.Values = append(m.Values, v)
		case tagRepeatedBoolValuesPacked:
			if m.Values, err = r.ReadPackedBool(m.Values); err != nil {
				return wire.WrapDecodingError(err, "values")
			}
		default:
			if err := r.SkipField(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// TestRepeatedPackedInt32 is message perftest_data.TestRepeatedPackedInt32.
type TestRepeatedPackedInt32 struct {
	Values []int32
}

func (m *TestRepeatedPackedInt32) Size() int {
	return wire.SizePackedField(1, wire.SizePackedVarint(m.Values))
}

func (m *TestRepeatedPackedInt32) MarshalWire(w *wire.Writer) error {
	if err := wire.WritePackedVarintWithTag(w, tagPackedInt32Values, m.Values); err != nil {
		return wire.WrapEncodingError(err, "values")
	}
	return nil
}

func (m *TestRepeatedPackedInt32) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagPackedInt32Values:
			if m.Values, err = wire.ReadPackedVarint(r, m.Values); err != nil {
				return wire.WrapDecodingError(err, "values")
			}
		case tagPackedInt32ValuesUnpacked:
			v, err := r.ReadInt32()
			if err != nil {
				return wire.WrapDecodingError(err, "values")
			}
			m.Values = append(m.Values, v)
		default:
			if err := r.SkipField(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// TestRepeatedMessages is message perftest_data.TestRepeatedMessages.
type TestRepeatedMessages struct {
	Messages1 []*TestRepeatedMessages
	Messages2 []*TestRepeatedMessages
	Messages3 []*TestRepeatedMessages
}

func (m *TestRepeatedMessages) Size() int {
	return sizeRepeated(m.Messages1) + sizeRepeated(m.Messages2) + sizeRepeated(m.Messages3)
}

func (m *TestRepeatedMessages) MarshalWire(w *wire.Writer) error {
	if err := writeRepeated(w, tagRepeatedMessages1, m.Messages1, "messages1"); err != nil {
		return err
	}
	if err := writeRepeated(w, tagRepeatedMessages2, m.Messages2, "messages2"); err != nil {
		return err
	}
	return writeRepeated(w, tagRepeatedMessages3, m.Messages3, "messages3")
}

func (m *TestRepeatedMessages) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagRepeatedMessages1:
			m.Messages1, err = readRepeated(r, testRepeatedMessagesElement, m.Messages1, "messages1")
		case tagRepeatedMessages2:
			m.Messages2, err = readRepeated(r, testRepeatedMessagesElement, m.Messages2, "messages2")
		case tagRepeatedMessages3:
			m.Messages3, err = readRepeated(r, testRepeatedMessagesElement, m.Messages3, "messages3")
		default:
			err = r.SkipField(typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// TestOptionalMessages is message perftest_data.TestOptionalMessages. A
// repeated occurrence of a field merges into the message already present.
type TestOptionalMessages struct {
	Message1 *TestOptionalMessages
	Message2 *TestOptionalMessages
	Message3 *TestOptionalMessages
}

func (m *TestOptionalMessages) Size() int {
	n := 0
	for _, sub := range [...]*TestOptionalMessages{m.Message1, m.Message2, m.Message3} {
		if sub != nil {
			n += tagSize + wire.SizeMessage(sub)
		}
	}
	return n
}

func (m *TestOptionalMessages) MarshalWire(w *wire.Writer) error {
	if m.Message1 != nil {
		if err := w.WriteMessageWithTag(tagOptionalMessage1, m.Message1); err != nil {
			return wire.WrapEncodingError(err, "message1")
		}
	}
	if m.Message2 != nil {
		if err := w.WriteMessageWithTag(tagOptionalMessage2, m.Message2); err != nil {
			return wire.WrapEncodingError(err, "message2")
		}
	}
	if m.Message3 != nil {
		if err := w.WriteMessageWithTag(tagOptionalMessage3, m.Message3); err != nil {
			return wire.WrapEncodingError(err, "message3")
		}
	}
	return nil
}

func (m *TestOptionalMessages) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagOptionalMessage1:
			err = readOptional(r, &m.Message1, "message1")
		case tagOptionalMessage2:
			err = readOptional(r, &m.Message2, "message2")
		case tagOptionalMessage3:
			err = readOptional(r, &m.Message3, "message3")
		default:
			err = r.SkipField(typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readOptional(r *wire.Reader, dst **TestOptionalMessages, field string) error {
	if *dst == nil {
		*dst = new(TestOptionalMessages)
	}
	if err := r.ReadMessage(*dst); err != nil {
		return wire.WrapDecodingError(err, field)
	}
	return nil
}

// TestStrings is message perftest_data.TestStrings.
type TestStrings struct {
	S1 *string
	S2 *string
	S3 *string
}

func (m *TestStrings) Size() int {
	n := 0
	for _, s := range [...]*string{m.S1, m.S2, m.S3} {
		if s != nil {
			n += tagSize + wire.SizeString(*s)
		}
	}
	return n
}

func (m *TestStrings) MarshalWire(w *wire.Writer) error {
	if m.S1 != nil {
		if err := w.WriteStringWithTag(tagStringsS1, *m.S1); err != nil {
			return wire.WrapEncodingError(err, "s1")
		}
	}
	if m.S2 != nil {
		if err := w.WriteStringWithTag(tagStringsS2, *m.S2); err != nil {
			return wire.WrapEncodingError(err, "s2")
		}
	}
	if m.S3 != nil {
		if err := w.WriteStringWithTag(tagStringsS3, *m.S3); err != nil {
			return wire.WrapEncodingError(err, "s3")
		}
	}
	return nil
}

func (m *TestStrings) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagStringsS1:
			err = readString(r, &m.S1, "s1")
		case tagStringsS2:
			err = readString(r, &m.S2, "s2")
		case tagStringsS3:
			err = readString(r, &m.S3, "s3")
		default:
			err = r.SkipField(typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func readString(r *wire.Reader, dst **string, field string) error {
	s, err := r.ReadString()
	if err != nil {
		return wire.WrapDecodingError(err, field)
	}
	*dst = &s
	return nil
}

// TestBytes is message perftest_data.TestBytes. A nil B1 is absent; decoded
// values alias the input buffer.
type TestBytes struct {
	B1 []byte
}

func (m *TestBytes) Size() int {
	if m.B1 == nil {
		return 0
	}
	return tagSize + wire.SizeBytes(m.B1)
}

func (m *TestBytes) MarshalWire(w *wire.Writer) error {
	if m.B1 != nil {
		if err := w.WriteBytesWithTag(tagBytesB1, m.B1); err != nil {
			return wire.WrapEncodingError(err, "b1")
		}
	}
	return nil
}

func (m *TestBytes) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagBytesB1:
			if m.B1, err = r.ReadBytes(); err != nil {
				return wire.WrapDecodingError(err, "b1")
			}
		default:
			if err := r.SkipField(typ); err != nil {
				return err
			}
		}
	}
	return nil
}

// PerftestData is message perftest_data.PerftestData, one list per workload.
type PerftestData struct {
	Test1                   []*Test1
	TestRepeatedBool        []*TestRepeatedBool
	TestRepeatedMessages    []*TestRepeatedMessages
	TestOptionalMessages    []*TestOptionalMessages
	TestStrings             []*TestStrings
	TestRepeatedPackedInt32 []*TestRepeatedPackedInt32
	TestSmallBytearrays     []*TestBytes
	TestLargeBytearrays     []*TestBytes
}

func (m *PerftestData) Size() int {
	return sizeRepeated(m.Test1) +
		sizeRepeated(m.TestRepeatedBool) +
		sizeRepeated(m.TestRepeatedMessages) +
		sizeRepeated(m.TestOptionalMessages) +
		sizeRepeated(m.TestStrings) +
		sizeRepeated(m.TestRepeatedPackedInt32) +
		sizeRepeated(m.TestSmallBytearrays) +
		sizeRepeated(m.TestLargeBytearrays)
}

func (m *PerftestData) MarshalWire(w *wire.Writer) error {
	if err := writeRepeated(w, tagDataTest1, m.Test1, "test1"); err != nil {
		return err
	}
	if err := writeRepeated(w, tagDataTestRepeatedBool, m.TestRepeatedBool, "test_repeated_bool"); err != nil {
		return err
	}
	if err := writeRepeated(w, tagDataTestRepeatedMessages, m.TestRepeatedMessages, "test_repeated_messages"); err != nil {
		return err
	}
	if err := writeRepeated(w, tagDataTestOptionalMessages, m.TestOptionalMessages, "test_optional_messages"); err != nil {
		return err
	}
	if err := writeRepeated(w, tagDataTestStrings, m.TestStrings, "test_strings"); err != nil {
		return err
	}
	if err := writeRepeated(w, tagDataTestRepeatedPackedInt32, m.TestRepeatedPackedInt32, "test_repeated_packed_int32"); err != nil {
		return err
	}
	if err := writeRepeated(w, tagDataTestSmallBytearrays, m.TestSmallBytearrays, "test_small_bytearrays"); err != nil {
		return err
	}
	return writeRepeated(w, tagDataTestLargeBytearrays, m.TestLargeBytearrays, "test_large_bytearrays")
}

func (m *PerftestData) UnmarshalWire(r *wire.Reader) error {
	for !r.IsEOF() {
		num, typ, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch wire.MakeTag(num, typ) {
		case tagDataTest1:
			m.Test1, err = readRepeated(r, test1Element, m.Test1, "test1")
		case tagDataTestRepeatedBool:
			m.TestRepeatedBool, err = readRepeated(r, testRepeatedBoolElement, m.TestRepeatedBool, "test_repeated_bool")
		case tagDataTestRepeatedMessages:
			m.TestRepeatedMessages, err = readRepeated(r, testRepeatedMessagesElement, m.TestRepeatedMessages, "test_repeated_messages")
		case tagDataTestOptionalMessages:
			m.TestOptionalMessages, err = readRepeated(r, testOptionalMessagesElement, m.TestOptionalMessages, "test_optional_messages")
		case tagDataTestStrings:
			m.TestStrings, err = readRepeated(r, testStringsElement, m.TestStrings, "test_strings")
		case tagDataTestRepeatedPackedInt32:
			m.TestRepeatedPackedInt32, err = readRepeated(r, testRepeatedPackedInt32Element, m.TestRepeatedPackedInt32, "test_repeated_packed_int32")
		case tagDataTestSmallBytearrays:
			m.TestSmallBytearrays, err = readRepeated(r, testBytesElement, m.TestSmallBytearrays, "test_small_bytearrays")
		case tagDataTestLargeBytearrays:
			m.TestLargeBytearrays, err = readRepeated(r, testBytesElement, m.TestLargeBytearrays, "test_large_bytearrays")
		default:
			err = r.SkipField(typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
