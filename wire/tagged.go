package wire

// Tag-then-value entry points. These are what record implementations call
// once per present field; tag is usually a precomputed constant such as
// MakeTag(1, WireVarint).

func (w *Writer) WriteInt32WithTag(tag Tag, v int32) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteInt32(v)
}

func (w *Writer) WriteInt64WithTag(tag Tag, v int64) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteInt64(v)
}

func (w *Writer) WriteUint32WithTag(tag Tag, v uint32) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteUint32(v)
}

func (w *Writer) WriteUint64WithTag(tag Tag, v uint64) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteUint64(v)
}

func (w *Writer) WriteSint32WithTag(tag Tag, v int32) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteSint32(v)
}

func (w *Writer) WriteSint64WithTag(tag Tag, v int64) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteSint64(v)
}

func (w *Writer) WriteBoolWithTag(tag Tag, v bool) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteBool(v)
}

func (w *Writer) WriteEnumWithTag(tag Tag, v int32) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteEnum(v)
}

func (w *Writer) WriteFixed32WithTag(tag Tag, v uint32) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteFixed32(v)
}

func (w *Writer) WriteFixed64WithTag(tag Tag, v uint64) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteFixed64(v)
}

func (w *Writer) WriteSfixed32WithTag(tag Tag, v int32) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteSfixed32(v)
}

func (w *Writer) WriteSfixed64WithTag(tag Tag, v int64) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteSfixed64(v)
}

func (w *Writer) WriteFloatWithTag(tag Tag, v float32) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteFloat(v)
}

func (w *Writer) WriteDoubleWithTag(tag Tag, v float64) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteDouble(v)
}

func (w *Writer) WriteBytesWithTag(tag Tag, v []byte) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteBytes(v)
}

func (w *Writer) WriteStringWithTag(tag Tag, v string) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteString(v)
}

func (w *Writer) WriteMessageWithTag(tag Tag, m Writable) error {
	if err := w.writeRawTag(tag); err != nil {
		return err
	}
	return w.WriteMessage(m)
}
