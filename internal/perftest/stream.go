package perftest

import (
	"github.com/anirudhraja/quickwire/wire"
)

// WriteStream writes each record as a length-delimited message, back to back.
func WriteStream[M wire.Writable](w *wire.Writer, ms []M) error {
	for _, m := range ms {
		if err := w.WriteMessage(m); err != nil {
			return err
		}
	}
	return nil
}

// ReadStream decodes length-delimited records until buf is exhausted. A frame
// cut short anywhere fails with wire.ErrTruncated.
func ReadStream[M wire.Readable](buf []byte, newMsg func() M) ([]M, error) {
	r := wire.NewReader(buf)
	var out []M
	for !r.IsEOF() {
		m := newMsg()
		if err := r.ReadMessage(m); err != nil {
			return out, err
		}
		out = append(out, m)
	}
	return out, nil
}
