// Package streamcodec layers optional whole-stream compression around
// the byte sink/source that cmf.Reader and cmf.Writer consume. The core
// cmf package never knows compression is in play; a caller who wants a
// compressed .cmf file wraps the file handle with a Codec before handing
// it to cmf.NewReader or cmf.NewWriter.
package streamcodec

import "io"

// Codec wraps a raw byte stream with compression on write and
// decompression on read.
type Codec interface {
	Reader(r io.Reader) (io.ReadCloser, error)
	Writer(w io.Writer) (io.WriteCloser, error)
	Extension() string
}

// Wrap is a convenience that applies codec.Writer and discards the
// Extension, for callers that already know which codec they want.
func Wrap(codec Codec, sink io.Writer) (io.WriteCloser, error) {
	return codec.Writer(sink)
}

// Unwrap is the Wrap counterpart for reading.
func Unwrap(codec Codec, src io.Reader) (io.ReadCloser, error) {
	return codec.Reader(src)
}
