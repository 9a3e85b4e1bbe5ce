package streamcodec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// ZstdCodec compresses with zstd via klauspost/compress.
type ZstdCodec struct {
	// Level sets the encoder's compression level. The zero value uses
	// the library's default.
	Level zstd.EncoderLevel
}

func (c ZstdCodec) Extension() string { return ".zst" }

func (c ZstdCodec) Writer(w io.Writer) (io.WriteCloser, error) {
	opts := []zstd.EOption{}
	if c.Level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(c.Level))
	}
	enc, err := zstd.NewWriter(w, opts...)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

func (c ZstdCodec) Reader(r io.Reader) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	return zstdDecoderCloser{dec}, nil
}

// zstdDecoderCloser adapts *zstd.Decoder's Close() (no error return) to
// io.ReadCloser.
type zstdDecoderCloser struct {
	*zstd.Decoder
}

func (d zstdDecoderCloser) Close() error {
	d.Decoder.Close()
	return nil
}
