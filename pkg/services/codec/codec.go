// Package codec obfuscates scoring configurations at rest.
//
// Encoding compresses the plaintext with zlib and then XORs the compressed
// bytes against a cycled working key. This keeps the configuration away from
// casual inspection; it is not encryption, since the key material ships with
// the tool.
package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

type Codec struct {
	key   []byte
	level int
}

func New(keys Keys) (*Codec, error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return &Codec{
		key:   keys.working(),
		level: zlib.DefaultCompression,
	}, nil
}

// Transform XORs input against the working key derived from keys, cycling
// the key over the input. Applying it twice with the same keys returns the
// original bytes.
func Transform(input []byte, keys Keys) ([]byte, error) {
	if err := keys.Validate(); err != nil {
		return nil, err
	}
	return xorCycle(input, keys.working())
}

func xorCycle(input, key []byte) ([]byte, error) {
	if len(key) == 0 {
		return nil, errEmptyKey
	}
	out := make([]byte, len(input))
	for i, b := range input {
		out[i] = b ^ key[i%len(key)]
	}
	return out, nil
}

func (c *Codec) Encode(plaintext []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("create zlib writer: %w", err)
	}
	if _, err := w.Write(plaintext); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish compression: %w", err)
	}
	return xorCycle(buf.Bytes(), c.key)
}

// Decode reverses Encode. Mismatched key material is not detected as such;
// it surfaces as a decompression error.
func (c *Codec) Decode(blob []byte) ([]byte, error) {
	compressed, err := xorCycle(blob, c.key)
	if err != nil {
		return nil, err
	}

	r, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer r.Close()

	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	return plaintext, nil
}
