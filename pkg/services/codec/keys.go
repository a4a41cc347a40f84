package codec

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

// KeySize is the length in bytes of each half of the key material
const KeySize = 32

// Keys holds the two halves of the key material. The working key is their
// position-wise XOR, which is no stronger than a single key: it only avoids
// keeping one static key verbatim.
type Keys struct {
	A []byte
	B []byte
}

func (k Keys) Validate() error {
	if len(k.A) != KeySize {
		return fmt.Errorf("key material A must be %d bytes, got %d", KeySize, len(k.A))
	}
	if len(k.B) != KeySize {
		return fmt.Errorf("key material B must be %d bytes, got %d", KeySize, len(k.B))
	}
	return nil
}

func (k Keys) working() []byte {
	out := make([]byte, len(k.A))
	for i := range k.A {
		out[i] = k.A[i] ^ k.B[i]
	}
	return out
}

// GenerateKeys reads fresh key material from r. A nil reader uses crypto/rand.
func GenerateKeys(r io.Reader) (Keys, error) {
	if r == nil {
		r = rand.Reader
	}

	buf := make([]byte, 2*KeySize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Keys{}, fmt.Errorf("generate random bytes: %w", err)
	}
	return Keys{A: buf[:KeySize], B: buf[KeySize:]}, nil
}

var errEmptyKey = errors.New("working key is empty")
